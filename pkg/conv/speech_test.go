package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpeechText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "   ",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "Hola, soy Doctor Ferpy.",
			expected: "Hola, soy Doctor Ferpy.",
		},
		{
			name:     "emphasis removed",
			input:    "Tienes **fiebre** leve.",
			expected: "Tienes fiebre leve.",
		},
		{
			name:     "leading number kept",
			input:    "2. Vamos",
			expected: "2. Vamos",
		},
		{
			name:     "numbered lines kept",
			input:    "1. Siéntate\n2) Respira",
			expected: "1. Siéntate 2) Respira",
		},
		{
			name:     "entities decoded",
			input:    "Toma agua & descansa.",
			expected: "Toma agua & descansa.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SpeechText(tt.input))
		})
	}
}

func TestSpeechText_ListHasNoBullets(t *testing.T) {
	got := SpeechText("Tengo:\n\n- vendas\n- gasas\n")
	assert.NotContains(t, got, "-")
	assert.NotContains(t, got, "*")
	assert.Contains(t, got, "vendas")
	assert.Contains(t, got, "gasas")
}
