package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGemini_Interact(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "gemini-2.5-flash:generateContent"), r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": "Voy hacia ti <mover_adelante 20>"}},
				},
			}},
		})
	}))
	defer srv.Close()

	prompts, err := NewPromptBuilder("", "es")
	require.NoError(t, err)
	g, err := NewGemini(context.Background(), "test-key", "gemini-2.5-flash", srv.URL, Options{Prompts: prompts})
	require.NoError(t, err)

	rec := core.NewPatientRecord("Luis")
	reply, history, err := g.Interact(context.Background(), nil, "necesito una venda", &core.Image{Data: []byte("jpg"), MIMEType: "image/jpeg"}, rec)
	require.NoError(t, err)

	assert.Equal(t, "Voy hacia ti <mover_adelante 20>", reply)
	assert.Len(t, history, 2)
	assert.Contains(t, body, "necesito una venda")
	assert.Contains(t, body, "nombre: Luis")
	assert.Contains(t, body, "inlineData")
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "gemini-2.5-flash", "", Options{})
	assert.Error(t, err)
}
