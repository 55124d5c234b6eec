package llm

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"github.com/sandevgo/ferpy/internal/core"
)

//go:embed prompt.md
var defaultPrompt string

// DefaultPrompt returns the built-in system prompt template.
func DefaultPrompt() string {
	return defaultPrompt
}

type promptData struct {
	core.PatientRecord
	Language string
}

// PromptBuilder renders the system instruction for the active patient.
type PromptBuilder struct {
	tmpl     *template.Template
	language string
}

// NewPromptBuilder parses the template at path, or the built-in one when
// path is empty or missing.
func NewPromptBuilder(path, language string) (*PromptBuilder, error) {
	text := defaultPrompt
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			text = string(data)
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("read prompt: %w", err)
		}
	}

	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt: %w", err)
	}
	if language == "" || language == "es" {
		language = "español"
	}
	return &PromptBuilder{tmpl: tmpl, language: language}, nil
}

func (p *PromptBuilder) Build(rec core.PatientRecord) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, promptData{PatientRecord: rec, Language: p.language}); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String(), nil
}
