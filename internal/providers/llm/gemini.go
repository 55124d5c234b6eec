package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/pkg/log"
	"google.golang.org/genai"
)

type Gemini struct {
	dialogue
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini client. baseURL is only set in tests.
func NewGemini(ctx context.Context, apiKey, model, baseURL string, opts Options) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Gemini{
		dialogue: dialogue{opts: opts},
		client:   client,
		model:    model,
	}, nil
}

func (g *Gemini) Interact(ctx context.Context, history core.History, prompt string, image *core.Image, rec core.PatientRecord) (string, core.History, error) {
	system, trimmed, err := g.prepare(history, rec)
	if err != nil {
		return "", history, err
	}

	contents := make([]*genai.Content, 0, len(trimmed)+1)
	for _, m := range trimmed {
		var role genai.Role = genai.RoleUser
		if m.Role == core.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	parts := []*genai.Part{genai.NewPartFromText(prompt)}
	if !image.Empty() {
		parts = append(parts, genai.NewPartFromBytes(image.Data, image.MIMEType))
	}
	contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	})
	if err != nil {
		return "", history, fmt.Errorf("gemini generate: %w", err)
	}

	reply := strings.TrimSpace(resp.Text())
	log.FromCtx(ctx).Debug().
		Str("model", g.model).
		Int("history", len(trimmed)).
		Bool("image", !image.Empty()).
		Msg("gemini reply received")

	return reply, extend(trimmed, prompt, reply), nil
}
