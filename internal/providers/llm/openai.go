package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/pkg/log"
	openai "github.com/sashabaranov/go-openai"
)

type OpenAI struct {
	dialogue
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI client. baseURL may point to any compatible
// server.
func NewOpenAI(apiKey, model, baseURL string, opts Options) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAI{
		dialogue: dialogue{opts: opts},
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
	}
}

func (o *OpenAI) Interact(ctx context.Context, history core.History, prompt string, image *core.Image, rec core.PatientRecord) (string, core.History, error) {
	system, trimmed, err := o.prepare(history, rec)
	if err != nil {
		return "", history, err
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(trimmed)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	for _, m := range trimmed {
		role := openai.ChatMessageRoleUser
		if m.Role == core.RoleModel {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	msgs = append(msgs, userMessage(prompt, image))

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: msgs,
	})
	if err != nil {
		return "", history, fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", history, fmt.Errorf("openai chat: empty response")
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	log.FromCtx(ctx).Debug().
		Str("model", o.model).
		Int("history", len(trimmed)).
		Bool("image", !image.Empty()).
		Msg("openai reply received")

	return reply, extend(trimmed, prompt, reply), nil
}

func userMessage(prompt string, image *core.Image) openai.ChatCompletionMessage {
	if image.Empty() {
		return openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt}
	}

	mime := image.MIMEType
	if mime == "" {
		mime = "image/jpeg"
	}
	url := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(image.Data)

	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: prompt},
			{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
				URL:    url,
				Detail: openai.ImageURLDetailLow,
			}},
		},
	}
}
