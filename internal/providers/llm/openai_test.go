package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model    string            `json:"model"`
	Messages []json.RawMessage `json:"messages"`
}

func newChatServer(t *testing.T, reply string, status int, captured *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		if captured != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"choices": []map[string]any{{"index": 0, "message": map[string]any{"role": "assistant", "content": reply}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestOpenAI(t *testing.T, url string) *OpenAI {
	prompts, err := NewPromptBuilder("", "es")
	require.NoError(t, err)
	return NewOpenAI("test-key", "gpt-4o-mini", url+"/v1", Options{Prompts: prompts, Counter: words})
}

func TestOpenAI_Interact(t *testing.T) {
	var req capturedRequest
	srv := newChatServer(t, " Hola Ana <mover_adelante 5> ", http.StatusOK, &req)
	o := newTestOpenAI(t, srv.URL)

	history := exchange("hola", "buenos días")
	img := &core.Image{Data: []byte{1, 2, 3}, MIMEType: "image/jpeg"}

	reply, updated, err := o.Interact(context.Background(), history, "me duele la cabeza", img, core.NewPatientRecord("Ana"))
	require.NoError(t, err)

	assert.Equal(t, "Hola Ana <mover_adelante 5>", reply)
	require.Len(t, updated, 4)
	assert.Equal(t, core.Message{Role: core.RoleUser, Content: "me duele la cabeza"}, updated[2])
	assert.Equal(t, core.RoleModel, updated[3].Role)

	assert.Equal(t, "gpt-4o-mini", req.Model)
	// system + 2 history + current user turn
	require.Len(t, req.Messages, 4)
	assert.Contains(t, string(req.Messages[0]), "nombre: Ana")
	assert.Contains(t, string(req.Messages[3]), "data:image/jpeg;base64,AQID")
}

func TestOpenAI_ErrorKeepsHistory(t *testing.T) {
	srv := newChatServer(t, "", http.StatusInternalServerError, nil)
	o := newTestOpenAI(t, srv.URL)

	history := exchange("hola", "buenos días")
	_, got, err := o.Interact(context.Background(), history, "otra vez", nil, core.NewPatientRecord("Ana"))
	require.Error(t, err)
	assert.Equal(t, history, got)
}

func TestUserMessage_TextOnly(t *testing.T) {
	msg := userMessage("hola", nil)
	assert.Equal(t, "hola", msg.Content)
	assert.Empty(t, msg.MultiContent)
}
