package llm

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/ferpy/internal/core"
)

// TokenCounter measures a piece of text in model tokens.
type TokenCounter func(string) int

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

// CountTokens uses the cl100k_base encoding. If the encoding cannot be
// loaded it falls back to one token per four characters.
func CountTokens(text string) int {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding("cl100k_base")
	})
	if tkErr != nil {
		return (utf8.RuneCountInString(text) + 3) / 4
	}
	return len(tk.Encode(text, nil, nil))
}

// TrimHistory drops the oldest exchanges until the history fits in budget
// tokens. Messages are removed in user/model pairs so the history always
// starts with a user turn. A budget <= 0 disables trimming.
func TrimHistory(history core.History, budget int, count TokenCounter) core.History {
	if budget <= 0 || len(history) == 0 {
		return history
	}
	if count == nil {
		count = CountTokens
	}

	sizes := make([]int, len(history))
	total := 0
	for i, m := range history {
		sizes[i] = count(m.Content)
		total += sizes[i]
	}

	start := 0
	for total > budget && start < len(history) {
		total -= sizes[start]
		start++
		// Keep dropping until the next kept message is a user turn.
		for start < len(history) && history[start].Role != core.RoleUser {
			total -= sizes[start]
			start++
		}
	}

	if start == 0 {
		return history
	}
	out := make(core.History, len(history)-start)
	copy(out, history[start:])
	return out
}
