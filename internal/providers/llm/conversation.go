package llm

import (
	"fmt"

	"github.com/sandevgo/ferpy/internal/core"
)

type Options struct {
	Prompts *PromptBuilder
	// HistoryTokens caps the replayed history, 0 keeps everything.
	HistoryTokens int
	Counter       TokenCounter
}

// dialogue holds what every provider does around the actual API call.
type dialogue struct {
	opts Options
}

// prepare renders the system instruction for rec and trims history.
func (d dialogue) prepare(history core.History, rec core.PatientRecord) (string, core.History, error) {
	if d.opts.Prompts == nil {
		return "", nil, fmt.Errorf("no prompt builder configured")
	}
	system, err := d.opts.Prompts.Build(rec)
	if err != nil {
		return "", nil, err
	}
	return system, TrimHistory(history, d.opts.HistoryTokens, d.opts.Counter), nil
}

// extend returns a new history with the exchange appended. The image is not
// kept, only the current turn carries one.
func extend(history core.History, prompt, reply string) core.History {
	out := make(core.History, 0, len(history)+2)
	out = append(out, history...)
	return append(out,
		core.Message{Role: core.RoleUser, Content: prompt},
		core.Message{Role: core.RoleModel, Content: reply},
	)
}
