package robot

import (
	"context"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/pkg/log"
)

// LogStatus reports display changes to the log.
type LogStatus struct{}

func (LogStatus) SetState(ctx context.Context, state core.DisplayState) {
	log.FromCtx(ctx).Debug().Str("display", string(state)).Msg("display state")
}

// statusSpeaker shows the stationary face while speaking and goes back to
// loading afterwards.
type statusSpeaker struct {
	core.Speaker
	status core.StatusReporter
}

func (s statusSpeaker) Speak(ctx context.Context, text, lang string) error {
	s.status.SetState(ctx, core.DisplayStationary)
	defer s.status.SetState(ctx, core.DisplayLoading)
	return s.Speaker.Speak(ctx, text, lang)
}

// WithStatus wraps a speaker so every utterance updates the display.
func WithStatus(sp core.Speaker, status core.StatusReporter) core.Speaker {
	if status == nil {
		return sp
	}
	return statusSpeaker{Speaker: sp, status: status}
}
