package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/internal/service/actuator"
	"github.com/sandevgo/ferpy/internal/service/directive"
	"github.com/sandevgo/ferpy/internal/service/patient"
	"github.com/sandevgo/ferpy/pkg/log"
)

type Actuator interface {
	Move(ctx context.Context, m actuator.Motion, magnitude float64) error
}

type Session interface {
	Mutate(fn func(core.PatientRecord) core.PatientRecord) error
	ChangeUser(ctx context.Context, v directive.Value) error
	RegisterUser(ctx context.Context, v directive.Value) error
}

type Config struct {
	Language string
	// Settle is the pause after each motion so the chassis stops before the
	// next segment.
	Settle time.Duration
	// TextFilter prepares text for speech. Nil speaks the text as is.
	TextFilter func(string) string
}

func DefaultConfig() Config {
	return Config{
		Language: "es",
		Settle:   500 * time.Millisecond,
	}
}

// Failure is a directive that could not be carried out.
type Failure struct {
	Directive directive.Directive
	Err       error
}

// Report summarizes one executed reply.
type Report struct {
	Spoken   []string
	Executed []directive.Directive
	Unknown  []directive.Directive
	Failed   []Failure
	Speech   []error
	// Interrupted is set when the context ended before every segment ran.
	Interrupted error
	Skipped     int
}

// Err joins every failure of the turn, nil if everything went through.
func (r Report) Err() error {
	errs := make([]error, 0, len(r.Failed)+len(r.Speech))
	for _, f := range r.Failed {
		errs = append(errs, fmt.Errorf("<%s %s>: %w", f.Directive.Name, f.Directive.Value.Raw, f.Err))
	}
	errs = append(errs, r.Speech...)
	if r.Interrupted != nil {
		errs = append(errs, fmt.Errorf("interrupted with %d segment(s) left: %w", r.Skipped, r.Interrupted))
	}
	return errors.Join(errs...)
}

// Executor plays a model reply: text goes to the speaker, directives to the
// actuator or the session, strictly in reply order.
type Executor struct {
	cfg      Config
	speaker  core.Speaker
	actuator Actuator
	session  Session
	sleep    func(time.Duration)
}

type Option func(*Executor)

// WithSleep replaces the settle timer, used by tests.
func WithSleep(fn func(time.Duration)) Option {
	return func(e *Executor) {
		e.sleep = fn
	}
}

func New(cfg Config, speaker core.Speaker, act Actuator, session Session, opts ...Option) *Executor {
	e := &Executor{
		cfg:      cfg,
		speaker:  speaker,
		actuator: act,
		session:  session,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute tokenizes the reply and runs it in order. A failing segment is
// reported and the rest of the reply still runs. The context is checked
// before each segment; a running segment is never cut short.
func (e *Executor) Execute(ctx context.Context, reply string) Report {
	return e.ExecuteSegments(ctx, directive.Tokenize(reply))
}

func (e *Executor) ExecuteSegments(ctx context.Context, segments []directive.Segment) Report {
	var report Report
	for i, seg := range segments {
		if interrupted(ctx, &report, len(segments)-i) {
			break
		}
		switch seg.Type {
		case directive.SegmentText:
			e.speak(ctx, seg.Text, &report)
		case directive.SegmentDirective:
			e.run(ctx, seg.Directive, &report)
		}
	}
	return report
}

// ExecuteLegacy runs every strict directive first and then speaks the
// cleaned reply once.
func (e *Executor) ExecuteLegacy(ctx context.Context, reply string) Report {
	var report Report
	cleaned, directives := directive.Strip(reply)
	for i, d := range directives {
		if interrupted(ctx, &report, len(directives)-i+1) {
			return report
		}
		e.run(ctx, d, &report)
	}
	if !interrupted(ctx, &report, 1) {
		e.speak(ctx, cleaned, &report)
	}
	return report
}

func interrupted(ctx context.Context, report *Report, left int) bool {
	if err := ctx.Err(); err != nil {
		report.Interrupted = err
		report.Skipped = left
		log.FromCtx(ctx).Warn().Err(err).Int("skipped", left).Msg("reply interrupted")
		return true
	}
	return false
}

func (e *Executor) speak(ctx context.Context, text string, report *Report) {
	if e.cfg.TextFilter != nil {
		text = e.cfg.TextFilter(text)
	}
	if strings.TrimSpace(text) == "" {
		return
	}
	if err := e.speaker.Speak(ctx, text, e.cfg.Language); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to speak")
		report.Speech = append(report.Speech, err)
		return
	}
	report.Spoken = append(report.Spoken, text)
}

func (e *Executor) run(ctx context.Context, d directive.Directive, report *Report) {
	logger := log.FromCtx(ctx).With().Str("directive", d.Name).Str("value", d.Value.Raw).Logger()

	err := e.dispatch(ctx, d)
	switch {
	case err == nil:
		logger.Debug().Msg("directive executed")
		report.Executed = append(report.Executed, d)
	case errors.Is(err, core.ErrUnknownDirective):
		logger.Warn().Msg("ignoring unknown directive")
		report.Unknown = append(report.Unknown, d)
	case errors.Is(err, core.ErrInvalidMagnitude):
		logger.Warn().Err(err).Msg("ignoring motion with invalid magnitude")
		report.Failed = append(report.Failed, Failure{Directive: d, Err: err})
	default:
		logger.Error().Err(err).Msg("directive failed")
		report.Failed = append(report.Failed, Failure{Directive: d, Err: err})
	}
}

// dispatch looks up the actuator table first, then the patient table, then
// the session kinds.
func (e *Executor) dispatch(ctx context.Context, d directive.Directive) error {
	if m, ok := actuator.MotionFor(d.Kind); ok {
		// Every motion directive settles, even a rejected one.
		defer e.sleep(e.cfg.Settle)
		magnitude, ok := d.Value.Number()
		if !ok {
			return fmt.Errorf("%w: %q", core.ErrInvalidMagnitude, d.Value.Raw)
		}
		return e.actuator.Move(ctx, m, magnitude)
	}

	if field, ok := patient.FieldFor(d.Kind); ok {
		return e.session.Mutate(func(rec core.PatientRecord) core.PatientRecord {
			return patient.Apply(rec, field, d.Value)
		})
	}

	switch d.Kind {
	case directive.KindChangeUser:
		return e.session.ChangeUser(ctx, d.Value)
	case directive.KindRegisterUser:
		return e.session.RegisterUser(ctx, d.Value)
	}

	return fmt.Errorf("%w: %s", core.ErrUnknownDirective, d.Name)
}
