package robot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/internal/service/executor"
	"github.com/sandevgo/ferpy/internal/service/patient"
	"github.com/sandevgo/ferpy/internal/service/session"
	"github.com/sandevgo/ferpy/pkg/log"
	"github.com/sandevgo/ferpy/pkg/retry"
)

const apology = "Lo siento, no pude procesar tu solicitud."

var ErrStopped = errors.New("robot stopped")

type CommandListener interface {
	ListenCommand(ctx context.Context) (string, error)
}

type Transcript interface {
	AddMessages(ctx context.Context, turnID, patient string, msgs ...core.Message) error
}

type Config struct {
	Language    string
	Legacy      bool
	RequireWake bool
	WakePhrases []string
}

type Deps struct {
	Conversation core.Conversation
	Listener     CommandListener
	Camera       core.Camera
	Speaker      core.Speaker
	Status       core.StatusReporter
	Session      *session.Machine
	Executor     *executor.Executor
	Book         *patient.Book
	Retrier      *retry.Retrier
	// Optional.
	Transcript Transcript
}

// Robot runs the conversation loop: listen, ask the model, play the reply
// and persist the patient.
type Robot struct {
	cfg  Config
	deps Deps
	wake Wake

	mu      sync.Mutex
	history core.History
	stopped bool
}

func New(cfg Config, deps Deps) *Robot {
	if deps.Status == nil {
		deps.Status = LogStatus{}
	}
	if deps.Retrier == nil {
		deps.Retrier = retry.NewDefaultRetrier()
	}
	return &Robot{
		cfg:  cfg,
		deps: deps,
		wake: NewWake(cfg.WakePhrases),
	}
}

// Start identifies the patient and then serves commands until ctx is done.
func (r *Robot) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	r.deps.Status.SetState(ctx, core.DisplayBoot)

	if err := r.deps.Session.Identify(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("identify patient: %w", err)
	}

	name, _, _ := r.deps.Session.Active()
	logger.Info().Str("patient", name).Msg("robot ready")

	for {
		r.deps.Status.SetState(ctx, core.DisplayLoading)

		text, err := r.deps.Listener.ListenCommand(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			logger.Warn().Err(err).Msg("failed to listen for command")
			continue
		}

		text, ok := r.accept(text)
		if !ok {
			logger.Debug().Str("heard", text).Msg("ignoring input without wake phrase")
			continue
		}

		r.deps.Status.SetState(ctx, core.DisplayLine)
		if _, err := r.Turn(ctx, text); err != nil {
			logger.Error().Err(err).Msg("turn failed")
		}
	}
}

// Shutdown waits for the turn in progress and refuses new ones, so the
// motors and the store are released only after the last reply settled.
func (r *Robot) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	return nil
}

func (r *Robot) accept(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	if !r.cfg.RequireWake {
		return text, true
	}
	rest, ok := r.wake.Strip(text)
	if !ok {
		return text, false
	}
	if rest == "" {
		// Wake phrase alone, answer it as a greeting.
		return text, true
	}
	return rest, true
}

// Turn sends one user utterance to the model and executes the reply. The
// patient changes of a turn are either fully persisted or rolled back.
func (r *Robot) Turn(ctx context.Context, text string) (executor.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return executor.Report{}, ErrStopped
	}

	turnID := uuid.NewString()
	ctx = log.WithFields(ctx, map[string]any{"turn_id": turnID})
	logger := log.FromCtx(ctx)

	name, rec, ok := r.deps.Session.Active()
	if !ok {
		return executor.Report{}, session.ErrNoSession
	}

	image, err := r.deps.Camera.Capture(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("continuing without camera image")
		image = nil
	}

	var reply string
	var history core.History
	err = r.deps.Retrier.Do(ctx, func() error {
		var err error
		reply, history, err = r.deps.Conversation.Interact(ctx, r.history, text, image, rec)
		return err
	})
	if err != nil {
		if sErr := r.deps.Speaker.Speak(ctx, apology, r.cfg.Language); sErr != nil {
			logger.Warn().Err(sErr).Msg("failed to speak apology")
		}
		return executor.Report{}, fmt.Errorf("interact: %w", err)
	}
	r.history = history
	logger.Info().Str("patient", name).Str("reply", reply).Msg("model replied")

	if r.deps.Transcript != nil {
		msgs := []core.Message{
			{Role: core.RoleUser, Content: text},
			{Role: core.RoleModel, Content: reply},
		}
		if err := r.deps.Transcript.AddMessages(ctx, turnID, name, msgs...); err != nil {
			logger.Warn().Err(err).Msg("failed to store transcript")
		}
	}

	return r.execute(ctx, reply)
}

// RunReply executes a reply as if the model had produced it.
func (r *Robot) RunReply(ctx context.Context, reply string) (executor.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return executor.Report{}, ErrStopped
	}
	return r.execute(ctx, reply)
}

func (r *Robot) execute(ctx context.Context, reply string) (executor.Report, error) {
	checkpoint := r.deps.Session.Checkpoint()

	var report executor.Report
	if r.cfg.Legacy {
		report = r.deps.Executor.ExecuteLegacy(ctx, reply)
	} else {
		report = r.deps.Executor.Execute(ctx, reply)
	}

	// What already ran is kept even when the turn was interrupted.
	if err := r.deps.Session.Commit(context.WithoutCancel(ctx)); err != nil {
		r.deps.Session.Restore(checkpoint)
		return report, fmt.Errorf("persist patient: %w", err)
	}

	if err := report.Err(); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Int("failed", len(report.Failed)).Msg("reply executed with failures")
	}
	return report, nil
}

// ResetHistory forgets the conversation, the patient data is kept.
func (r *Robot) ResetHistory() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = nil
}

func (r *Robot) Active() (string, core.PatientRecord, bool) {
	return r.deps.Session.Active()
}

func (r *Robot) Patients() core.PatientDatabase {
	db := r.deps.Book.Snapshot()
	// The active record may hold changes not yet committed.
	if name, rec, ok := r.deps.Session.Active(); ok {
		db[name] = rec
	}
	return db
}
