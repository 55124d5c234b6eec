package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/internal/service/directive"
	"github.com/sandevgo/ferpy/internal/service/patient"
	"github.com/sandevgo/ferpy/pkg/log"
)

var ErrNoSession = errors.New("no active patient")

type State int

const (
	Unidentified State = iota
	RegistrationPending
	Identified
)

func (s State) String() string {
	switch s {
	case RegistrationPending:
		return "registration_pending"
	case Identified:
		return "identified"
	default:
		return "unidentified"
	}
}

type NameListener interface {
	ListenName(ctx context.Context) (string, error)
}

type Config struct {
	Language string
	// NameAttempts bounds how many times the user is asked for a name.
	NameAttempts int
	// MaxCycles bounds how many camera rounds are tried before falling back
	// to the default identity.
	MaxCycles int
	// Countdown announces the photo before the initial capture.
	Countdown bool
}

func DefaultConfig() Config {
	return Config{
		Language:     "es",
		NameAttempts: 2,
		MaxCycles:    10,
		Countdown:    true,
	}
}

// Machine tracks which patient the robot is talking to.
type Machine struct {
	cfg      Config
	face     core.FaceRecognizer
	camera   core.Camera
	listener NameListener
	speaker  core.Speaker
	store    core.PatientStore
	book     *patient.Book

	mu      sync.RWMutex
	state   State
	pending string
	name    string
	record  core.PatientRecord
}

func NewMachine(
	cfg Config,
	face core.FaceRecognizer,
	camera core.Camera,
	listener NameListener,
	speaker core.Speaker,
	store core.PatientStore,
	book *patient.Book,
) *Machine {
	if cfg.NameAttempts <= 0 {
		cfg.NameAttempts = 1
	}
	if cfg.MaxCycles <= 0 {
		cfg.MaxCycles = 1
	}
	return &Machine{
		cfg:      cfg,
		face:     face,
		camera:   camera,
		listener: listener,
		speaker:  speaker,
		store:    store,
		book:     book,
	}
}

func (m *Machine) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Active returns the active identity and a copy of its record.
func (m *Machine) Active() (string, core.PatientRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.name, m.record, m.state == Identified
}

// Identify runs the start-up identification: camera and face matching first,
// then the spoken name, and finally the default identity.
func (m *Machine) Identify(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	name := ""
	for cycle := 1; cycle <= m.cfg.MaxCycles && name == ""; cycle++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		name, err = m.identifyOnce(ctx)
		if err != nil {
			logger.Warn().Err(err).Int("cycle", cycle).Msg("identification attempt failed")
		}
	}
	if name == "" {
		logger.Warn().Msg("identification cycles exhausted, using default identity")
		name = core.DefaultPatient
	}

	if err := m.activate(ctx, name); err != nil {
		return err
	}
	m.say(ctx, fmt.Sprintf("Bienvenido, %s!", name))
	return nil
}

func (m *Machine) identifyOnce(ctx context.Context) (string, error) {
	if m.cfg.Countdown {
		for _, line := range []string{"Por favor, mire a la cámara.", "Tomando una nueva imagen en 3...", "2...", "1..."} {
			m.say(ctx, line)
		}
	}

	img, err := m.camera.Capture(ctx)
	if err != nil {
		return "", fmt.Errorf("capture: %w", err)
	}

	detected, err := m.face.Detect(ctx, img)
	if err != nil {
		return "", fmt.Errorf("detect face: %w", err)
	}

	if !detected {
		m.say(ctx, "No se detectó ninguna cara. Por favor, di tu nombre.")
		if name := m.askName(ctx); name != "" {
			return name, nil
		}
		return core.DefaultPatient, nil
	}

	name, err := m.face.Identify(ctx, img)
	if err == nil && name != "" {
		return name, nil
	}
	if err != nil && !errors.Is(err, core.ErrNotRecognized) && !errors.Is(err, core.ErrNoFace) {
		return "", fmt.Errorf("identify face: %w", err)
	}

	m.say(ctx, "Se detectó una cara, pero no está registrada. Por favor, di tu nombre para registrarte.")
	name = m.askName(ctx)
	if name == "" {
		return core.DefaultPatient, nil
	}
	if err := m.face.Register(ctx, name, img); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("patient", name).Msg("failed to register face")
	}
	return name, nil
}

// askName asks for a name up to NameAttempts times. It returns "" when the
// budget is exhausted.
func (m *Machine) askName(ctx context.Context) string {
	logger := log.FromCtx(ctx)

	for attempt := 1; attempt <= m.cfg.NameAttempts; attempt++ {
		name, err := m.listener.ListenName(ctx)
		if ctx.Err() != nil {
			return ""
		}
		if err != nil {
			logger.Warn().Err(err).Int("attempt", attempt).Msg("failed to capture name")
		}
		if name = strings.TrimSpace(name); name != "" {
			m.setPending(name)
			logger.Info().Str("patient", name).Msg("name captured")
			return name
		}
		m.say(ctx, "No se pudo capturar tu nombre. Intenta de nuevo.")
	}
	return ""
}

func (m *Machine) setPending(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = RegistrationPending
	m.pending = name
}

// ChangeUser re-identifies the patient in front of the camera. On failure the
// current identity is kept.
func (m *Machine) ChangeUser(ctx context.Context, v directive.Value) error {
	if v.Type != directive.ValueInt || v.Int != 0 {
		return fmt.Errorf("%w: change_user expects 0, got %q", core.ErrInvalidValue, v.Raw)
	}
	current, _, ok := m.Active()
	if !ok {
		return ErrNoSession
	}

	img, err := m.camera.Capture(ctx)
	if err != nil {
		m.say(ctx, fmt.Sprintf("No pude tomar la foto. Sigo atendiendo a %s.", current))
		return fmt.Errorf("change user: capture: %w", err)
	}

	name, err := m.face.Identify(ctx, img)
	if err != nil || name == "" {
		m.say(ctx, fmt.Sprintf("No pude reconocerte. Sigo atendiendo a %s.", current))
		if err == nil {
			err = core.ErrNotRecognized
		}
		return fmt.Errorf("change user: %w", err)
	}

	if err := m.activate(ctx, name); err != nil {
		return fmt.Errorf("change user: %w", err)
	}
	return nil
}

// RegisterUser creates (or reuses) the record for the given name and makes it
// active without looking at the camera.
func (m *Machine) RegisterUser(ctx context.Context, v directive.Value) error {
	name := strings.TrimSpace(v.Raw)
	if name == "" {
		return fmt.Errorf("%w: register_user needs a name", core.ErrInvalidValue)
	}
	if err := m.activate(ctx, name); err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	return nil
}

// Resume makes name the active patient without going through the camera.
func (m *Machine) Resume(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.ErrInvalidValue
	}
	return m.activate(ctx, name)
}

// activate flushes the current patient, then loads or creates the record for
// name and makes it active. Nothing changes if a write fails.
func (m *Machine) activate(ctx context.Context, name string) error {
	logger := log.FromCtx(ctx)

	m.mu.RLock()
	prevState, prevName, prevRecord := m.state, m.name, m.record
	m.mu.RUnlock()

	if prevState == Identified {
		if prevName == name {
			return nil
		}
		before := m.book.Snapshot()
		m.book.Put(prevRecord)
		if err := m.store.Save(ctx, m.book.Snapshot()); err != nil {
			m.book.Reset(before)
			return fmt.Errorf("flush %s: %w", prevName, err)
		}
		logger.Debug().Str("patient", prevName).Msg("flushed previous patient")
	}

	before := m.book.Snapshot()
	rec, created := m.book.Ensure(name)
	if created {
		if err := m.store.Save(ctx, m.book.Snapshot()); err != nil {
			m.book.Reset(before)
			return fmt.Errorf("create record for %s: %w", name, err)
		}
		logger.Info().Str("patient", name).Msg("registered new patient")
	}

	m.mu.Lock()
	m.state = Identified
	m.pending = ""
	m.name = name
	m.record = rec
	m.mu.Unlock()

	logger.Info().Str("patient", name).Str("previous", prevName).Msg("active patient changed")
	return nil
}

// Mutate applies fn to the active record.
func (m *Machine) Mutate(fn func(core.PatientRecord) core.PatientRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != Identified {
		return ErrNoSession
	}
	m.record = fn(m.record)
	return nil
}

// Commit writes the active record into the database and persists it.
func (m *Machine) Commit(ctx context.Context) error {
	_, rec, ok := m.Active()
	if !ok {
		return ErrNoSession
	}
	before := m.book.Snapshot()
	m.book.Put(rec)
	if err := m.store.Save(ctx, m.book.Snapshot()); err != nil {
		m.book.Reset(before)
		return fmt.Errorf("save patients: %w", err)
	}
	return nil
}

// Checkpoint captures the in-memory state so a failed turn can be undone.
type Checkpoint struct {
	state  State
	name   string
	record core.PatientRecord
	db     core.PatientDatabase
}

func (m *Machine) Checkpoint() Checkpoint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Checkpoint{state: m.state, name: m.name, record: m.record, db: m.book.Snapshot()}
}

func (m *Machine) Restore(cp Checkpoint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = cp.state
	m.name = cp.name
	m.record = cp.record
	m.pending = ""
	m.book.Reset(cp.db)
}

func (m *Machine) say(ctx context.Context, text string) {
	if err := m.speaker.Speak(ctx, text, m.cfg.Language); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to speak")
	}
}
