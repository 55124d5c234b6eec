package actuator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/pkg/log"
)

// PinBank drives individual output lines, addressed by BCM number.
type PinBank interface {
	Set(pin int, high bool) error
}

// Motor is the pair of control lines of one wheel motor.
type Motor struct {
	Pos int
	Neg int
}

type Config struct {
	LeftFront  Motor
	LeftRear   Motor
	RightFront Motor
	RightRear  Motor

	// Pulse length per unit of magnitude.
	TranslationScale time.Duration
	RotationScale    time.Duration
	// Longest pulse the driver accepts; larger magnitudes are rejected.
	MaxPulse time.Duration
}

func DefaultConfig() Config {
	return Config{
		LeftFront:        Motor{Pos: 16, Neg: 17},
		LeftRear:         Motor{Pos: 27, Neg: 22},
		RightFront:       Motor{Pos: 23, Neg: 24},
		RightRear:        Motor{Pos: 25, Neg: 26},
		TranslationScale: 100 * time.Millisecond,
		RotationScale:    10 * time.Millisecond,
		MaxPulse:         30 * time.Second,
	}
}

type State int

const (
	Idle State = iota
	Actuating
)

func (s State) String() string {
	if s == Actuating {
		return "actuating"
	}
	return "idle"
}

// Driver owns the motor lines. Every pulse ends with all lines low.
type Driver struct {
	cfg   Config
	pins  PinBank
	sleep func(time.Duration)

	mu    sync.Mutex
	state State
}

type Option func(*Driver)

// WithSleep replaces the pulse timer, used by tests.
func WithSleep(fn func(time.Duration)) Option {
	return func(d *Driver) {
		d.sleep = fn
	}
}

func NewDriver(cfg Config, pins PinBank, opts ...Option) *Driver {
	d := &Driver{
		cfg:   cfg,
		pins:  pins,
		sleep: time.Sleep,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Driver) motors() [4]Motor {
	return [4]Motor{d.cfg.LeftFront, d.cfg.LeftRear, d.cfg.RightFront, d.cfg.RightRear}
}

func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// PulseFor converts a magnitude into the pulse length for a motion. It fails
// with ErrInvalidMagnitude when the magnitude is negative, not finite, or
// the pulse would exceed MaxPulse.
func (d *Driver) PulseFor(m Motion, magnitude float64) (time.Duration, error) {
	if magnitude < 0 || math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return 0, fmt.Errorf("%w: %v", core.ErrInvalidMagnitude, magnitude)
	}

	scale := d.cfg.TranslationScale
	if m.Rotational() {
		scale = d.cfg.RotationScale
	}
	pulse := magnitude * float64(scale)
	if pulse >= math.MaxInt64 || (d.cfg.MaxPulse > 0 && pulse > float64(d.cfg.MaxPulse)) {
		return 0, fmt.Errorf("%w: %v exceeds max pulse %s", core.ErrInvalidMagnitude, magnitude, d.cfg.MaxPulse)
	}
	return time.Duration(pulse), nil
}

// Move applies the pattern for m during magnitude × scale and then stops.
// A magnitude PulseFor rejects is a no-op that still stops the motors and
// returns ErrInvalidMagnitude.
func (d *Driver) Move(ctx context.Context, m Motion, magnitude float64) error {
	logger := log.FromCtx(ctx)

	pattern, ok := PatternFor(m)
	if !ok {
		return fmt.Errorf("unsupported motion %d", m)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = Actuating
	defer func() {
		if err := d.stopLocked(); err != nil {
			logger.Error().Err(err).Msg("failed to stop motors")
		}
		d.state = Idle
	}()

	pulse, err := d.PulseFor(m, magnitude)
	if err != nil {
		logger.Warn().Err(err).Str("motion", m.String()).Float64("magnitude", magnitude).Msg("ignoring motion with invalid magnitude")
		return err
	}
	logger.Info().Str("motion", m.String()).Float64("magnitude", magnitude).Dur("pulse", pulse).Msg("moving")

	if err := d.applyLocked(pattern); err != nil {
		return fmt.Errorf("apply %s pattern: %w", m, err)
	}
	d.sleep(pulse)
	return nil
}

// Stop deasserts every line.
func (d *Driver) Stop(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopLocked()
}

func (d *Driver) applyLocked(p Pattern) error {
	for i, motor := range d.motors() {
		drive := p[i]
		// Lower the released line first so both are never high together.
		if drive.Pos {
			if err := d.pins.Set(motor.Neg, false); err != nil {
				return err
			}
			if err := d.pins.Set(motor.Pos, true); err != nil {
				return err
			}
		} else {
			if err := d.pins.Set(motor.Pos, false); err != nil {
				return err
			}
			if err := d.pins.Set(motor.Neg, drive.Neg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Driver) stopLocked() error {
	var errs []error
	for _, motor := range d.motors() {
		if err := d.pins.Set(motor.Pos, false); err != nil {
			errs = append(errs, err)
		}
		if err := d.pins.Set(motor.Neg, false); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
