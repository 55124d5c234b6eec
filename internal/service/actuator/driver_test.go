package actuator

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/internal/service/directive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePins struct {
	t       *testing.T
	cfg     Config
	level   map[int]bool
	history []map[int]bool
	failOn  int
}

func newFakePins(t *testing.T, cfg Config) *fakePins {
	return &fakePins{t: t, cfg: cfg, level: make(map[int]bool), failOn: -1}
}

func (f *fakePins) Set(pin int, high bool) error {
	if pin == f.failOn && high {
		return errors.New("line busy")
	}
	f.level[pin] = high
	for _, m := range []Motor{f.cfg.LeftFront, f.cfg.LeftRear, f.cfg.RightFront, f.cfg.RightRear} {
		if f.level[m.Pos] && f.level[m.Neg] {
			f.t.Fatalf("both lines of motor %+v asserted", m)
		}
	}
	return nil
}

func (f *fakePins) snapshot() map[int]bool {
	out := make(map[int]bool, len(f.level))
	for k, v := range f.level {
		out[k] = v
	}
	return out
}

func (f *fakePins) allLow() bool {
	for _, v := range f.level {
		if v {
			return false
		}
	}
	return true
}

func TestDriver_MovePatterns(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		motion Motion
		high   []int
	}{
		{Forward, []int{16, 27, 23, 25}},
		{Backward, []int{17, 22, 24, 26}},
		{Left, []int{17, 27, 23, 26}},
		{Right, []int{16, 22, 24, 25}},
		{RotateLeft, []int{17, 22, 23, 25}},
		{RotateRight, []int{16, 27, 24, 26}},
	}

	for _, tt := range tests {
		t.Run(tt.motion.String(), func(t *testing.T) {
			pins := newFakePins(t, cfg)
			var during map[int]bool
			var slept time.Duration
			d := NewDriver(cfg, pins, WithSleep(func(dur time.Duration) {
				slept = dur
				during = pins.snapshot()
			}))

			require.NoError(t, d.Move(context.Background(), tt.motion, 5))

			var high []int
			for pin, v := range during {
				if v {
					high = append(high, pin)
				}
			}
			assert.ElementsMatch(t, tt.high, high)
			assert.True(t, pins.allLow(), "motors must be stopped after the pulse")
			assert.Equal(t, Idle, d.State())

			if tt.motion.Rotational() {
				assert.Equal(t, 50*time.Millisecond, slept)
			} else {
				assert.Equal(t, 500*time.Millisecond, slept)
			}
		})
	}
}

func TestDriver_InvalidMagnitude(t *testing.T) {
	tests := []struct {
		name      string
		motion    Motion
		magnitude float64
	}{
		{"negative", Forward, -3},
		{"nan", Left, math.NaN()},
		{"infinite", Backward, math.Inf(1)},
		{"above max pulse", Forward, 100000},
		{"duration overflow", Forward, 99999999999},
		{"rotation above max pulse", RotateLeft, 3001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			pins := newFakePins(t, cfg)
			var slept []time.Duration
			d := NewDriver(cfg, pins, WithSleep(func(dur time.Duration) { slept = append(slept, dur) }))

			err := d.Move(context.Background(), tt.motion, tt.magnitude)
			assert.ErrorIs(t, err, core.ErrInvalidMagnitude)
			assert.Empty(t, slept)
			assert.True(t, pins.allLow())
			assert.Equal(t, Idle, d.State())
		})
	}
}

func TestDriver_PulseAtLimit(t *testing.T) {
	cfg := DefaultConfig()
	d := NewDriver(cfg, newFakePins(t, cfg), WithSleep(func(time.Duration) {}))

	pulse, err := d.PulseFor(Forward, 300)
	require.NoError(t, err)
	assert.Equal(t, cfg.MaxPulse, pulse)

	pulse, err = d.PulseFor(RotateRight, 90)
	require.NoError(t, err)
	assert.Equal(t, 900*time.Millisecond, pulse)
}

func TestDriver_ZeroMagnitudeStillStops(t *testing.T) {
	cfg := DefaultConfig()
	pins := newFakePins(t, cfg)
	d := NewDriver(cfg, pins, WithSleep(func(time.Duration) {}))

	require.NoError(t, d.Move(context.Background(), RotateRight, 0))
	assert.True(t, pins.allLow())
}

func TestDriver_PinErrorStillStops(t *testing.T) {
	cfg := DefaultConfig()
	pins := newFakePins(t, cfg)
	pins.failOn = cfg.RightFront.Pos
	d := NewDriver(cfg, pins, WithSleep(func(time.Duration) {}))

	err := d.Move(context.Background(), Forward, 1)
	require.Error(t, err)
	assert.True(t, pins.allLow())
	assert.Equal(t, Idle, d.State())
}

func TestPatterns_OppositesInvert(t *testing.T) {
	pairs := [][2]Motion{{Forward, Backward}, {Left, Right}, {RotateLeft, RotateRight}}
	for _, p := range pairs {
		a, _ := PatternFor(p[0])
		b, _ := PatternFor(p[1])
		assert.Equal(t, a.Invert(), b)
	}
}

func TestMotionFor(t *testing.T) {
	m, ok := MotionFor(directive.KindMoveLeft)
	assert.True(t, ok)
	assert.Equal(t, Left, m)

	_, ok = MotionFor(directive.KindRecordAge)
	assert.False(t, ok)
}
