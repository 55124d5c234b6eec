package gpio

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// DryRun records pin levels without touching hardware.
type DryRun struct {
	logger *zerolog.Logger

	mu     sync.Mutex
	levels map[int]bool
}

func NewDryRun(logger *zerolog.Logger) *DryRun {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &DryRun{logger: logger, levels: make(map[int]bool)}
}

func (d *DryRun) Set(pin int, high bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.levels[pin] != high {
		d.logger.Debug().Int("pin", pin).Bool("high", high).Msg("gpio")
	}
	d.levels[pin] = high
	return nil
}

// High returns the pins currently driven high, sorted.
func (d *DryRun) High() []int {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []int
	for pin, high := range d.levels {
		if high {
			out = append(out, pin)
		}
	}
	sort.Ints(out)
	return out
}

func (d *DryRun) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for pin := range d.levels {
		d.levels[pin] = false
	}
	return nil
}
