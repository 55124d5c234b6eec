package gpio

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Bank drives BCM numbered pins of the host through periph.
type Bank struct {
	mu   sync.Mutex
	pins map[int]gpio.PinIO
}

// NewBank initializes the host drivers and claims every pin as a low output.
func NewBank(pins []int) (*Bank, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host: %w", err)
	}

	b := &Bank{pins: make(map[int]gpio.PinIO, len(pins))}
	for _, n := range pins {
		p := gpioreg.ByName(fmt.Sprintf("GPIO%d", n))
		if p == nil {
			return nil, fmt.Errorf("gpio %d not found", n)
		}
		if err := p.Out(gpio.Low); err != nil {
			return nil, fmt.Errorf("gpio %d as output: %w", n, err)
		}
		b.pins[n] = p
	}
	return b, nil
}

func (b *Bank) Set(pin int, high bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.pins[pin]
	if !ok {
		return fmt.Errorf("gpio %d not claimed", pin)
	}
	level := gpio.Low
	if high {
		level = gpio.High
	}
	return p.Out(level)
}

// Close drives every claimed pin low.
func (b *Bank) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var errs []error
	for n, p := range b.pins {
		if err := p.Out(gpio.Low); err != nil {
			errs = append(errs, fmt.Errorf("gpio %d: %w", n, err))
		}
	}
	return errors.Join(errs...)
}
