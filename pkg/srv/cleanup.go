package srv

import (
	"context"
	"fmt"
)

// Cleanup is a Service that only releases a resource at shutdown. Its Start
// waits for the context, so it never ends the process by itself.
type Cleanup struct {
	name string
	fn   func() error
}

func NewCleanup(name string, fn func() error) *Cleanup {
	return &Cleanup{name: name, fn: fn}
}

func (c *Cleanup) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (c *Cleanup) Shutdown(ctx context.Context) error {
	if c.fn == nil {
		return nil
	}
	if err := c.fn(); err != nil {
		return fmt.Errorf("close %s: %w", c.name, err)
	}
	return nil
}

func (c *Cleanup) String() string {
	return c.name
}
