package inbox

import (
	"context"
	"strings"
	"time"
)

// Inbox collects what users type or say on any channel and hands it to the
// robot one line at a time.
type Inbox struct {
	lines       chan string
	nameTimeout time.Duration
}

func New(size int, nameTimeout time.Duration) *Inbox {
	if size <= 0 {
		size = 1
	}
	return &Inbox{
		lines:       make(chan string, size),
		nameTimeout: nameTimeout,
	}
}

// Push queues a line. It blocks while the queue is full.
func (i *Inbox) Push(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	select {
	case i.lines <- line:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (i *Inbox) ListenCommand(ctx context.Context) (string, error) {
	select {
	case line := <-i.lines:
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// ListenName waits for the next line for at most the name timeout. An empty
// name with a nil error means nobody answered.
func (i *Inbox) ListenName(ctx context.Context) (string, error) {
	if i.nameTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.nameTimeout)
		defer cancel()
	}

	select {
	case line := <-i.lines:
		return line, nil
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return "", nil
		}
		return "", ctx.Err()
	}
}
