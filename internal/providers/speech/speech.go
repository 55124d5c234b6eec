package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/sandevgo/ferpy/internal/core"
)

// Console prints what the robot says.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

func NewConsole(w io.Writer, prefix string) *Console {
	return &Console{w: w, prefix: prefix}
}

func (c *Console) Speak(_ context.Context, text, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.w, "%s%s\n", c.prefix, text)
	return err
}

// Command pipes the text into an external synthesizer such as espeak-ng.
// The {lang} placeholder in the arguments is replaced on every call.
type Command struct {
	args []string
}

func NewCommand(cmdline string) (*Command, error) {
	args := strings.Fields(cmdline)
	if len(args) == 0 {
		return nil, fmt.Errorf("empty speech command")
	}
	return &Command{args: args}, nil
}

func (c *Command) Speak(ctx context.Context, text, lang string) error {
	args := make([]string, len(c.args))
	for i, a := range c.args {
		args[i] = strings.ReplaceAll(a, "{lang}", lang)
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("run %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Multi speaks through every speaker in order and reports all failures.
type Multi []core.Speaker

func (m Multi) Speak(ctx context.Context, text, lang string) error {
	var errs []error
	for _, s := range m {
		if err := s.Speak(ctx, text, lang); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
