package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/pkg/log"
)

// Pusher receives lines typed by the operator.
type Pusher interface {
	Push(ctx context.Context, line string) error
}

// ReadLine is the terminal stand-in for the microphone and the loudspeaker.
type ReadLine struct {
	rl     *readline.Instance
	inbox  Pusher
	router core.CmdRouter
}

func NewReadLine(runtimePath string, inbox Pusher, router core.CmdRouter) (*ReadLine, error) {
	if err := os.MkdirAll(runtimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ">>> ",
		HistoryFile:     filepath.Join(runtimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		rl:     rl,
		inbox:  inbox,
		router: router,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("ReadLine console started. Type 'exit' to quit.")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		if out, ok := r.route(ctx, line); ok {
			fmt.Fprintln(r.rl.Stdout(), out)
			continue
		}

		if err := r.inbox.Push(ctx, line); err != nil {
			return nil
		}
	}
}

func (r *ReadLine) route(ctx context.Context, line string) (string, bool) {
	if r.router == nil {
		return "", false
	}
	return r.router.Execute(ctx, line)
}

// Speak prints what the robot says above the prompt.
func (r *ReadLine) Speak(ctx context.Context, text, lang string) error {
	_, err := fmt.Fprintf(r.rl.Stdout(), "Ferpy: %s\n", text)
	return err
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
