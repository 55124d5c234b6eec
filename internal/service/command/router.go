package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/ferpy/internal/core"
)

type Router struct {
	commands map[string]core.Command
}

func New(commands []core.Command) *Router {
	c := &Router{
		commands: make(map[string]core.Command),
	}
	c.Register(commands...)
	c.commands["help"] = &helpCommand{router: c}
	return c
}

// Register adds commands. It must not race with Execute.
func (c *Router) Register(commands ...core.Command) {
	for _, cmd := range commands {
		c.commands[cmd.Name()] = cmd
	}
}

// Execute runs input if it is a command. handled is false for plain text,
// which belongs to the robot.
func (c *Router) Execute(ctx context.Context, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	name := strings.TrimPrefix(parts[0], "/")
	args := parts[1:]

	cmd, ok := c.commands[name]
	if !ok {
		return fmt.Sprintf("Unknown command: /%s", name), true
	}

	result, err := cmd.Execute(ctx, args)
	if err != nil {
		return NewFormatter().Failure(name, err), true
	}
	return result, true
}

func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}

type helpCommand struct {
	router *Router
}

func (h *helpCommand) Name() string        { return "help" }
func (h *helpCommand) Description() string { return "List operator commands" }

func (h *helpCommand) Execute(ctx context.Context, args []string) (string, error) {
	f := NewFormatter()
	var items []string
	for _, cmd := range h.router.ListCommands() {
		items = append(items, fmt.Sprintf("/%s: %s", cmd.Name(), cmd.Description()))
	}
	return f.Join(
		f.Title("Commands"),
		f.Bullets(items),
		f.Hint("anything without a leading / is heard by the robot as speech"),
	), nil
}
