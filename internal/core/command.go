package core

import "context"

// Command is an operator command typed as "/name args..." on a text channel.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, args []string) (string, error)
}

type CmdRouter interface {
	Execute(ctx context.Context, input string) (string, bool)
}
