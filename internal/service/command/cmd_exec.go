package command

import (
	"context"
	"strings"
)

type ExecCommand struct {
	robot     Robot
	formatter *Formatter
}

func NewExecCommand(robot Robot) *ExecCommand {
	return &ExecCommand{
		robot:     robot,
		formatter: NewFormatter(),
	}
}

func (c *ExecCommand) Name() string {
	return "exec"
}

func (c *ExecCommand) Description() string {
	return "Run a reply with directives without asking the model"
}

func (c *ExecCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Usage("/exec <reply>",
			"/exec Voy para allá <mover_adelante 20>",
			"/exec <rotar_izquierda 90> <registrar_peso 70>",
		), nil
	}

	report, err := c.robot.RunReply(ctx, strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	return c.formatter.Report(report), nil
}

type ResetCommand struct {
	robot     Robot
	formatter *Formatter
}

func NewResetCommand(robot Robot) *ResetCommand {
	return &ResetCommand{
		robot:     robot,
		formatter: NewFormatter(),
	}
}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Description() string {
	return "Forget the conversation history"
}

func (c *ResetCommand) Execute(ctx context.Context, args []string) (string, error) {
	c.robot.ResetHistory()
	return c.formatter.Done("Conversation cleared"), nil
}
