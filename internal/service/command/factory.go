package command

import (
	"context"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/internal/service/executor"
)

// Robot is what the operator commands can see and drive.
type Robot interface {
	Active() (string, core.PatientRecord, bool)
	Patients() core.PatientDatabase
	RunReply(ctx context.Context, reply string) (executor.Report, error)
	ResetHistory()
}

func NewCommands(robot Robot) []core.Command {
	return []core.Command{
		NewPatientCommand(robot),
		NewPatientsCommand(robot),
		NewExecCommand(robot),
		NewResetCommand(robot),
	}
}
