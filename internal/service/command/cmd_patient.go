package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/ferpy/internal/core"
)

type PatientCommand struct {
	robot     Robot
	formatter *Formatter
}

func NewPatientCommand(robot Robot) *PatientCommand {
	return &PatientCommand{
		robot:     robot,
		formatter: NewFormatter(),
	}
}

func (c *PatientCommand) Name() string {
	return "patient"
}

func (c *PatientCommand) Description() string {
	return "Show the active patient, or another one by name"
}

func (c *PatientCommand) Execute(ctx context.Context, args []string) (string, error) {
	var rec core.PatientRecord
	if len(args) == 0 {
		name, active, ok := c.robot.Active()
		if !ok {
			return c.formatter.Hint("No active patient"), nil
		}
		rec = active
		rec.Name = name
	} else {
		name := strings.Join(args, " ")
		found, ok := c.robot.Patients()[name]
		if !ok {
			return "", fmt.Errorf("unknown patient %q", name)
		}
		rec = found
	}
	return c.formatter.Patient(rec), nil
}

type PatientsCommand struct {
	robot     Robot
	formatter *Formatter
}

func NewPatientsCommand(robot Robot) *PatientsCommand {
	return &PatientsCommand{
		robot:     robot,
		formatter: NewFormatter(),
	}
}

func (c *PatientsCommand) Name() string {
	return "patients"
}

func (c *PatientsCommand) Description() string {
	return "List known patients"
}

func (c *PatientsCommand) Execute(ctx context.Context, args []string) (string, error) {
	names := c.robot.Patients().Names()
	if len(names) == 0 {
		return c.formatter.Hint("No patients yet"), nil
	}
	active, _, _ := c.robot.Active()
	for i, n := range names {
		if n == active {
			names[i] = n + " (active)"
		}
	}
	return c.formatter.Join(
		c.formatter.Title(fmt.Sprintf("Patients (%d)", len(names))),
		c.formatter.Bullets(names),
	), nil
}
