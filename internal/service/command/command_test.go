package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/internal/service/directive"
	"github.com/sandevgo/ferpy/internal/service/executor"
)

type fakeRobot struct {
	active  string
	db      core.PatientDatabase
	replies []string
	report  executor.Report
	err     error
	resets  int
}

func (f *fakeRobot) Active() (string, core.PatientRecord, bool) {
	rec, ok := f.db[f.active]
	return f.active, rec, ok
}

func (f *fakeRobot) Patients() core.PatientDatabase { return f.db.Clone() }

func (f *fakeRobot) RunReply(ctx context.Context, reply string) (executor.Report, error) {
	f.replies = append(f.replies, reply)
	return f.report, f.err
}

func (f *fakeRobot) ResetHistory() { f.resets++ }

func newFakeRobot() *fakeRobot {
	ana := core.NewPatientRecord("Ana")
	ana.Age = "41"
	return &fakeRobot{
		active: "Ana",
		db: core.PatientDatabase{
			"Ana":  ana,
			"Luis": core.NewPatientRecord("Luis"),
		},
	}
}

func TestRouter_Execute(t *testing.T) {
	robot := newFakeRobot()
	router := New(NewCommands(robot))

	tests := []struct {
		name     string
		input    string
		handled  bool
		contains []string
	}{
		{"plain text", "hola doctor", false, nil},
		{"unknown", "/bailar", true, []string{"Unknown command: /bailar"}},
		{"help", "/help", true, []string{"/exec", "/patient", "/patients", "/reset"}},
		{"active patient", "/patient", true, []string{"Ana", "`41`"}},
		{"patient by name", "/patient Luis", true, []string{"Luis", "desconocida"}},
		{"missing patient", "/patient Pedro", true, []string{"/patient failed", "Pedro"}},
		{"patients", "  /patients ", true, []string{"Patients (2)", "Ana (active)", "Luis"}},
		{"exec usage", "/exec", true, []string{"Usage"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, handled := router.Execute(context.Background(), tt.input)
			assert.Equal(t, tt.handled, handled)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
		})
	}
	assert.Empty(t, robot.replies)
}

func TestExecCommand_RunsReply(t *testing.T) {
	robot := newFakeRobot()
	robot.report = executor.Report{
		Spoken:   []string{"Voy"},
		Executed: []directive.Directive{{Kind: directive.KindMoveForward, Name: "mover_adelante", Value: directive.ParseValue("20")}},
		Unknown:  []directive.Directive{{Name: "bailar", Value: directive.ParseValue("1")}},
		Failed: []executor.Failure{{
			Directive: directive.Directive{Kind: directive.KindMoveLeft, Name: "mover_izquierda", Value: directive.ParseValue("x")},
			Err:       core.ErrInvalidMagnitude,
		}},
	}
	router := New(NewCommands(robot))

	out, handled := router.Execute(context.Background(), "/exec Voy <mover_adelante 20>")
	require.True(t, handled)
	assert.Equal(t, []string{"Voy <mover_adelante 20>"}, robot.replies)
	assert.Contains(t, out, "Spoken 1 segment(s)")
	assert.Contains(t, out, "ok <mover_adelante 20>")
	assert.Contains(t, out, "unknown <bailar 1>")
	assert.Contains(t, out, "failed <mover_izquierda x>: invalid magnitude")
}

func TestExecCommand_Error(t *testing.T) {
	robot := newFakeRobot()
	robot.err = errors.New("disk full")
	router := New(NewCommands(robot))

	out, handled := router.Execute(context.Background(), "/exec hola")
	require.True(t, handled)
	assert.Contains(t, out, "disk full")
}

func TestResetCommand(t *testing.T) {
	robot := newFakeRobot()
	router := New(NewCommands(robot))

	out, _ := router.Execute(context.Background(), "/reset")
	assert.Equal(t, 1, robot.resets)
	assert.Contains(t, out, "Conversation cleared")
}

func TestPatientCommand_NoSession(t *testing.T) {
	robot := newFakeRobot()
	robot.active = ""
	router := New(NewCommands(robot))

	out, _ := router.Execute(context.Background(), "/patient")
	assert.Contains(t, out, "No active patient")
}

func TestFormatter_Report(t *testing.T) {
	f := NewFormatter()

	out := f.Report(executor.Report{Spoken: []string{"Hola", "Listo"}})
	assert.Equal(t, "✅ Spoken 2 segment(s)\n", out)

	assert.Equal(t, "a\n\nb", f.Join("a\n", "", "b"))
}
