package executor

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/internal/service/actuator"
	"github.com/sandevgo/ferpy/internal/service/directive"
	"github.com/sandevgo/ferpy/internal/service/patient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects the side effects of every collaborator in call order.
type recorder struct {
	events []string
	rec    core.PatientRecord

	speakErr  error
	moveErr   error
	changeErr error
	sleeps    []time.Duration
}

func (r *recorder) Speak(_ context.Context, text, lang string) error {
	if r.speakErr != nil {
		return r.speakErr
	}
	r.events = append(r.events, "say:"+text)
	return nil
}

func (r *recorder) Move(_ context.Context, m actuator.Motion, magnitude float64) error {
	r.events = append(r.events, fmt.Sprintf("move:%s:%g", m, magnitude))
	return r.moveErr
}

func (r *recorder) Mutate(fn func(core.PatientRecord) core.PatientRecord) error {
	r.rec = fn(r.rec)
	r.events = append(r.events, "mutate")
	return nil
}

func (r *recorder) ChangeUser(_ context.Context, v directive.Value) error {
	r.events = append(r.events, "change_user:"+v.Raw)
	return r.changeErr
}

func (r *recorder) RegisterUser(_ context.Context, v directive.Value) error {
	r.events = append(r.events, "register_user:"+v.Raw)
	return nil
}

func newExecutor(r *recorder) *Executor {
	return New(DefaultConfig(), r, r, r, WithSleep(func(d time.Duration) {
		r.sleeps = append(r.sleeps, d)
	}))
}

func TestExecute_PreservesOrder(t *testing.T) {
	r := &recorder{}
	report := newExecutor(r).Execute(context.Background(), "A <mover_adelante 5> B")

	assert.Equal(t, []string{"say:A", "move:forward:5", "say:B"}, r.events)
	assert.Equal(t, []string{"A", "B"}, report.Spoken)
	require.Len(t, report.Executed, 1)
	assert.Equal(t, directive.KindMoveForward, report.Executed[0].Kind)
	assert.NoError(t, report.Err())
}

func TestExecute_SettleAfterMotion(t *testing.T) {
	r := &recorder{}
	newExecutor(r).Execute(context.Background(), "<rotar_izquierda 90> hola <registrar_edad 30>")

	assert.Equal(t, []time.Duration{500 * time.Millisecond}, r.sleeps)
}

func TestExecute_UnknownDirectiveDoesNotAbort(t *testing.T) {
	r := &recorder{}
	report := newExecutor(r).Execute(context.Background(), "Hola <bailar 1> <mover_atras 2> adiós")

	assert.Equal(t, []string{"say:Hola", "move:backward:2", "say:adiós"}, r.events)
	require.Len(t, report.Unknown, 1)
	assert.Equal(t, "bailar", report.Unknown[0].Name)
	assert.Empty(t, report.Failed)
	assert.NoError(t, report.Err())
}

func TestExecute_FailuresDoNotStopTheStream(t *testing.T) {
	r := &recorder{moveErr: errors.New("gpio busy"), changeErr: core.ErrNotRecognized}
	report := newExecutor(r).Execute(context.Background(),
		"<mover_derecha 3> <change_user 0> <registrar_peso 70.5> Listo")

	assert.Equal(t, []string{"move:right:3", "change_user:0", "mutate", "say:Listo"}, r.events)
	assert.Equal(t, "70.5", r.rec.Weight)
	require.Len(t, report.Failed, 2)

	err := report.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotRecognized)
	assert.Contains(t, err.Error(), "gpio busy")
}

func TestExecute_NonNumericMagnitude(t *testing.T) {
	r := &recorder{}
	report := newExecutor(r).Execute(context.Background(), "<mover_adelante mucho>")

	assert.Empty(t, r.events)
	require.Len(t, report.Failed, 1)
	assert.ErrorIs(t, report.Failed[0].Err, core.ErrInvalidMagnitude)
	assert.Equal(t, []time.Duration{500 * time.Millisecond}, r.sleeps)
}

func TestExecute_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &recorder{}
	report := newExecutor(r).Execute(ctx, "A <mover_adelante 5> B <rotar_derecha 90>")

	assert.Empty(t, r.events)
	assert.ErrorIs(t, report.Interrupted, context.Canceled)
	assert.Equal(t, 4, report.Skipped)
	assert.ErrorIs(t, report.Err(), context.Canceled)
}

// cancelOnMove cancels the turn while the first motion runs.
type cancelOnMove struct {
	*recorder
	cancel context.CancelFunc
}

func (c cancelOnMove) Move(ctx context.Context, m actuator.Motion, magnitude float64) error {
	c.cancel()
	return c.recorder.Move(ctx, m, magnitude)
}

func TestExecute_CancelStopsBetweenSegments(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := &recorder{}
	e := New(DefaultConfig(), r, cancelOnMove{recorder: r, cancel: cancel}, r, WithSleep(func(time.Duration) {}))
	report := e.Execute(ctx, "A <mover_adelante 5> B <rotar_derecha 90>")

	assert.Equal(t, []string{"say:A", "move:forward:5"}, r.events)
	assert.Equal(t, 2, report.Skipped)
	assert.ErrorIs(t, report.Interrupted, context.Canceled)
}

func TestExecuteLegacy_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &recorder{}
	report := newExecutor(r).ExecuteLegacy(ctx, "Voy <mover_adelante 5>")

	assert.Empty(t, r.events)
	assert.Equal(t, 2, report.Skipped)
}

func TestExecute_PatientDirectives(t *testing.T) {
	r := &recorder{rec: core.NewPatientRecord("Ana")}
	newExecutor(r).Execute(context.Background(),
		"<registrar_edad 34><registrar_altura 1.70><REGISTRAR_SEXO femenino><registrar_temperatura_paciente 37.2>")

	assert.Equal(t, "34", r.rec.Age)
	assert.Equal(t, "1.7", r.rec.Height)
	assert.Equal(t, "femenino", r.rec.Sex)
	assert.Equal(t, "37.2", r.rec.Temperature)
	assert.Equal(t, core.UnknownMasculine, r.rec.Notes)
}

func TestExecute_RegisterUser(t *testing.T) {
	r := &recorder{}
	newExecutor(r).Execute(context.Background(), "Encantado <register_user Pedro>")
	assert.Equal(t, []string{"say:Encantado", "register_user:Pedro"}, r.events)
}

func TestExecute_SpeechFailureIsReported(t *testing.T) {
	r := &recorder{speakErr: errors.New("no audio")}
	report := newExecutor(r).Execute(context.Background(), "Hola <mover_izquierda 1>")

	assert.Equal(t, []string{"move:left:1"}, r.events)
	assert.Len(t, report.Speech, 1)
	assert.Error(t, report.Err())
}

func TestExecute_TextFilter(t *testing.T) {
	r := &recorder{}
	cfg := DefaultConfig()
	cfg.TextFilter = func(s string) string {
		if s == "**" {
			return ""
		}
		return s
	}
	e := New(cfg, r, r, r, WithSleep(func(time.Duration) {}))
	e.Execute(context.Background(), "** <mover_adelante 1> ok")

	assert.Equal(t, []string{"move:forward:1", "say:ok"}, r.events)
}

func TestExecuteLegacy_DirectivesThenSpeech(t *testing.T) {
	r := &recorder{}
	report := newExecutor(r).ExecuteLegacy(context.Background(), "Avanzo <mover_adelante 2> y giro <rotar_derecha 45>.")

	assert.Equal(t, []string{"move:forward:2", "move:rotate_right:45", "say:Avanzo  y giro ."}, r.events)
	assert.Len(t, report.Executed, 2)
}

func TestExecuteLegacy_IgnoresTextValues(t *testing.T) {
	r := &recorder{}
	newExecutor(r).ExecuteLegacy(context.Background(), "Hola <register_user Pedro>")

	assert.Equal(t, []string{"say:Hola <register_user Pedro>"}, r.events)
}

func TestDispatch_EveryKindIsRouted(t *testing.T) {
	for _, k := range directive.Kinds() {
		_, motion := actuator.MotionFor(k)
		_, field := patient.FieldFor(k)
		session := k == directive.KindChangeUser || k == directive.KindRegisterUser
		assert.True(t, motion || field || session, k.String())
	}
}
