package gpio

import (
	"context"
	"testing"
	"time"

	"github.com/sandevgo/ferpy/internal/service/actuator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDryRun_DriverLeavesAllLow(t *testing.T) {
	bank := NewDryRun(nil)
	var seen []int

	drv := actuator.NewDriver(actuator.DefaultConfig(), bank, actuator.WithSleep(func(time.Duration) {
		seen = bank.High()
	}))

	require.NoError(t, drv.Move(context.Background(), actuator.Forward, 3))

	// forward drives the positive line of every motor
	assert.Equal(t, []int{16, 23, 25, 27}, seen)
	assert.Empty(t, bank.High())
}

func TestDryRun_Close(t *testing.T) {
	bank := NewDryRun(nil)
	require.NoError(t, bank.Set(5, true))
	require.NoError(t, bank.Close())
	assert.Empty(t, bank.High())
}
