package srv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, s)
}

type fakeService struct {
	name    string
	rec     *recorder
	startFn func(ctx context.Context) error
}

func (f *fakeService) Start(ctx context.Context) error { return f.startFn(ctx) }

func (f *fakeService) Shutdown(ctx context.Context) error {
	f.rec.add(f.name)
	return nil
}

func TestServices_FailureStopsAllInReverseOrder(t *testing.T) {
	rec := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	blocking := func(ctx context.Context) error { <-ctx.Done(); return ctx.Err() }
	services := []Service{
		&fakeService{name: "db", rec: rec, startFn: blocking},
		&fakeService{name: "robot", rec: rec, startFn: func(context.Context) error { return errors.New("boom") }},
	}

	StartServices(ctx, cancel, services)

	done := make(chan struct{})
	go func() {
		ShutdownServices(ctx, services)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("services were not shut down after a failure")
	}
	assert.Equal(t, []string{"robot", "db"}, rec.order)
}

func TestCleanup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	closed := 0
	c := NewCleanup("database", func() error {
		closed++
		return errors.New("locked")
	})

	started := make(chan error, 1)
	go func() { started <- c.Start(ctx) }()
	cancel()
	assert.NoError(t, <-started)

	err := c.Shutdown(context.Background())
	assert.EqualError(t, err, "close database: locked")
	assert.Equal(t, 1, closed)
	assert.Equal(t, "database", name(c))
	assert.Contains(t, name(&fakeService{}), "fakeService")
}
