package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "data", "ferpy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPatientsRepo_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewPatientsRepo(newTestDB(t))

	empty, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	ana := core.NewPatientRecord("Ana")
	ana.Weight = "61.5"
	luis := core.NewPatientRecord("Luis")
	require.NoError(t, repo.Save(ctx, core.PatientDatabase{"Ana": ana, "Luis": luis}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.PatientDatabase{"Ana": ana, "Luis": luis}, got)

	// Save replaces the whole set.
	require.NoError(t, repo.Save(ctx, core.PatientDatabase{"Ana": ana}))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana"}, got.Names())
}

func TestPatientsRepo_CanceledContextKeepsData(t *testing.T) {
	repo := NewPatientsRepo(newTestDB(t))
	require.NoError(t, repo.Save(context.Background(), core.PatientDatabase{"Ana": core.NewPatientRecord("Ana")}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, repo.Save(ctx, core.PatientDatabase{}))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestTranscriptRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewTranscriptRepo(newTestDB(t))

	require.NoError(t, repo.AddMessages(ctx, "t1", "Ana",
		core.Message{Role: core.RoleUser, Content: "hola"},
		core.Message{Role: core.RoleModel, Content: "buenos días"},
	))
	require.NoError(t, repo.AddMessages(ctx, "t2", "Luis",
		core.Message{Role: core.RoleUser, Content: "me duele"},
	))
	require.NoError(t, repo.AddMessages(ctx, "t3", "Ana",
		core.Message{Role: core.RoleUser, Content: "gracias"},
	))

	msgs, err := repo.GetMessages(ctx, "Ana", 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "buenos días", msgs[0].Content)
	assert.Equal(t, "gracias", msgs[1].Content)
}
