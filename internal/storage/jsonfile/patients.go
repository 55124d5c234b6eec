package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/pkg/log"
)

// PatientStore keeps the patient database in a single JSON file, keyed by
// identity name.
type PatientStore struct {
	path string
	mu   sync.Mutex
}

func NewPatientStore(path string) *PatientStore {
	return &PatientStore{path: path}
}

// Load reads the database. A missing file is an empty database.
func (s *PatientStore) Load(ctx context.Context) (core.PatientDatabase, error) {
	s.mu.Lock()
	data, err := os.ReadFile(s.path)
	s.mu.Unlock()

	if err != nil {
		if os.IsNotExist(err) {
			log.FromCtx(ctx).Info().Str("path", s.path).Msg("patients database not found, starting empty")
			return make(core.PatientDatabase), nil
		}
		return nil, fmt.Errorf("failed to read patients database: %w", err)
	}

	db := make(core.PatientDatabase)
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("failed to parse patients database: %w", err)
	}
	for name, rec := range db {
		db[name] = rec.Normalize(name)
	}
	return db, nil
}

// Save replaces the whole file. The new content is written to a temporary
// file first so a crash never leaves a truncated database.
func (s *PatientStore) Save(ctx context.Context, db core.PatientDatabase) error {
	data, err := json.MarshalIndent(db, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal patients database: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create patients directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write patients database: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace patients database: %w", err)
	}

	log.FromCtx(ctx).Debug().Int("patients", len(db)).Msg("patients database saved")
	return nil
}
