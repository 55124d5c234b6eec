package face

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sandevgo/ferpy/pkg/log"
)

// Entry is the stored encoding of one registered face.
type Entry struct {
	Encoding []float64 `json:"encoding"`
}

// FileStorage keeps the face database as a JSON object keyed by name.
type FileStorage struct {
	path string
	mu   sync.RWMutex
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{
		path: path,
	}
}

// Load reads the database. A missing file is an empty database.
func (s *FileStorage) Load(ctx context.Context) (map[string]Entry, error) {
	s.mu.RLock()
	data, err := os.ReadFile(s.path)
	s.mu.RUnlock()

	if err != nil {
		if os.IsNotExist(err) {
			log.FromCtx(ctx).Debug().Str("path", s.path).Msg("face database not found, starting empty")
			return make(map[string]Entry), nil
		}
		return nil, fmt.Errorf("failed to read face database: %w", err)
	}

	db := make(map[string]Entry)
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("failed to parse face database: %w", err)
	}
	return db, nil
}

// Put adds or replaces the encoding for name.
func (s *FileStorage) Put(ctx context.Context, name string, encoding []float64) error {
	db, err := s.Load(ctx)
	if err != nil {
		return err
	}
	db[name] = Entry{Encoding: encoding}
	return s.save(db)
}

func (s *FileStorage) save(db map[string]Entry) error {
	data, err := json.MarshalIndent(db, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal face database: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create face database directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write face database: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace face database: %w", err)
	}
	return nil
}
