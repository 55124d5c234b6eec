package patient

import (
	"sync"

	"github.com/sandevgo/ferpy/internal/core"
)

// Book is the in-memory patient database shared by the session and the
// persistence layer.
type Book struct {
	mu sync.RWMutex
	db core.PatientDatabase
}

func NewBook(db core.PatientDatabase) *Book {
	if db == nil {
		db = make(core.PatientDatabase)
	}
	clean := make(core.PatientDatabase, len(db))
	for name, rec := range db {
		clean[name] = rec.Normalize(name)
	}
	return &Book{db: clean}
}

func (b *Book) Get(name string) (core.PatientRecord, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	rec, ok := b.db[name]
	return rec, ok
}

// Ensure returns the record for name, creating a blank one if the identity
// has never been seen. created reports whether a record was added.
func (b *Book) Ensure(name string) (rec core.PatientRecord, created bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if rec, ok := b.db[name]; ok {
		return rec, false
	}
	rec = core.NewPatientRecord(name)
	b.db[name] = rec
	return rec, true
}

func (b *Book) Put(rec core.PatientRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.db[rec.Name] = rec
}

// Snapshot returns a copy that is safe to hand to a store.
func (b *Book) Snapshot() core.PatientDatabase {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.db.Clone()
}

// Reset replaces the whole content, used to roll back a failed turn.
func (b *Book) Reset(db core.PatientDatabase) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.db = db.Clone()
}

func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.db)
}
