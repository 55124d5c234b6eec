package core

import "context"

// PatientStore persists the whole patient database at once. Load returns an
// empty database when nothing was stored yet; Save replaces the stored copy
// or leaves it untouched on error.
type PatientStore interface {
	Load(ctx context.Context) (PatientDatabase, error)
	Save(ctx context.Context, db PatientDatabase) error
}
