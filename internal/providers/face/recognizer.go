package face

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/pkg/log"
)

const DefaultTolerance = 0.6

type Encoder interface {
	Encode(ctx context.Context, image *core.Image) ([][]float64, error)
}

type Storage interface {
	Load(ctx context.Context) (map[string]Entry, error)
	Put(ctx context.Context, name string, encoding []float64) error
}

// Recognizer matches faces against the stored encodings by euclidean
// distance.
type Recognizer struct {
	encoder   Encoder
	storage   Storage
	tolerance float64

	mu      sync.Mutex
	last    *core.Image
	lastEnc [][]float64
}

func NewRecognizer(encoder Encoder, storage Storage, tolerance float64) *Recognizer {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Recognizer{
		encoder:   encoder,
		storage:   storage,
		tolerance: tolerance,
	}
}

// encode asks the encoder once per image; Detect followed by Identify on
// the same capture reuses the result.
func (r *Recognizer) encode(ctx context.Context, image *core.Image) ([][]float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if image != nil && image == r.last {
		return r.lastEnc, nil
	}
	enc, err := r.encoder.Encode(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("encode face: %w", err)
	}
	r.last, r.lastEnc = image, enc
	return enc, nil
}

func (r *Recognizer) Detect(ctx context.Context, image *core.Image) (bool, error) {
	enc, err := r.encode(ctx, image)
	if err != nil {
		return false, err
	}
	return len(enc) > 0, nil
}

// Identify returns the closest registered face within tolerance of the
// first face in the image.
func (r *Recognizer) Identify(ctx context.Context, image *core.Image) (string, error) {
	enc, err := r.encode(ctx, image)
	if err != nil {
		return "", err
	}
	if len(enc) == 0 {
		return "", core.ErrNoFace
	}

	db, err := r.storage.Load(ctx)
	if err != nil {
		return "", err
	}

	best, bestDist := "", math.Inf(1)
	for name, entry := range db {
		d, ok := distance(enc[0], entry.Encoding)
		if !ok {
			continue
		}
		// Ties resolve alphabetically so map order never matters.
		if d < bestDist || (d == bestDist && name < best) {
			best, bestDist = name, d
		}
	}

	if best == "" || bestDist > r.tolerance {
		log.FromCtx(ctx).Debug().Float64("distance", bestDist).Msg("no registered face within tolerance")
		return "", core.ErrNotRecognized
	}
	log.FromCtx(ctx).Debug().Str("patient", best).Float64("distance", bestDist).Msg("face recognized")
	return best, nil
}

func (r *Recognizer) Register(ctx context.Context, name string, image *core.Image) error {
	enc, err := r.encode(ctx, image)
	if err != nil {
		return err
	}
	if len(enc) == 0 {
		return core.ErrNoFace
	}
	if err := r.storage.Put(ctx, name, enc[0]); err != nil {
		return fmt.Errorf("register face: %w", err)
	}
	log.FromCtx(ctx).Info().Str("patient", name).Msg("face registered")
	return nil
}

func distance(a, b []float64) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), true
}

// Disabled is used when no encoder is configured: it never sees a face, so
// identification always falls back to asking for the name.
type Disabled struct{}

func (Disabled) Detect(context.Context, *core.Image) (bool, error) {
	return false, nil
}

func (Disabled) Identify(context.Context, *core.Image) (string, error) {
	return "", core.ErrNotRecognized
}

func (Disabled) Register(context.Context, string, *core.Image) error {
	return nil
}
