package log

import (
	"context"

	"github.com/pressly/goose/v3"
)

// Migrations logs what a goose provider applied. Nothing is logged when the
// schema was already current.
func Migrations(ctx context.Context, results []*goose.MigrationResult) {
	if len(results) == 0 {
		return
	}

	logger := FromCtx(ctx).With().Str("component", "goose").Logger()
	for _, r := range results {
		if r.Source == nil {
			continue
		}
		logger.Debug().
			Int64("version", r.Source.Version).
			Str("file", r.Source.Path).
			Dur("took", r.Duration).
			Msg("migration applied")
	}
	logger.Info().Int("count", len(results)).Msg("database migrated")
}
