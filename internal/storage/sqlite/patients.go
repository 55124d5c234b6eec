package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/ferpy/internal/core"
	"github.com/sandevgo/ferpy/pkg/log"
)

type PatientsRepo struct {
	db *sql.DB
}

func NewPatientsRepo(db *sql.DB) *PatientsRepo {
	return &PatientsRepo{db: db}
}

func (r *PatientsRepo) Load(ctx context.Context) (core.PatientDatabase, error) {
	query := `SELECT name, age, weight, height, temperature, sex, notes FROM patients`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	db := make(core.PatientDatabase)
	for rows.Next() {
		var rec core.PatientRecord
		if err := rows.Scan(&rec.Name, &rec.Age, &rec.Weight, &rec.Height, &rec.Temperature, &rec.Sex, &rec.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		db[rec.Name] = rec.Normalize(rec.Name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(db)).Msg("loaded patients")
	return db, nil
}

// Save replaces the stored database in a single transaction.
func (r *PatientsRepo) Save(ctx context.Context, db core.PatientDatabase) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM patients`); err != nil {
		return fmt.Errorf("failed to clear patients: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO patients (name, age, weight, height, temperature, sex, notes) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for name, rec := range db {
		rec = rec.Normalize(name)
		if _, err := stmt.ExecContext(ctx, name, rec.Age, rec.Weight, rec.Height, rec.Temperature, rec.Sex, rec.Notes); err != nil {
			return fmt.Errorf("failed to insert patient %s: %w", name, err)
		}
	}

	return tx.Commit()
}
