package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// createdAtLayout is fixed width so created_at sorts lexically
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SaveCalculation records a calculation. A missing ID or CreatedAt is filled in.
func (s *Store) SaveCalculation(ctx context.Context, c *Calculation) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO calculations (id, distance_meters, duration_ms, vdot, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		c.ID, c.DistanceMeters, c.Duration.Milliseconds(), c.VDOT,
		c.CreatedAt.UTC().Format(createdAtLayout),
	)
	return err
}

// GetCalculation retrieves a calculation by ID
func (s *Store) GetCalculation(ctx context.Context, id string) (*Calculation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, distance_meters, duration_ms, vdot, created_at
		FROM calculations
		WHERE id = ?
	`, id)

	c, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCalculationNotFound
	}
	return c, err
}

// ListCalculations returns the most recent calculations, newest first
func (s *Store) ListCalculations(ctx context.Context, limit int) ([]Calculation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, distance_meters, duration_ms, vdot, created_at
		FROM calculations
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Calculation
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}

	return out, rows.Err()
}

// DeleteAllCalculations clears the history
func (s *Store) DeleteAllCalculations(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM calculations`)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCalculation(row scanner) (*Calculation, error) {
	var c Calculation
	var durationMs int64
	var createdAt string

	if err := row.Scan(&c.ID, &c.DistanceMeters, &durationMs, &c.VDOT, &createdAt); err != nil {
		return nil, err
	}

	c.Duration = time.Duration(durationMs) * time.Millisecond

	var parseErr error
	c.CreatedAt, parseErr = time.Parse(createdAtLayout, createdAt)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, parseErr)
	}

	return &c, nil
}
