package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const tableColumns = `v, five_k_time, ten_k_time, hm_time, m_time,
	e_pace_fast, e_pace_slow, m_pace, t_pace, i_pace, r_pace`

// ReplaceTable deletes every stored row and inserts rows in one transaction
func (s *Store) ReplaceTable(ctx context.Context, rows []TableRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vdot_table`); err != nil {
		return fmt.Errorf("clearing table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO vdot_table (`+tableColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		_, err := stmt.ExecContext(ctx,
			r.V, r.FiveKTime, r.TenKTime, r.HalfTime, r.MarathonTime,
			r.EasyFastPace, r.EasySlowPace, r.MarathonPace, r.ThresholdPace, r.IntervalPace, r.RepetitionPace,
		)
		if err != nil {
			return fmt.Errorf("inserting row %d: %w", r.V, err)
		}
	}

	return tx.Commit()
}

// GetTableRow retrieves the row keyed by v (VDOT*10)
func (s *Store) GetTableRow(ctx context.Context, v int) (*TableRow, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tableColumns+` FROM vdot_table WHERE v = ?`, v)

	var r TableRow
	err := row.Scan(
		&r.V, &r.FiveKTime, &r.TenKTime, &r.HalfTime, &r.MarathonTime,
		&r.EasyFastPace, &r.EasySlowPace, &r.MarathonPace, &r.ThresholdPace, &r.IntervalPace, &r.RepetitionPace,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRowNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetAllTableRows retrieves every stored row ordered by VDOT
func (s *Store) GetAllTableRows(ctx context.Context) ([]TableRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+tableColumns+` FROM vdot_table ORDER BY v`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TableRow
	for rows.Next() {
		var r TableRow
		err := rows.Scan(
			&r.V, &r.FiveKTime, &r.TenKTime, &r.HalfTime, &r.MarathonTime,
			&r.EasyFastPace, &r.EasySlowPace, &r.MarathonPace, &r.ThresholdPace, &r.IntervalPace, &r.RepetitionPace,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

// CountTableRows returns how many rows are stored
func (s *Store) CountTableRows(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vdot_table`).Scan(&n)
	return n, err
}
