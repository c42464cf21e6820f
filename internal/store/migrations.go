package store

import "database/sql"

// migrate runs all database migrations
func migrate(db *sql.DB) error {
	migrations := []string{
		// Precomputed VDOT table. v is VDOT*10; times in seconds, paces in seconds/km
		`CREATE TABLE IF NOT EXISTS vdot_table (
			v INTEGER PRIMARY KEY,
			five_k_time INTEGER NOT NULL,
			ten_k_time INTEGER NOT NULL,
			hm_time INTEGER NOT NULL,
			m_time INTEGER NOT NULL,
			e_pace_fast INTEGER NOT NULL,
			e_pace_slow INTEGER NOT NULL,
			m_pace INTEGER NOT NULL,
			t_pace INTEGER NOT NULL,
			i_pace INTEGER NOT NULL,
			r_pace INTEGER NOT NULL
		) WITHOUT ROWID`,

		// Calculation history
		`CREATE TABLE IF NOT EXISTS calculations (
			id TEXT PRIMARY KEY,
			distance_meters REAL NOT NULL,
			duration_ms INTEGER NOT NULL,
			vdot REAL NOT NULL,
			created_at TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}

	return nil
}
