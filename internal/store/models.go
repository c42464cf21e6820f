package store

import "time"

// TableRow is a stored VDOT table row
type TableRow struct {
	V              int `db:"v"`           // VDOT*10
	FiveKTime      int `db:"five_k_time"` // seconds
	TenKTime       int `db:"ten_k_time"`
	HalfTime       int `db:"hm_time"`
	MarathonTime   int `db:"m_time"`
	EasyFastPace   int `db:"e_pace_fast"` // seconds per km
	EasySlowPace   int `db:"e_pace_slow"`
	MarathonPace   int `db:"m_pace"`
	ThresholdPace  int `db:"t_pace"`
	IntervalPace   int `db:"i_pace"`
	RepetitionPace int `db:"r_pace"`
}

// Calculation is one recorded VDOT calculation
type Calculation struct {
	ID             string        `db:"id"` // UUID
	DistanceMeters float64       `db:"distance_meters"`
	Duration       time.Duration `db:"duration_ms"`
	VDOT           float64       `db:"vdot"`
	CreatedAt      time.Time     `db:"created_at"`
}
