package analysis

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrOutsideTable is returned for VDOT values the precomputed table doesn't cover
var ErrOutsideTable = errors.New("VDOT outside table range")

// Table keys are VDOT*10, covering 30.0 to 85.0
const (
	TableMinKey = 300
	TableMaxKey = 850
)

// Single-point pace fractions used for the table's pace columns
const (
	tableEasySlowPct  = 0.6304
	tableEasyFastPct  = 0.7346
	tableThresholdPct = 0.8799
	tableIntervalPct  = 0.9743
)

// TableRow is one precomputed VDOT row.
// Race times are whole seconds; paces are whole seconds per kilometer.
type TableRow struct {
	Key            int // VDOT*10
	FiveK          time.Duration
	TenK           time.Duration
	HalfMarathon   time.Duration
	Marathon       time.Duration
	EasyFastPace   time.Duration
	EasySlowPace   time.Duration
	MarathonPace   time.Duration
	ThresholdPace  time.Duration
	IntervalPace   time.Duration
	RepetitionPace time.Duration
}

// VDOT returns the row's VDOT value
func (r TableRow) VDOT() float64 {
	return float64(r.Key) / 10
}

// TableKey maps a VDOT to its table key, rounding to one decimal place
func TableKey(vdot float64) (int, error) {
	if math.IsNaN(vdot) {
		return 0, fmt.Errorf("%w: NaN", ErrOutsideTable)
	}
	key := int(math.Round(vdot * 10))
	if key < TableMinKey || key > TableMaxKey {
		return 0, fmt.Errorf("%w: %.1f not in [%.1f, %.1f]", ErrOutsideTable, vdot,
			float64(TableMinKey)/10, float64(TableMaxKey)/10)
	}
	return key, nil
}

// GenerateTableRow computes the row for a single table key
func GenerateTableRow(key int) (TableRow, error) {
	if key < TableMinKey || key > TableMaxKey {
		return TableRow{}, fmt.Errorf("%w: key %d", ErrOutsideTable, key)
	}

	vdot := float64(key) / 10
	row := TableRow{Key: key}

	times := []*time.Duration{&row.FiveK, &row.TenK, &row.HalfMarathon, &row.Marathon}
	for i, d := range referenceDistances {
		t, err := PredictTime(vdot, d.Meters)
		if err != nil {
			return TableRow{}, fmt.Errorf("VDOT %.1f %s: %w", vdot, d.Name, err)
		}
		*times[i] = t.Round(time.Second)
	}

	paces := []struct {
		pct float64
		dst *time.Duration
	}{
		{tableEasySlowPct, &row.EasySlowPace},
		{tableEasyFastPct, &row.EasyFastPace},
		{tableThresholdPct, &row.ThresholdPace},
		{tableIntervalPct, &row.IntervalPace},
	}
	for _, p := range paces {
		pace, err := paceAtFraction(vdot, p.pct)
		if err != nil {
			return TableRow{}, fmt.Errorf("VDOT %.1f at %.2f%%: %w", vdot, p.pct*100, err)
		}
		*p.dst = pace.Round(time.Second)
	}

	// Marathon pace comes straight from the marathon time
	marathonSecs := row.Marathon.Seconds() / (DistanceMarathon / MetersPerKm)
	row.MarathonPace = time.Duration(math.Round(marathonSecs)) * time.Second

	repOffset := 15 * time.Second
	if vdot < 50 {
		repOffset = 20 * time.Second
	}
	row.RepetitionPace = row.IntervalPace - repOffset

	return row, nil
}

// GenerateTable computes every row from TableMinKey to TableMaxKey
func GenerateTable() ([]TableRow, error) {
	rows := make([]TableRow, 0, TableMaxKey-TableMinKey+1)
	for key := TableMinKey; key <= TableMaxKey; key++ {
		row, err := GenerateTableRow(key)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
