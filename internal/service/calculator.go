package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"vdot/internal/analysis"
	"vdot/internal/store"
)

// HistoryLimit is the default number of calculations listed
const HistoryLimit = 20

// Calculator ties the VDOT engine to storage and logging
type Calculator struct {
	store *store.Store
	log   *zap.SugaredLogger
}

// NewCalculator creates a Calculator. s may be nil when no persistence is wanted.
func NewCalculator(s *store.Store, log *zap.SugaredLogger) *Calculator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Calculator{store: s, log: log}
}

// Report is a full calculation ready for display
type Report struct {
	*analysis.Result
	DistanceMeters float64
	Duration       time.Duration
	Label          string
	CalculationID  string // empty when not recorded
}

// Calculate derives VDOT, equivalent times and training paces from a race
// result. When save is set and a store is attached the calculation is recorded.
func (c *Calculator) Calculate(ctx context.Context, distanceMeters float64, duration time.Duration, save bool) (*Report, error) {
	result, err := analysis.Calculate(distanceMeters, duration)
	if err != nil {
		c.log.Debugw("calculation rejected", "distance_m", distanceMeters, "duration", duration, "error", err)
		return nil, err
	}

	report := &Report{
		Result:         result,
		DistanceMeters: distanceMeters,
		Duration:       duration,
		Label:          analysis.GetVDOTLabel(result.VDOT),
	}
	c.log.Debugw("calculated VDOT", "distance_m", distanceMeters, "duration", duration, "vdot", result.VDOT)

	if save && c.store != nil {
		calc := &store.Calculation{
			DistanceMeters: distanceMeters,
			Duration:       duration,
			VDOT:           result.VDOT,
		}
		if err := c.store.SaveCalculation(ctx, calc); err != nil {
			return nil, fmt.Errorf("saving calculation: %w", err)
		}
		report.CalculationID = calc.ID
	}

	return report, nil
}

// ForVDOT returns equivalent times and training paces for a known VDOT
func (c *Calculator) ForVDOT(vdot float64) (*Report, error) {
	result, err := analysis.ResultForVDOT(vdot)
	if err != nil {
		return nil, err
	}
	return &Report{Result: result, Label: analysis.GetVDOTLabel(vdot)}, nil
}

// Predict returns the equivalent time over distanceMeters for a VDOT
func (c *Calculator) Predict(vdot, distanceMeters float64) (time.Duration, error) {
	return analysis.PredictTime(vdot, distanceMeters)
}

// Paces returns the pace range for every training zone
func (c *Calculator) Paces(vdot float64) ([]analysis.PaceRange, error) {
	zones := analysis.IntensityZones()
	paces := make([]analysis.PaceRange, 0, len(zones))
	for _, z := range zones {
		p, err := analysis.CalculatePaceRange(vdot, z)
		if err != nil {
			return nil, err
		}
		paces = append(paces, p)
	}
	return paces, nil
}

// Curve samples predicted race pace between two distances
func (c *Calculator) Curve(vdot, fromMeters, toMeters float64, samples int) ([]analysis.CurvePoint, error) {
	return analysis.PaceCurve(vdot, fromMeters, toMeters, samples)
}

// ErrNoStore is returned by operations that need persistence when none is attached
var ErrNoStore = errors.New("no store configured")

// GenerateTable recomputes the full VDOT table and replaces the stored copy.
// Returns the number of rows written.
func (c *Calculator) GenerateTable(ctx context.Context) (int, error) {
	if c.store == nil {
		return 0, ErrNoStore
	}

	start := time.Now()
	rows := make([]store.TableRow, 0, analysis.TableMaxKey-analysis.TableMinKey+1)
	for key := analysis.TableMinKey; key <= analysis.TableMaxKey; key++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		row, err := analysis.GenerateTableRow(key)
		if err != nil {
			return 0, err
		}
		rows = append(rows, toStoreRow(row))
	}

	if err := c.store.ReplaceTable(ctx, rows); err != nil {
		return 0, fmt.Errorf("storing table: %w", err)
	}

	c.log.Infow("generated VDOT table", "rows", len(rows), "elapsed", time.Since(start))
	return len(rows), nil
}

// LookupTable returns the stored table row nearest to vdot
func (c *Calculator) LookupTable(ctx context.Context, vdot float64) (*store.TableRow, error) {
	key, err := analysis.TableKey(vdot)
	if err != nil {
		return nil, err
	}
	if c.store == nil {
		return nil, ErrNoStore
	}
	return c.store.GetTableRow(ctx, key)
}

// TableRows returns every stored table row
func (c *Calculator) TableRows(ctx context.Context) ([]store.TableRow, error) {
	if c.store == nil {
		return nil, ErrNoStore
	}
	return c.store.GetAllTableRows(ctx)
}

// TableSize returns the number of stored table rows. Zero means the table
// hasn't been generated.
func (c *Calculator) TableSize(ctx context.Context) (int, error) {
	if c.store == nil {
		return 0, ErrNoStore
	}
	return c.store.CountTableRows(ctx)
}

// HistoryEntry is a recorded calculation formatted for display
type HistoryEntry struct {
	ID       string  `json:"id"`
	Distance string  `json:"distance"`
	Time     string  `json:"time"`
	VDOT     float64 `json:"vdot"`
	Label    string  `json:"label"`
	When     string  `json:"when"` // "3 minutes ago"
}

// History returns the most recent calculations
func (c *Calculator) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if c.store == nil {
		return nil, ErrNoStore
	}
	if limit <= 0 {
		limit = HistoryLimit
	}

	calcs, err := c.store.ListCalculations(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(calcs))
	for _, calc := range calcs {
		entries = append(entries, toHistoryEntry(calc))
	}
	return entries, nil
}

// Recall recomputes the full report for a recorded calculation
func (c *Calculator) Recall(ctx context.Context, id string) (*Report, error) {
	if c.store == nil {
		return nil, ErrNoStore
	}

	calc, err := c.store.GetCalculation(ctx, id)
	if err != nil {
		return nil, err
	}

	report, err := c.Calculate(ctx, calc.DistanceMeters, calc.Duration, false)
	if err != nil {
		return nil, fmt.Errorf("recomputing calculation %s: %w", id, err)
	}
	report.CalculationID = calc.ID
	return report, nil
}

// ClearHistory removes every recorded calculation
func (c *Calculator) ClearHistory(ctx context.Context) error {
	if c.store == nil {
		return ErrNoStore
	}
	if err := c.store.DeleteAllCalculations(ctx); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	c.log.Info("cleared calculation history")
	return nil
}

func toHistoryEntry(calc store.Calculation) HistoryEntry {
	return HistoryEntry{
		ID:       calc.ID,
		Distance: FormatDistance(calc.DistanceMeters),
		Time:     FormatDuration(calc.Duration),
		VDOT:     calc.VDOT,
		Label:    analysis.GetVDOTLabel(calc.VDOT),
		When:     humanize.Time(calc.CreatedAt),
	}
}

// toStoreRow converts a computed row to its stored form
func toStoreRow(r analysis.TableRow) store.TableRow {
	secs := func(d time.Duration) int { return int(d / time.Second) }
	return store.TableRow{
		V:              r.Key,
		FiveKTime:      secs(r.FiveK),
		TenKTime:       secs(r.TenK),
		HalfTime:       secs(r.HalfMarathon),
		MarathonTime:   secs(r.Marathon),
		EasyFastPace:   secs(r.EasyFastPace),
		EasySlowPace:   secs(r.EasySlowPace),
		MarathonPace:   secs(r.MarathonPace),
		ThresholdPace:  secs(r.ThresholdPace),
		IntervalPace:   secs(r.IntervalPace),
		RepetitionPace: secs(r.RepetitionPace),
	}
}
