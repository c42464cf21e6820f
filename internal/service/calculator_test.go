package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"vdot/internal/analysis"
	"vdot/internal/store"

	_ "modernc.org/sqlite"
)

// openTestStore creates an in-memory SQLite store with migrations applied
func openTestStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)

	s, err := store.NewTestStore(db)
	if err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestCalculator(t *testing.T) *Calculator {
	return NewCalculator(openTestStore(t), zaptest.NewLogger(t).Sugar())
}

func TestCalculator_Calculate(t *testing.T) {
	calc := newTestCalculator(t)
	ctx := context.Background()

	report, err := calc.Calculate(ctx, analysis.Distance5K, 1474*time.Second, true)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	if math.Abs(report.VDOT-39.11) > 0.01 {
		t.Errorf("VDOT = %v, want 39.11", report.VDOT)
	}
	if report.Label != "Intermediate" {
		t.Errorf("Label = %q, want Intermediate", report.Label)
	}
	if len(report.Equivalents) != 4 || len(report.Paces) != 5 {
		t.Errorf("got %d equivalents and %d paces, want 4 and 5", len(report.Equivalents), len(report.Paces))
	}
	if report.CalculationID == "" {
		t.Error("CalculationID should be set when saving")
	}

	history, err := calc.History(ctx, 0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("History() returned %d entries, want 1", len(history))
	}
	h := history[0]
	if h.ID != report.CalculationID {
		t.Errorf("History ID = %q, want %q", h.ID, report.CalculationID)
	}
	if h.Distance != "5K" || h.Time != "24:34" {
		t.Errorf("History entry = %s %s, want 5K 24:34", h.Distance, h.Time)
	}
	if h.When == "" {
		t.Error("History entry should have a relative time")
	}
}

func TestCalculator_RecallAndClear(t *testing.T) {
	calc := newTestCalculator(t)
	ctx := context.Background()

	saved, err := calc.Calculate(ctx, analysis.DistanceHalfMarathon, 95*time.Minute, true)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}

	recalled, err := calc.Recall(ctx, saved.CalculationID)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if recalled.CalculationID != saved.CalculationID {
		t.Errorf("Recall() ID = %q, want %q", recalled.CalculationID, saved.CalculationID)
	}
	if math.Abs(recalled.VDOT-saved.VDOT) > 1e-9 {
		t.Errorf("Recall() VDOT = %v, want %v", recalled.VDOT, saved.VDOT)
	}

	if _, err := calc.Recall(ctx, "missing"); !errors.Is(err, store.ErrCalculationNotFound) {
		t.Errorf("Recall(missing) error = %v, want ErrCalculationNotFound", err)
	}

	if err := calc.ClearHistory(ctx); err != nil {
		t.Fatalf("ClearHistory() error = %v", err)
	}
	history, err := calc.History(ctx, 0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("History() after clear returned %d entries", len(history))
	}
}

func TestCalculator_CalculateWithoutSaving(t *testing.T) {
	calc := newTestCalculator(t)
	ctx := context.Background()

	report, err := calc.Calculate(ctx, analysis.Distance10K, 45*time.Minute, false)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if report.CalculationID != "" {
		t.Errorf("CalculationID = %q, want empty", report.CalculationID)
	}

	history, err := calc.History(ctx, 10)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("History() returned %d entries, want 0", len(history))
	}
}

func TestCalculator_CalculateInvalid(t *testing.T) {
	calc := newTestCalculator(t)

	_, err := calc.Calculate(context.Background(), analysis.Distance5K, 0, true)
	if !errors.Is(err, analysis.ErrInvalidInput) {
		t.Errorf("Calculate() error = %v, want ErrInvalidInput", err)
	}
}

func TestCalculator_NoStore(t *testing.T) {
	calc := NewCalculator(nil, nil)
	ctx := context.Background()

	// calculations still work without persistence
	if _, err := calc.Calculate(ctx, analysis.Distance5K, 20*time.Minute, true); err != nil {
		t.Errorf("Calculate() error = %v", err)
	}

	if _, err := calc.GenerateTable(ctx); !errors.Is(err, ErrNoStore) {
		t.Errorf("GenerateTable() error = %v, want ErrNoStore", err)
	}
	if _, err := calc.LookupTable(ctx, 50); !errors.Is(err, ErrNoStore) {
		t.Errorf("LookupTable() error = %v, want ErrNoStore", err)
	}
	if _, err := calc.History(ctx, 5); !errors.Is(err, ErrNoStore) {
		t.Errorf("History() error = %v, want ErrNoStore", err)
	}
}

func TestCalculator_ForVDOT(t *testing.T) {
	calc := NewCalculator(nil, zap.NewNop().Sugar())

	report, err := calc.ForVDOT(50)
	if err != nil {
		t.Fatalf("ForVDOT() error = %v", err)
	}
	if report.Label != "Advanced Recreational" {
		t.Errorf("Label = %q", report.Label)
	}
	if got := FormatDuration(report.Equivalents[0].Time); got != "19:56" {
		t.Errorf("5K equivalent = %s, want 19:56", got)
	}

	if _, err := calc.ForVDOT(-1); !errors.Is(err, analysis.ErrInvalidInput) {
		t.Errorf("ForVDOT(-1) error = %v, want ErrInvalidInput", err)
	}
}

func TestCalculator_Paces(t *testing.T) {
	calc := NewCalculator(nil, nil)

	paces, err := calc.Paces(39.11)
	if err != nil {
		t.Fatalf("Paces() error = %v", err)
	}
	if len(paces) != 5 {
		t.Fatalf("Paces() returned %d ranges, want 5", len(paces))
	}
	if paces[0].Zone.Name != "Easy" || paces[4].Zone.Name != "Repetition" {
		t.Errorf("zones out of order: %s ... %s", paces[0].Zone.Name, paces[4].Zone.Name)
	}
	if got := FormatDuration(paces[0].Faster) + "-" + FormatDuration(paces[0].Slower); got != "5:57-7:07" {
		t.Errorf("easy paces = %s, want 5:57-7:07", got)
	}
}

func TestCalculator_Predict(t *testing.T) {
	calc := NewCalculator(nil, nil)

	got, err := calc.Predict(50, analysis.DistanceMarathon)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if FormatDuration(got) != "3:10:40" {
		t.Errorf("Predict() = %s, want 3:10:40", FormatDuration(got))
	}
}

func TestCalculator_GenerateTable(t *testing.T) {
	calc := newTestCalculator(t)
	ctx := context.Background()

	if size, err := calc.TableSize(ctx); err != nil || size != 0 {
		t.Fatalf("TableSize() before generate = %d, %v", size, err)
	}

	n, err := calc.GenerateTable(ctx)
	if err != nil {
		t.Fatalf("GenerateTable() error = %v", err)
	}
	if n != 551 {
		t.Errorf("GenerateTable() wrote %d rows, want 551", n)
	}

	if size, err := calc.TableSize(ctx); err != nil || size != 551 {
		t.Errorf("TableSize() = %d, %v, want 551", size, err)
	}

	row, err := calc.LookupTable(ctx, 50.04)
	if err != nil {
		t.Fatalf("LookupTable() error = %v", err)
	}
	if row.V != 500 || row.FiveKTime != 1196 || row.MarathonTime != 11440 || row.MarathonPace != 271 {
		t.Errorf("LookupTable(50.04) = %+v", *row)
	}

	rows, err := calc.TableRows(ctx)
	if err != nil {
		t.Fatalf("TableRows() error = %v", err)
	}
	if len(rows) != 551 || rows[0].V != 300 || rows[550].V != 850 {
		t.Errorf("TableRows() returned %d rows", len(rows))
	}

	if _, err := calc.LookupTable(ctx, 20); !errors.Is(err, analysis.ErrOutsideTable) {
		t.Errorf("LookupTable(20) error = %v, want ErrOutsideTable", err)
	}
}

func TestCalculator_GenerateTableCancelled(t *testing.T) {
	calc := newTestCalculator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := calc.GenerateTable(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("GenerateTable() error = %v, want context.Canceled", err)
	}
}
