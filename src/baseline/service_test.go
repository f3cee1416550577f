package baseline

import (
	"context"
	"errors"
	"testing"
	"time"

	"walletengine/src/model"
)

type fakeEquityBars struct {
	bars []model.Bar
	err  error
}

func (f *fakeEquityBars) GetMinuteBars(ctx context.Context, symbol string, day time.Time) ([]model.Bar, error) {
	return f.bars, f.err
}

type fakeReferenceBars struct {
	bars []model.Bar
	err  error
}

func (f *fakeReferenceBars) GetMinuteBars(ctx context.Context, day time.Time) ([]model.Bar, error) {
	return f.bars, f.err
}

type fakeBaselineWriter struct {
	rows []model.BaselineDaily
	err  error
}

func (f *fakeBaselineWriter) Upsert(ctx context.Context, row *model.BaselineDaily) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, *row)
	return nil
}

func TestComputeForSymbolWritesPositiveStats(t *testing.T) {
	ref := []model.Bar{
		etBar(10, 0, 50000, 5),
		etBar(10, 1, 50100, 5),
		etBar(16, 30, 50200, 5),
	}
	stock := []model.Bar{
		etBar(10, 0, 20000, 100),
		etBar(10, 1, 20050, 110),
		etBar(16, 30, 20100, 40),
	}

	writer := &fakeBaselineWriter{}
	svc := NewService(&fakeEquityBars{bars: stock}, &fakeReferenceBars{bars: ref}, writer)

	day := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)
	result, err := svc.ComputeForSymbol(context.Background(), "AAPL", day)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// 5 methods x 2 sessions, all positive here.
	if result.RowsWritten != 10 {
		t.Fatalf("expected 10 rows, got %d", result.RowsWritten)
	}
	if result.PerSession[model.SessionCore] != 2 {
		t.Fatalf("expected 2 aligned core points, got %d", result.PerSession[model.SessionCore])
	}
	if result.PerSession[model.SessionExtended] != 1 {
		t.Fatalf("expected 1 aligned extended point, got %d", result.PerSession[model.SessionExtended])
	}

	for _, row := range writer.rows {
		if row.Baseline <= 0 {
			t.Fatalf("persisted a non-positive baseline: %+v", row)
		}
		if row.TradingDay != "2025-03-04" {
			t.Fatalf("trading day mismatch: %s", row.TradingDay)
		}
		if row.Source != "computed" {
			t.Fatalf("source mismatch: %s", row.Source)
		}
	}
}

func TestComputeForSymbolNoAlignedDataIsHardFailure(t *testing.T) {
	// Both sides have bars, but at different minutes, so nothing aligns.
	ref := []model.Bar{etBar(10, 0, 50000, 5)}
	stock := []model.Bar{etBar(10, 1, 20000, 100)}

	svc := NewService(&fakeEquityBars{bars: stock}, &fakeReferenceBars{bars: ref}, &fakeBaselineWriter{})

	_, err := svc.ComputeForSymbol(context.Background(), "AAPL", time.Now())
	if err == nil {
		t.Fatalf("expected error when nothing aligns")
	}
	if model.ClassifyError(err) != model.ErrorTypeData {
		t.Fatalf("expected DATA_ERROR, got %s", model.ClassifyError(err))
	}
}

func TestComputeForSymbolMissingSeries(t *testing.T) {
	svc := NewService(
		&fakeEquityBars{bars: nil},
		&fakeReferenceBars{bars: []model.Bar{etBar(10, 0, 50000, 5)}},
		&fakeBaselineWriter{},
	)

	_, err := svc.ComputeForSymbol(context.Background(), "AAPL", time.Now())
	if err == nil {
		t.Fatalf("expected error for missing equity bars")
	}
	if model.ClassifyError(err) != model.ErrorTypeData {
		t.Fatalf("expected DATA_ERROR, got %s", model.ClassifyError(err))
	}
}

func TestComputeForSymbolFetchFailure(t *testing.T) {
	svc := NewService(
		&fakeEquityBars{err: errors.New("boom")},
		&fakeReferenceBars{bars: []model.Bar{etBar(10, 0, 50000, 5)}},
		&fakeBaselineWriter{},
	)

	_, err := svc.ComputeForSymbol(context.Background(), "AAPL", time.Now())
	if err == nil {
		t.Fatalf("expected error for failed fetch")
	}
	if model.ClassifyError(err) != model.ErrorTypeAPI {
		t.Fatalf("expected API_ERROR, got %s", model.ClassifyError(err))
	}
}
