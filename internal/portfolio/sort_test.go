package portfolio

import (
	"testing"

	"github.com/johan/polymarket-portfolio/internal/liquidation"
)

func sampleRows() []Row {
	return []Row{
		{
			Position:        Position{Market: "Bravo", CurrentValue: 30, CurrentPrice: 0.2},
			Risk:            10,
			ResolvedEndDate: "2025-06-01",
			Estimates:       []liquidation.Estimate{{Fraction: 1.0, EstimatedPnL: 5}},
		},
		{
			Position:        Position{Market: "Alpha", CurrentValue: 10, CurrentPrice: 0.9},
			Risk:            30,
			ResolvedEndDate: "2025-01-01",
			Estimates:       []liquidation.Estimate{{Fraction: 1.0, EstimatedPnL: -2}},
		},
		{
			Position:        Position{Market: "Charlie", CurrentValue: 20, CurrentPrice: 0.5},
			Risk:            20,
			ResolvedEndDate: "2025-03-01",
			Estimates:       []liquidation.Estimate{{Fraction: 1.0, EstimatedPnL: 8}},
		},
	}
}

func marketOrder(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Market
	}
	return out
}

func TestSortRows_ByMarketAscending(t *testing.T) {
	rows := sampleRows()
	SortRows(rows, SortState{Key: SortByMarket, Ascending: true})

	want := []string{"Alpha", "Bravo", "Charlie"}
	got := marketOrder(rows)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortRows_ByValueDescending(t *testing.T) {
	rows := sampleRows()
	SortRows(rows, SortState{Key: SortByValue, Ascending: false})

	want := []string{"Bravo", "Charlie", "Alpha"}
	got := marketOrder(rows)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortRows_ByLiquidationPnL(t *testing.T) {
	rows := sampleRows()
	SortRows(rows, SortState{Key: SortByLiq100, Ascending: true})

	want := []string{"Alpha", "Bravo", "Charlie"}
	got := marketOrder(rows)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortRows_UnknownKeyFallsBackToMarket(t *testing.T) {
	rows := sampleRows()
	SortRows(rows, SortState{Key: "bogus", Ascending: true})

	if rows[0].Market != "Alpha" {
		t.Errorf("rows[0].Market = %q, want %q", rows[0].Market, "Alpha")
	}
}

func TestSortState_Toggle(t *testing.T) {
	s := DefaultSortState()
	if s.Key != SortByMarket || !s.Ascending {
		t.Fatalf("DefaultSortState() = %+v", s)
	}

	// Selecting a new column sorts it ascending.
	s = s.Toggle(SortByValue)
	if s.Key != SortByValue || !s.Ascending {
		t.Errorf("Toggle to new column = %+v, want ascending value sort", s)
	}

	// Selecting the same column flips direction.
	s = s.Toggle(SortByValue)
	if s.Key != SortByValue || s.Ascending {
		t.Errorf("Toggle same column = %+v, want descending value sort", s)
	}

	s = s.Toggle(SortByValue)
	if !s.Ascending {
		t.Errorf("Toggle same column again = %+v, want ascending", s)
	}
}
