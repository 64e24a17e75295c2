package portfolio

import (
	"math"
	"testing"

	"github.com/johan/polymarket-portfolio/internal/book"
	"github.com/johan/polymarket-portfolio/internal/clob"
	"github.com/johan/polymarket-portfolio/internal/dataapi"
	"github.com/johan/polymarket-portfolio/internal/types"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func normalizeTestBook(t *testing.T, snapshot *clob.BookSnapshot) map[string][]book.Level {
	t.Helper()
	levels, err := book.Normalize(snapshot)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	return book.GroupByAsset(levels)
}

func TestAggregate_FullScenario(t *testing.T) {
	// Position of 100 shares with a cost basis of 50, against bids
	// 60@0.70 and 100@0.65: full liquidation nets 68, PnL = 18.
	books := normalizeTestBook(t, &clob.BookSnapshot{
		AssetID: "token1",
		Bids: []types.PriceLevel{
			{Price: "0.70", Size: "60"},
			{Price: "0.65", Size: "100"},
		},
	})

	positions := []Position{{
		AssetID:      "token1",
		Market:       "Will X happen before May 31",
		Outcome:      "Yes",
		Size:         100,
		AvgPrice:     0.50,
		CurrentPrice: 0.70,
		InitialValue: 50,
		CurrentValue: 70,
		RealizedPnL:  0,
	}}

	agg := NewAggregator(nil, nil)
	rows := agg.Aggregate(positions, books)

	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	row := rows[0]

	full := row.Estimate(1.0)
	if !almostEqual(full.Proceeds, 68.0) {
		t.Errorf("full Proceeds = %v, want 68.0", full.Proceeds)
	}
	if !almostEqual(full.EstimatedPnL, 18.0) {
		t.Errorf("full EstimatedPnL = %v, want 18.0", full.EstimatedPnL)
	}
	// The 100% exit price is reported per share: 68 / 100.
	if !almostEqual(full.ExitPrice, 0.68) {
		t.Errorf("full ExitPrice = %v, want 0.68", full.ExitPrice)
	}

	quarter := row.Estimate(0.25)
	if !almostEqual(quarter.Proceeds, 17.5) {
		t.Errorf("25%% Proceeds = %v, want 17.5", quarter.Proceeds)
	}
	if quarter.ExitPrice != 0.70 {
		t.Errorf("25%% ExitPrice = %v, want 0.70 (last level touched)", quarter.ExitPrice)
	}
	if !almostEqual(quarter.EstimatedPnL, 17.5-12.5) {
		t.Errorf("25%% EstimatedPnL = %v, want 5.0", quarter.EstimatedPnL)
	}

	if !almostEqual(row.Reward, 100-50+0) {
		t.Errorf("Reward = %v, want 50", row.Reward)
	}
	if !almostEqual(row.ReturnPct, 100.0) {
		t.Errorf("ReturnPct = %v, want 100", row.ReturnPct)
	}
	if !almostEqual(row.PnL, 20.0) {
		t.Errorf("PnL = %v, want 20", row.PnL)
	}

	if row.RiskLabel != "Moderately High Risk" {
		t.Errorf("RiskLabel = %q, want %q", row.RiskLabel, "Moderately High Risk")
	}
	if row.RiskRange != "71-78%" {
		t.Errorf("RiskRange = %q, want %q", row.RiskRange, "71-78%")
	}

	// No native end date, so the title heuristic applies.
	if row.ResolvedEndDate != "2025-05-31" {
		t.Errorf("ResolvedEndDate = %q, want %q", row.ResolvedEndDate, "2025-05-31")
	}
}

func TestAggregate_MissingBookDegradesToZeros(t *testing.T) {
	positions := []Position{{
		AssetID:      "unknown-token",
		Market:       "Some market",
		Size:         100,
		InitialValue: 50,
		CurrentPrice: 0.5,
	}}

	agg := NewAggregator(nil, nil)
	rows := agg.Aggregate(positions, map[string][]book.Level{})

	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	for _, f := range DefaultFractions {
		est := rows[0].Estimate(f)
		if est.ExitPrice != 0 || est.Proceeds != 0 || est.EstimatedPnL != 0 {
			t.Errorf("fraction %v: estimate = %+v, want all zeros", f, est)
		}
	}
}

func TestAggregate_SentinelBookChargesCostBasis(t *testing.T) {
	// A present book with zero depth is different from a missing book:
	// proceeds are zero, so the estimated PnL is the negated partial
	// cost basis.
	books := normalizeTestBook(t, &clob.BookSnapshot{AssetID: "token1"})

	positions := []Position{{
		AssetID:      "token1",
		Market:       "Thin market",
		Size:         100,
		InitialValue: 40,
		CurrentPrice: 0.5,
	}}

	agg := NewAggregator([]float64{0.5}, nil)
	rows := agg.Aggregate(positions, books)

	est := rows[0].Estimate(0.5)
	if est.Proceeds != 0 || est.ExitPrice != 0 {
		t.Errorf("estimate = %+v, want zero proceeds and exit price", est)
	}
	if !almostEqual(est.EstimatedPnL, -20.0) {
		t.Errorf("EstimatedPnL = %v, want -20", est.EstimatedPnL)
	}
}

func TestAggregate_ZeroCostBasisGuard(t *testing.T) {
	positions := []Position{{
		AssetID:      "token1",
		Market:       "Free position",
		Size:         10,
		InitialValue: 0,
		CurrentPrice: 0.5,
	}}

	agg := NewAggregator(nil, nil)
	rows := agg.Aggregate(positions, map[string][]book.Level{})

	if rows[0].ReturnPct != 0 {
		t.Errorf("ReturnPct = %v, want 0 for zero cost basis", rows[0].ReturnPct)
	}
}

func TestAggregate_NativeEndDateWins(t *testing.T) {
	positions := []Position{{
		AssetID:      "token1",
		Market:       "Will X happen before May 31",
		EndDate:      "2026-01-15",
		CurrentPrice: 0.5,
	}}

	agg := NewAggregator(nil, nil)
	rows := agg.Aggregate(positions, map[string][]book.Level{})

	if rows[0].ResolvedEndDate != "2026-01-15" {
		t.Errorf("ResolvedEndDate = %q, want native %q", rows[0].ResolvedEndDate, "2026-01-15")
	}
}

func TestAggregate_CustomFractions(t *testing.T) {
	books := normalizeTestBook(t, &clob.BookSnapshot{
		AssetID: "token1",
		Bids:    []types.PriceLevel{{Price: "0.50", Size: "1000"}},
	})

	positions := []Position{{AssetID: "token1", Size: 100, InitialValue: 10, CurrentPrice: 0.5}}

	agg := NewAggregator([]float64{0.1, 0.9}, nil)
	rows := agg.Aggregate(positions, books)

	if len(rows[0].Estimates) != 2 {
		t.Fatalf("Expected 2 estimates, got %d", len(rows[0].Estimates))
	}
	if !almostEqual(rows[0].Estimate(0.1).Proceeds, 5.0) {
		t.Errorf("10%% Proceeds = %v, want 5.0", rows[0].Estimate(0.1).Proceeds)
	}
	if !almostEqual(rows[0].Estimate(0.9).Proceeds, 45.0) {
		t.Errorf("90%% Proceeds = %v, want 45.0", rows[0].Estimate(0.9).Proceeds)
	}
}

func TestFromRaw_CapitalizesOutcome(t *testing.T) {
	p := FromRaw(dataapi.RawPosition{Asset: "token1", Outcome: "yes"})
	if p.Outcome != "Yes" {
		t.Errorf("Outcome = %q, want %q", p.Outcome, "Yes")
	}
	if p.AssetID != "token1" {
		t.Errorf("AssetID = %q, want %q", p.AssetID, "token1")
	}
}

func TestPosition_MarketLink(t *testing.T) {
	p := Position{EventSlug: "will-x-happen"}
	want := "https://polymarket.com/event/will-x-happen"
	if got := p.MarketLink(); got != want {
		t.Errorf("MarketLink() = %q, want %q", got, want)
	}

	empty := Position{}
	if got := empty.MarketLink(); got != "" {
		t.Errorf("MarketLink() = %q, want empty for missing slug", got)
	}
}
