package portfolio

import (
	"github.com/johan/polymarket-portfolio/internal/book"
	"github.com/johan/polymarket-portfolio/internal/liquidation"
	"github.com/johan/polymarket-portfolio/internal/risk"
)

// DefaultFractions are the liquidation fractions estimated for every
// position unless configured otherwise.
var DefaultFractions = []float64{0.25, 0.50, 0.75, 1.00}

// Row is one display-ready record: raw position fields merged with
// per-fraction liquidation estimates, risk classification, and end date.
type Row struct {
	Position

	// Risk is the capital at risk (cost basis), named after the
	// dashboard column it feeds.
	Risk float64

	// Reward is size - initialValue + realizedPnl.
	Reward float64

	// ReturnPct is reward as a percentage of the cost basis; zero when
	// the cost basis is zero.
	ReturnPct float64

	// PnL is currentValue - initialValue.
	PnL float64

	RiskLabel string
	RiskRange string

	// ResolvedEndDate is the position's native end date when present,
	// otherwise the title heuristic's best effort, otherwise empty.
	ResolvedEndDate string

	MarketLink string

	// Estimates holds one entry per configured fraction, in order.
	Estimates []liquidation.Estimate
}

// Estimate returns the liquidation estimate for the given fraction, or a
// zero estimate if the fraction was not configured.
func (r Row) Estimate(fraction float64) liquidation.Estimate {
	for _, e := range r.Estimates {
		if e.Fraction == fraction {
			return e
		}
	}
	return liquidation.Estimate{Fraction: fraction}
}

// Aggregator merges positions with normalized order books into Rows.
type Aggregator struct {
	fractions []float64
	dates     TitleDateParser
}

// NewAggregator creates an aggregator for the given liquidation fractions.
// Nil or empty fractions fall back to DefaultFractions; a nil date parser
// falls back to the title heuristic.
func NewAggregator(fractions []float64, dates TitleDateParser) *Aggregator {
	if len(fractions) == 0 {
		fractions = DefaultFractions
	}
	if dates == nil {
		dates = NewHeuristicDateParser()
	}
	return &Aggregator{fractions: fractions, dates: dates}
}

// Aggregate builds one Row per position. A position whose asset has no book
// in the lookup gets zero-valued estimates rather than failing the batch.
func (a *Aggregator) Aggregate(positions []Position, books map[string][]book.Level) []Row {
	rows := make([]Row, 0, len(positions))
	for _, p := range positions {
		levels, found := books[p.AssetID]
		rows = append(rows, a.aggregateOne(p, levels, found))
	}
	return rows
}

func (a *Aggregator) aggregateOne(p Position, levels []book.Level, haveBook bool) Row {
	row := Row{
		Position:   p,
		Risk:       p.InitialValue,
		Reward:     p.Size - p.InitialValue + p.RealizedPnL,
		PnL:        p.CurrentValue - p.InitialValue,
		MarketLink: p.MarketLink(),
	}

	if p.InitialValue != 0 {
		row.ReturnPct = row.Reward / p.InitialValue * 100
	}

	row.RiskLabel, row.RiskRange = risk.Classify(p.CurrentPrice)

	row.ResolvedEndDate = p.EndDate
	if row.ResolvedEndDate == "" {
		row.ResolvedEndDate = a.dates.ExtractDate(p.Market)
	}

	row.Estimates = make([]liquidation.Estimate, 0, len(a.fractions))

	if !haveBook {
		// Lookup miss degrades to zero estimates instead of failing
		// the batch.
		for _, fraction := range a.fractions {
			row.Estimates = append(row.Estimates, liquidation.Estimate{
				Fraction:     fraction,
				TargetShares: p.Size * fraction,
			})
		}
		return row
	}

	bids := book.BestBids(levels)
	for _, fraction := range a.fractions {
		est := liquidation.EstimateSale(p.Size, bids, fraction)
		est.EstimatedPnL = est.Proceeds - p.InitialValue*fraction
		if fraction == 1.0 {
			// Full liquidation reports the volume-weighted per-share
			// price rather than the last level touched.
			est.ExitPrice = liquidation.AveragePrice(est.Proceeds, p.Size)
		}
		row.Estimates = append(row.Estimates, est)
	}

	return row
}
