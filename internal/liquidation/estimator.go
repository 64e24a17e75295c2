// Package liquidation estimates the value a position could realize by
// selling into the bid side of an order book.
package liquidation

import (
	"github.com/johan/polymarket-portfolio/internal/book"
)

// Estimate is the result of walking a book for one liquidation fraction.
type Estimate struct {
	// Fraction of the position requested, in (0, 1].
	Fraction float64

	// TargetShares is positionSize * Fraction.
	TargetShares float64

	// ExitPrice is the price of the last level touched, i.e. the worst
	// price needed to fill the requested volume. Zero for an empty book.
	ExitPrice float64

	// Proceeds is the total value realized across all levels consumed.
	Proceeds float64

	// Unfilled is the volume left over when the book ran out of depth.
	// A partial fill is a best-effort approximation, not an error.
	Unfilled float64

	// EstimatedPnL is proceeds minus the fraction's share of the cost
	// basis. Filled in by the aggregator, which knows the cost basis.
	EstimatedPnL float64
}

// EstimateSale walks bid levels ordered best-first and greedily consumes
// depth until the requested fraction of the position is filled or the book
// is exhausted. Pure function, no I/O.
func EstimateSale(positionSize float64, bidsBestFirst []book.Level, fraction float64) Estimate {
	est := Estimate{
		Fraction:     fraction,
		TargetShares: positionSize * fraction,
	}

	remaining := est.TargetShares
	for _, level := range bidsBestFirst {
		if remaining <= 0 {
			break
		}
		if level.Size <= 0 {
			continue
		}
		take := min(remaining, level.Size)
		est.Proceeds += take * level.Price
		est.ExitPrice = level.Price
		remaining -= take
	}

	if remaining > 0 {
		est.Unfilled = remaining
	}

	return est
}

// AveragePrice returns the per-share exit price implied by total proceeds.
// Reports zero for a zero-share position rather than dividing by zero.
func AveragePrice(proceeds, shares float64) float64 {
	if shares == 0 {
		return 0
	}
	return proceeds / shares
}
