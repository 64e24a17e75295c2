package portfolio

import "sort"

// Summary holds the portfolio-wide totals shown above the table.
type Summary struct {
	// TotalRisk is the summed cost basis across open positions.
	TotalRisk float64

	// TotalValue is the summed mark value.
	TotalValue float64

	// MarketValue is the summed full-liquidation PnL, i.e. what the
	// books say the portfolio would actually net.
	MarketValue float64

	// TotalPnL is the summed unrealized PnL at mark prices.
	TotalPnL float64
}

// Summarize computes portfolio totals over a set of rows.
func Summarize(rows []Row) Summary {
	var s Summary
	for _, r := range rows {
		s.TotalRisk += r.Risk
		s.TotalValue += r.CurrentValue
		s.MarketValue += r.Estimate(1.0).EstimatedPnL
		s.TotalPnL += r.PnL
	}
	return s
}

// PnLBucket is the full-liquidation PnL summed over rows sharing an end
// date and risk label.
type PnLBucket struct {
	EndDate        string
	RiskLabel      string
	LiquidationPnL float64
}

// PnLByEndDate groups rows by (end date, risk label) and sums their
// full-liquidation PnL, ordered by date then label. Rows with no resolvable
// end date group under the empty date first.
func PnLByEndDate(rows []Row) []PnLBucket {
	type key struct {
		date  string
		label string
	}

	sums := make(map[key]float64)
	for _, r := range rows {
		k := key{date: r.ResolvedEndDate, label: r.RiskLabel}
		sums[k] += r.Estimate(1.0).EstimatedPnL
	}

	buckets := make([]PnLBucket, 0, len(sums))
	for k, pnl := range sums {
		buckets = append(buckets, PnLBucket{
			EndDate:        k.date,
			RiskLabel:      k.label,
			LiquidationPnL: pnl,
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].EndDate != buckets[j].EndDate {
			return buckets[i].EndDate < buckets[j].EndDate
		}
		return buckets[i].RiskLabel < buckets[j].RiskLabel
	})

	return buckets
}
