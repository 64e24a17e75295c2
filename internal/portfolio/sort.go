package portfolio

import "sort"

// Sort keys accepted by SortRows.
const (
	SortByMarket    = "market"
	SortByRiskRange = "risk_range"
	SortByEndDate   = "end_date"
	SortByAvg       = "avg"
	SortByCurrent   = "current"
	SortByRisk      = "risk"
	SortByLiq25     = "liq_25"
	SortByLiq50     = "liq_50"
	SortByLiq75     = "liq_75"
	SortByLiq100    = "liq_100"
	SortByReward    = "reward"
	SortByValue     = "value"
	SortByPnL       = "pnl"
)

// SortState is the user's selected sort column and direction. It is passed
// explicitly into sorting rather than held as shared mutable state.
type SortState struct {
	Key       string
	Ascending bool
}

// DefaultSortState sorts by market title, ascending.
func DefaultSortState() SortState {
	return SortState{Key: SortByMarket, Ascending: true}
}

// Toggle returns the state after the user selects a column: selecting the
// current column flips the direction, selecting a new column sorts it
// ascending.
func (s SortState) Toggle(key string) SortState {
	if s.Key == key {
		return SortState{Key: key, Ascending: !s.Ascending}
	}
	return SortState{Key: key, Ascending: true}
}

// SortRows sorts rows in place according to the given state. Unknown keys
// fall back to the market title.
func SortRows(rows []Row, state SortState) {
	less := lessFunc(state.Key)
	sort.SliceStable(rows, func(i, j int) bool {
		if state.Ascending {
			return less(rows[i], rows[j])
		}
		return less(rows[j], rows[i])
	})
}

func lessFunc(key string) func(a, b Row) bool {
	switch key {
	case SortByRiskRange:
		return func(a, b Row) bool { return a.RiskRange < b.RiskRange }
	case SortByEndDate:
		return func(a, b Row) bool { return a.ResolvedEndDate < b.ResolvedEndDate }
	case SortByAvg:
		return func(a, b Row) bool { return a.AvgPrice < b.AvgPrice }
	case SortByCurrent:
		return func(a, b Row) bool { return a.CurrentPrice < b.CurrentPrice }
	case SortByRisk:
		return func(a, b Row) bool { return a.Risk < b.Risk }
	case SortByLiq25:
		return estimateLess(0.25)
	case SortByLiq50:
		return estimateLess(0.50)
	case SortByLiq75:
		return estimateLess(0.75)
	case SortByLiq100:
		return estimateLess(1.00)
	case SortByReward:
		return func(a, b Row) bool { return a.Reward < b.Reward }
	case SortByValue:
		return func(a, b Row) bool { return a.CurrentValue < b.CurrentValue }
	case SortByPnL:
		return func(a, b Row) bool { return a.PnL < b.PnL }
	default:
		return func(a, b Row) bool { return a.Market < b.Market }
	}
}

func estimateLess(fraction float64) func(a, b Row) bool {
	return func(a, b Row) bool {
		return a.Estimate(fraction).EstimatedPnL < b.Estimate(fraction).EstimatedPnL
	}
}
