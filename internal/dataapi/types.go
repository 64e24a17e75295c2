// Package dataapi provides a client for the Polymarket Data API.
package dataapi

// RawPosition represents one position record from the positions endpoint.
// Prices are implied probabilities in [0, 1]; monetary fields are in USDC.
type RawPosition struct {
	ProxyWallet  string  `json:"proxyWallet"`
	Asset        string  `json:"asset"`
	ConditionID  string  `json:"conditionId"`
	Size         float64 `json:"size"`
	AvgPrice     float64 `json:"avgPrice"`
	InitialValue float64 `json:"initialValue"`
	CurrentValue float64 `json:"currentValue"`
	CashPnL      float64 `json:"cashPnl"`
	PercentPnL   float64 `json:"percentPnl"`
	TotalBought  float64 `json:"totalBought"`
	RealizedPnL  float64 `json:"realizedPnl"`
	CurPrice     float64 `json:"curPrice"`
	Redeemable   bool    `json:"redeemable"`
	Title        string  `json:"title"`
	Slug         string  `json:"slug"`
	Icon         string  `json:"icon"`
	EventSlug    string  `json:"eventSlug"`
	Outcome      string  `json:"outcome"`
	OutcomeIndex int     `json:"outcomeIndex"`
	EndDate      string  `json:"endDate"`
	NegativeRisk bool    `json:"negativeRisk"`
}

// OpenPositions filters a position list down to the positions that are still
// tradeable (not yet redeemable).
func OpenPositions(positions []RawPosition) []RawPosition {
	open := make([]RawPosition, 0, len(positions))
	for _, p := range positions {
		if !p.Redeemable {
			open = append(open, p)
		}
	}
	return open
}
