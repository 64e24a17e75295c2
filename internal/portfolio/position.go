// Package portfolio combines positions, order-book liquidation estimates,
// and risk classification into display-ready records.
package portfolio

import (
	"strings"

	"github.com/johan/polymarket-portfolio/internal/dataapi"
)

// Position is one held outcome-share balance for one market. Constructed
// fresh on every fetch cycle and immutable once read by downstream stages.
type Position struct {
	AssetID      string
	Market       string
	Outcome      string
	Size         float64
	AvgPrice     float64
	CurrentPrice float64
	InitialValue float64
	CurrentValue float64
	RealizedPnL  float64
	PercentPnL   float64
	EndDate      string
	Icon         string
	EventSlug    string
}

// FromRaw converts a raw Data API position into the internal model.
func FromRaw(raw dataapi.RawPosition) Position {
	return Position{
		AssetID:      raw.Asset,
		Market:       raw.Title,
		Outcome:      capitalize(raw.Outcome),
		Size:         raw.Size,
		AvgPrice:     raw.AvgPrice,
		CurrentPrice: raw.CurPrice,
		InitialValue: raw.InitialValue,
		CurrentValue: raw.CurrentValue,
		RealizedPnL:  raw.RealizedPnL,
		PercentPnL:   raw.PercentPnL,
		EndDate:      raw.EndDate,
		Icon:         raw.Icon,
		EventSlug:    raw.EventSlug,
	}
}

// MarketLink returns the public event page for the position's market.
func (p Position) MarketLink() string {
	if p.EventSlug == "" {
		return ""
	}
	return "https://polymarket.com/event/" + p.EventSlug
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
