// Package clob provides a client for the Polymarket CLOB REST API.
package clob

import (
	"github.com/johan/polymarket-portfolio/internal/types"
)

// BookSnapshot represents an order book snapshot from the CLOB API.
type BookSnapshot struct {
	Market         string             `json:"market"`
	AssetID        string             `json:"asset_id"`
	Timestamp      string             `json:"timestamp"`
	Hash           string             `json:"hash"`
	Bids           []types.PriceLevel `json:"bids"`
	Asks           []types.PriceLevel `json:"asks"`
	MinOrderSize   string             `json:"min_order_size"`
	TickSize       string             `json:"tick_size"`
	NegRisk        bool               `json:"neg_risk"`
	LastTradePrice string             `json:"last_trade_price"`
}

// BookParams identifies a single book in a batch request.
type BookParams struct {
	TokenID string `json:"token_id"`
}

// MidpointResponse represents the response from the midpoint endpoint.
type MidpointResponse struct {
	Mid string `json:"mid"`
}

// SpreadResponse represents the response from the spread endpoint.
type SpreadResponse struct {
	Spread string `json:"spread"`
}
