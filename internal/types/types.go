// Package types provides shared type definitions for the portfolio dashboard.
package types

// PriceLevel represents a single price level in a raw order book payload.
// Prices and sizes arrive from the APIs as decimal strings.
type PriceLevel struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}
