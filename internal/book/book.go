// Package book normalizes raw order book snapshots into depth-ordered,
// cumulative-value-annotated price levels.
package book

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/johan/polymarket-portfolio/internal/clob"
	"github.com/johan/polymarket-portfolio/internal/types"
)

// Side identifies which side of the book a level belongs to.
type Side string

const (
	// SideBid is the buy side of the book.
	SideBid Side = "BID"

	// SideAsk is the sell side of the book.
	SideAsk Side = "ASK"
)

// Level is one normalized price level.
//
// CumulativeValue is the running sum of price*size across the level's side,
// accumulated in ascending price order.
type Level struct {
	AssetID         string
	Price           float64
	Size            float64
	Side            Side
	CumulativeValue float64
}

// Normalize converts a raw book snapshot into a flat sequence of levels,
// asks first then bids, each side sorted ascending by price. A side with no
// depth is represented by a single zero-price, zero-size sentinel level so
// downstream arithmetic never has to handle an absent side.
func Normalize(snapshot *clob.BookSnapshot) ([]Level, error) {
	if snapshot == nil {
		return nil, &SchemaError{Field: "book"}
	}
	if snapshot.AssetID == "" {
		return nil, &SchemaError{Field: "asset_id"}
	}

	asks, err := normalizeSide(snapshot.AssetID, snapshot.Asks, SideAsk)
	if err != nil {
		return nil, err
	}
	bids, err := normalizeSide(snapshot.AssetID, snapshot.Bids, SideBid)
	if err != nil {
		return nil, err
	}

	return append(asks, bids...), nil
}

func normalizeSide(assetID string, raw []types.PriceLevel, side Side) ([]Level, error) {
	if len(raw) == 0 {
		// Sentinel keeps the side present with zero depth.
		return []Level{{AssetID: assetID, Side: side}}, nil
	}

	levels := make([]Level, 0, len(raw))
	for _, pl := range raw {
		price, err := strconv.ParseFloat(pl.Price, 64)
		if err != nil {
			return nil, &ParseError{Field: fmt.Sprintf("%s price", sideField(side)), Value: pl.Price, Err: err}
		}
		size, err := strconv.ParseFloat(pl.Size, 64)
		if err != nil {
			return nil, &ParseError{Field: fmt.Sprintf("%s size", sideField(side)), Value: pl.Size, Err: err}
		}
		levels = append(levels, Level{
			AssetID: assetID,
			Price:   price,
			Size:    size,
			Side:    side,
		})
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].Price < levels[j].Price
	})

	var cumulative float64
	for i := range levels {
		cumulative += levels[i].Price * levels[i].Size
		levels[i].CumulativeValue = cumulative
	}

	return levels, nil
}

func sideField(side Side) string {
	if side == SideBid {
		return "bid"
	}
	return "ask"
}

// BestBids returns the bid levels of a normalized book ordered best-first,
// i.e. descending by price, ready for the liquidation estimator to walk.
func BestBids(levels []Level) []Level {
	bids := make([]Level, 0, len(levels))
	for _, l := range levels {
		if l.Side == SideBid {
			bids = append(bids, l)
		}
	}
	sort.Slice(bids, func(i, j int) bool {
		return bids[i].Price > bids[j].Price
	})
	return bids
}

// GroupByAsset groups a flat collection of levels from many assets back into
// per-asset books.
func GroupByAsset(levels []Level) map[string][]Level {
	books := make(map[string][]Level)
	for _, l := range levels {
		books[l.AssetID] = append(books[l.AssetID], l)
	}
	return books
}
