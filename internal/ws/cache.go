package ws

import (
	"sync"

	"github.com/johan/polymarket-portfolio/internal/clob"
	"github.com/johan/polymarket-portfolio/internal/types"
)

// BookCache maintains the latest raw book per asset, built from full "book"
// snapshots and patched by "price_change" events. Safe for concurrent use;
// Snapshot returns copies, so readers never see a book mid-patch.
type BookCache struct {
	mu    sync.RWMutex
	books map[string]*clob.BookSnapshot
}

// NewBookCache creates an empty book cache.
func NewBookCache() *BookCache {
	return &BookCache{books: make(map[string]*clob.BookSnapshot)}
}

// Seed loads full snapshots fetched over REST, typically once at startup
// before the feed takes over.
func (c *BookCache) Seed(snapshots []clob.BookSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range snapshots {
		s := snapshots[i]
		c.books[s.AssetID] = &s
	}
}

// Apply folds one feed message into the cache. Book events replace the
// asset's snapshot; price_change events patch individual levels. Unknown
// event types are ignored.
func (c *BookCache) Apply(msg *Message) {
	switch msg.EventType {
	case EventTypeBook:
		if msg.AssetID == "" {
			return
		}
		c.mu.Lock()
		c.books[msg.AssetID] = &clob.BookSnapshot{
			Market:         msg.Market,
			AssetID:        msg.AssetID,
			Timestamp:      msg.Timestamp,
			Hash:           msg.Hash,
			Bids:           msg.Bids,
			Asks:           msg.Asks,
			LastTradePrice: msg.LastTradePrice,
		}
		c.mu.Unlock()

	case EventTypePriceChange:
		c.mu.Lock()
		for _, pc := range msg.PriceChanges {
			c.applyChange(pc)
		}
		c.mu.Unlock()
	}
}

// applyChange patches one price level. A BUY change targets the bids, a
// SELL change the asks. The reported size replaces the level's size; a zero
// size removes the level. Changes for assets never seeded are dropped.
func (c *BookCache) applyChange(pc PriceChange) {
	book, ok := c.books[pc.AssetID]
	if !ok {
		return
	}

	if pc.Side == "BUY" {
		book.Bids = patchLevels(book.Bids, pc.Price, pc.Size)
	} else {
		book.Asks = patchLevels(book.Asks, pc.Price, pc.Size)
	}
}

func patchLevels(levels []types.PriceLevel, price, size string) []types.PriceLevel {
	remove := size == "0" || size == "0.0" || size == ""

	for i, l := range levels {
		if l.Price != price {
			continue
		}
		if remove {
			return append(levels[:i], levels[i+1:]...)
		}
		levels[i].Size = size
		return levels
	}

	if remove {
		return levels
	}
	return append(levels, types.PriceLevel{Price: price, Size: size})
}

// Snapshot returns a copy of the cached book for an asset, or nil if the
// asset has never been seen.
func (c *BookCache) Snapshot(assetID string) *clob.BookSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	book, ok := c.books[assetID]
	if !ok {
		return nil
	}

	out := *book
	out.Bids = append([]types.PriceLevel(nil), book.Bids...)
	out.Asks = append([]types.PriceLevel(nil), book.Asks...)
	return &out
}

// Assets returns the asset IDs currently cached.
func (c *BookCache) Assets() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.books))
	for id := range c.books {
		ids = append(ids, id)
	}
	return ids
}
