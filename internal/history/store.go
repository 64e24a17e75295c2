// Package history persists refresh snapshots so portfolio totals can be
// tracked over time.
package history

import (
	"time"

	"github.com/johan/polymarket-portfolio/internal/portfolio"
)

// Snapshot is one completed refresh pass.
type Snapshot struct {
	// RunID uniquely identifies the refresh.
	RunID string `json:"run_id"`

	TakenAt time.Time `json:"taken_at"`

	// Wallets combined into this snapshot.
	Wallets []string `json:"wallets"`

	Summary portfolio.Summary `json:"summary"`

	Rows []portfolio.Row `json:"rows"`
}

// SummaryRecord is a stored summary with its snapshot identity, as returned
// by history queries.
type SummaryRecord struct {
	RunID   string
	TakenAt time.Time
	Summary portfolio.Summary
}

// Store defines the interface for snapshot persistence.
type Store interface {
	// WriteSnapshot persists one refresh snapshot.
	WriteSnapshot(snap *Snapshot) error

	// Close closes the backend.
	Close() error
}

// NullStore is a no-op store that discards all snapshots.
type NullStore struct{}

// NewNullStore creates a new null store.
func NewNullStore() *NullStore {
	return &NullStore{}
}

// WriteSnapshot does nothing.
func (s *NullStore) WriteSnapshot(snap *Snapshot) error {
	return nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}
