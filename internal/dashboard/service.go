// Package dashboard orchestrates one fetch-then-compute pass: positions and
// order books in, display-ready rows and summary metrics out.
package dashboard

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/johan/polymarket-portfolio/internal/book"
	"github.com/johan/polymarket-portfolio/internal/clob"
	"github.com/johan/polymarket-portfolio/internal/config"
	"github.com/johan/polymarket-portfolio/internal/dataapi"
	"github.com/johan/polymarket-portfolio/internal/history"
	"github.com/johan/polymarket-portfolio/internal/portfolio"
	"github.com/johan/polymarket-portfolio/internal/ws"
)

// Result is the output of one refresh pass.
type Result struct {
	RunID   string
	TakenAt time.Time

	Rows    []portfolio.Row
	Summary portfolio.Summary

	// Warnings are per-address or per-book failures that degraded the
	// result without failing it.
	Warnings []string
}

// Service wires the position source, book source, aggregator, and snapshot
// store into refresh passes.
type Service struct {
	config     *config.Config
	positions  *dataapi.Client
	books      *clob.Client
	store      history.Store
	aggregator *portfolio.Aggregator

	cache *ws.BookCache
	feed  *ws.Client
}

// NewService creates a new dashboard service from configuration.
func NewService(cfg *config.Config) (*Service, error) {
	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}

	positions := dataapi.NewClient(httpClient)
	if cfg.DataAPI.URL != "" {
		positions.WithBaseURL(cfg.DataAPI.URL)
	}

	books := clob.NewClient(httpClient)
	if cfg.CLOB.URL != "" {
		books.WithBaseURL(cfg.CLOB.URL)
	}

	var store history.Store
	var err error
	switch cfg.History.Type {
	case "sqlite":
		store, err = history.OpenSQLite(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite history: %w", err)
		}
	case "file":
		store, err = history.NewFileStore(cfg.History.OutputDir, cfg.History.RotationInterval)
		if err != nil {
			return nil, fmt.Errorf("creating file history: %w", err)
		}
	case "none", "":
		store = history.NewNullStore()
	default:
		return nil, fmt.Errorf("unknown history type: %s", cfg.History.Type)
	}

	s := &Service{
		config:     cfg,
		positions:  positions,
		books:      books,
		store:      store,
		aggregator: portfolio.NewAggregator(cfg.Fractions, nil),
		cache:      ws.NewBookCache(),
	}

	s.feed = ws.NewClient(s.handleFeedMessages)
	if cfg.WebSocket.URL != "" {
		s.feed.WithURL(cfg.WebSocket.URL)
	}
	s.feed.WithReconnectConfig(ws.ReconnectConfig{
		InitialBackoff: cfg.WebSocket.InitialBackoff,
		MaxBackoff:     cfg.WebSocket.MaxBackoff,
		BackoffFactor:  cfg.WebSocket.BackoffFactor,
	})

	return s, nil
}

// Refresh runs one full fetch-then-compute pass and persists the snapshot.
func (s *Service) Refresh(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:   uuid.NewString(),
		TakenAt: time.Now().UTC(),
	}

	positions := s.fetchPositions(ctx, result)
	snapshots := s.fetchBooks(ctx, assetIDs(positions), result)
	s.cache.Seed(snapshots)

	result.Rows = s.aggregator.Aggregate(positions, s.normalizeBooks(snapshots, result))
	result.Summary = portfolio.Summarize(result.Rows)

	if err := s.store.WriteSnapshot(&history.Snapshot{
		RunID:   result.RunID,
		TakenAt: result.TakenAt,
		Wallets: s.config.Wallets,
		Summary: result.Summary,
		Rows:    result.Rows,
	}); err != nil {
		log.Printf("Warning: writing snapshot: %v", err)
	}

	return result, nil
}

// fetchPositions combines open positions across all configured wallets.
// A failing address degrades to zero positions for that address with a
// warning; the other addresses still contribute.
func (s *Service) fetchPositions(ctx context.Context, result *Result) []portfolio.Position {
	var combined []portfolio.Position

	filter := &dataapi.Filter{SizeThreshold: s.config.HTTP.SizeThreshold}
	for _, wallet := range s.config.Wallets {
		raw, err := s.positions.FetchPositions(ctx, wallet, filter)
		if err != nil {
			warning := fmt.Sprintf("fetching positions for %s: %v", wallet, err)
			result.Warnings = append(result.Warnings, warning)
			log.Printf("Warning: %s", warning)
			continue
		}

		for _, r := range dataapi.OpenPositions(raw) {
			combined = append(combined, portfolio.FromRaw(r))
		}
	}

	return combined
}

// fetchBooks fetches book snapshots for the given assets in one batch call.
func (s *Service) fetchBooks(ctx context.Context, ids []string, result *Result) []clob.BookSnapshot {
	if len(ids) == 0 {
		return nil
	}

	snapshots, err := s.books.FetchBooks(ctx, ids)
	if err != nil {
		warning := fmt.Sprintf("fetching order books: %v", err)
		result.Warnings = append(result.Warnings, warning)
		log.Printf("Warning: %s", warning)
		return nil
	}

	return snapshots
}

// normalizeBooks converts raw snapshots into per-asset normalized books.
// A snapshot that fails to normalize is skipped with a warning; its asset
// then falls back to zero estimates in the aggregator.
func (s *Service) normalizeBooks(snapshots []clob.BookSnapshot, result *Result) map[string][]book.Level {
	var all []book.Level
	for i := range snapshots {
		levels, err := book.Normalize(&snapshots[i])
		if err != nil {
			warning := fmt.Sprintf("normalizing book for %s: %v", snapshots[i].AssetID, err)
			result.Warnings = append(result.Warnings, warning)
			log.Printf("Warning: %s", warning)
			continue
		}
		all = append(all, levels...)
	}
	return book.GroupByAsset(all)
}

// Watch runs live mode: one initial refresh, then a WebSocket subscription
// for the held assets keeps the book cache fresh while a ticker recomputes
// and re-renders. Positions are not re-fetched between renders.
func (s *Service) Watch(ctx context.Context, render func(*Result)) error {
	result, err := s.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("initial refresh: %w", err)
	}
	render(result)

	positions := make([]portfolio.Position, 0, len(result.Rows))
	for _, r := range result.Rows {
		positions = append(positions, r.Position)
	}

	ids := assetIDs(positions)
	if len(ids) == 0 {
		return fmt.Errorf("no open positions to watch")
	}

	if err := s.feed.Connect(ctx); err != nil {
		return fmt.Errorf("connecting to feed: %w", err)
	}
	defer s.feed.Close()

	if err := s.feed.Subscribe(ids); err != nil {
		return fmt.Errorf("subscribing to feed: %w", err)
	}

	log.Printf("Watching %d assets; rendering every %v", len(ids), s.config.Watch.RenderInterval)

	ticker := time.NewTicker(s.config.Watch.RenderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			render(s.recompute(positions))
		}
	}
}

// recompute rebuilds rows from the live book cache without touching the
// network.
func (s *Service) recompute(positions []portfolio.Position) *Result {
	result := &Result{
		RunID:   uuid.NewString(),
		TakenAt: time.Now().UTC(),
	}

	var snapshots []clob.BookSnapshot
	for _, p := range positions {
		if snap := s.cache.Snapshot(p.AssetID); snap != nil {
			snapshots = append(snapshots, *snap)
		}
	}

	result.Rows = s.aggregator.Aggregate(positions, s.normalizeBooks(snapshots, result))
	result.Summary = portfolio.Summarize(result.Rows)
	return result
}

func (s *Service) handleFeedMessages(messages []ws.Message) {
	for i := range messages {
		s.cache.Apply(&messages[i])
	}
}

// Close shuts down the service.
func (s *Service) Close() error {
	if s.feed != nil {
		s.feed.Close()
	}
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

func assetIDs(positions []portfolio.Position) []string {
	seen := make(map[string]bool, len(positions))
	ids := make([]string, 0, len(positions))
	for _, p := range positions {
		if p.AssetID == "" || seen[p.AssetID] {
			continue
		}
		seen[p.AssetID] = true
		ids = append(ids, p.AssetID)
	}
	return ids
}
