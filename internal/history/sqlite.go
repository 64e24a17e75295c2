package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    run_id TEXT PRIMARY KEY,
    taken_at TEXT NOT NULL,
    wallets TEXT NOT NULL,
    total_risk REAL NOT NULL,
    total_value REAL NOT NULL,
    market_value REAL NOT NULL,
    total_pnl REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_positions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL REFERENCES snapshots(run_id),
    asset_id TEXT NOT NULL,
    market TEXT NOT NULL,
    outcome TEXT NOT NULL,
    size REAL NOT NULL,
    avg_price REAL NOT NULL,
    current_price REAL NOT NULL,
    initial_value REAL NOT NULL,
    current_value REAL NOT NULL,
    reward REAL NOT NULL,
    return_pct REAL NOT NULL,
    pnl REAL NOT NULL,
    liquidation_pnl REAL NOT NULL,
    risk_label TEXT NOT NULL,
    end_date TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_positions_run ON snapshot_positions(run_id);
`

// SQLiteStore persists snapshots to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates or opens a SQLite store at the given path with WAL
// mode enabled, creating the schema if needed.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Single writer; also keeps an in-memory database on one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// WriteSnapshot persists the summary and all rows in one transaction.
func (s *SQLiteStore) WriteSnapshot(snap *Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO snapshots (run_id, taken_at, wallets, total_risk, total_value, market_value, total_pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.RunID,
		snap.TakenAt.UTC().Format(time.RFC3339),
		strings.Join(snap.Wallets, ","),
		snap.Summary.TotalRisk,
		snap.Summary.TotalValue,
		snap.Summary.MarketValue,
		snap.Summary.TotalPnL,
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}

	for _, row := range snap.Rows {
		_, err = tx.Exec(`
			INSERT INTO snapshot_positions (run_id, asset_id, market, outcome, size, avg_price,
				current_price, initial_value, current_value, reward, return_pct, pnl,
				liquidation_pnl, risk_label, end_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			snap.RunID,
			row.AssetID,
			row.Market,
			row.Outcome,
			row.Size,
			row.AvgPrice,
			row.CurrentPrice,
			row.InitialValue,
			row.CurrentValue,
			row.Reward,
			row.ReturnPct,
			row.PnL,
			row.Estimate(1.0).EstimatedPnL,
			row.RiskLabel,
			row.ResolvedEndDate,
		)
		if err != nil {
			return fmt.Errorf("inserting position row: %w", err)
		}
	}

	return tx.Commit()
}

// RecentSummaries returns the most recent snapshot summaries, newest first.
func (s *SQLiteStore) RecentSummaries(limit int) ([]SummaryRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT run_id, taken_at, total_risk, total_value, market_value, total_pnl
		FROM snapshots
		ORDER BY taken_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var records []SummaryRecord
	for rows.Next() {
		var rec SummaryRecord
		var takenAt string
		if err := rows.Scan(&rec.RunID, &takenAt, &rec.Summary.TotalRisk,
			&rec.Summary.TotalValue, &rec.Summary.MarketValue, &rec.Summary.TotalPnL); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		rec.TakenAt, _ = time.Parse(time.RFC3339, takenAt)
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
