// Package store keeps a local history of analysis runs so findings can
// be compared across collections.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mkanyo/topograph/internal/domain"
)

type Store struct {
	db *sql.DB
}

// RunRecord summarizes one recorded analysis run.
type RunRecord struct {
	ID           int64
	CreatedAt    time.Time
	Source       string
	AccountID    string
	TGWCount     int
	VPCCount     int
	FindingCount int
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		source TEXT NOT NULL,
		account_id TEXT NOT NULL DEFAULT '',
		tgw_count INTEGER NOT NULL DEFAULT 0,
		vpc_count INTEGER NOT NULL DEFAULT 0,
		finding_count INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS findings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		kind TEXT NOT NULL,
		severity TEXT NOT NULL,
		location TEXT NOT NULL DEFAULT '',
		message TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveRun records one run and its findings in a single transaction and
// returns the new run id.
func (s *Store) SaveRun(ctx context.Context, source string, cat *domain.Catalog, findings []domain.Finding) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (created_at, source, account_id, tgw_count, vpc_count, finding_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`, time.Now().UTC(), source, cat.LocalAccountID, cat.TGWs.Len(), cat.VPCs.Len(), len(findings))
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read run id: %w", err)
	}

	for _, f := range findings {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO findings (run_id, kind, severity, location, message)
			VALUES (?, ?, ?, ?, ?)
		`, runID, string(f.Kind), string(f.Severity), f.Location, f.Message); err != nil {
			return 0, fmt.Errorf("insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit history transaction: %w", err)
	}
	return runID, nil
}

// Runs lists recorded runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, source, account_id, tgw_count, vpc_count, finding_count
		FROM runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Source, &r.AccountID, &r.TGWCount, &r.VPCCount, &r.FindingCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Findings returns the findings recorded for one run, in insert order.
func (s *Store) Findings(ctx context.Context, runID int64) ([]domain.Finding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, severity, location, message
		FROM findings WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query findings: %w", err)
	}
	defer rows.Close()

	var findings []domain.Finding
	for rows.Next() {
		var kind, severity string
		var f domain.Finding
		if err := rows.Scan(&kind, &severity, &f.Location, &f.Message); err != nil {
			return nil, fmt.Errorf("scan finding: %w", err)
		}
		f.Kind = domain.FindingKind(kind)
		f.Severity = domain.Severity(severity)
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
