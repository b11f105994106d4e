package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/phantomsec/phantomscan/internal/model"
)

// dbFileName is the archive database file name inside the archive
// directory.
const dbFileName = "phantomscan.db"

// Record is one archived audit run. It intentionally has no field that
// could hold document content.
type Record struct {
	// ID is the row identifier, assigned on insert.
	ID int64 `json:"id"`

	// CreatedAt is when the audit ran.
	CreatedAt time.Time `json:"created_at"`

	// Source identifies the audited document (file path or "request").
	Source string `json:"source"`

	// TotalRedactions is the number of spans redacted in the run.
	TotalRedactions int `json:"total_redactions"`

	// PerCategory counts redactions by entity category.
	PerCategory map[model.EntityCategory]int `json:"by_category"`

	// RiskTier is the archival classification, assigned by NewRecord
	// from the redaction count.
	RiskTier model.RiskTier `json:"risk_tier"`
}

// NewRecord builds an archive row for a completed run. The risk tier is
// derived here, in the row constructor, from the count: archival
// classification stays independent of whatever live-alert decisions were
// made during the run.
func NewRecord(source string, summary model.RedactionSummary) *Record {
	perCategory := make(map[model.EntityCategory]int, len(summary.PerCategory))
	for c, n := range summary.PerCategory {
		perCategory[c] = n
	}
	return &Record{
		CreatedAt:       time.Now(),
		Source:          source,
		TotalRedactions: summary.TotalRedactions,
		PerCategory:     perCategory,
		RiskTier:        model.TierForCount(summary.TotalRedactions),
	}
}

// Stats summarizes the whole archive.
type Stats struct {
	// TotalRuns is the number of archived audit runs.
	TotalRuns int `json:"total_runs"`

	// TotalRedactions is the sum of redaction counts across all runs.
	TotalRedactions int `json:"total_redactions"`

	// HighRiskRuns is the number of runs classified High.
	HighRiskRuns int `json:"high_risk_runs"`
}

// Archive provides SQLite-backed storage for audit run summaries.
type Archive struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Archive behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for the server, harmless for the CLI.
	EnableWAL bool
}

// DefaultOptions returns the default archive options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an Archive in the specified directory.
func Open(dir string, opts Options) (*Archive, error) {
	dbPath := filepath.Join(dir, dbFileName)

	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	} else if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("archive not found at %s: %w", dbPath, err)
	}

	// modernc.org/sqlite connection string: mode=rwc allows creation,
	// mode=rw requires the file to exist.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	// SQLite supports a single writer; multiple connections only add
	// lock contention for this write-mostly workload.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	a := &Archive{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := a.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return a, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Path returns the path of the underlying database file.
func (a *Archive) Path() string {
	return a.dbPath
}

// createTables creates the archive schema if it doesn't exist.
func (a *Archive) createTables() error {
	schema := `
	-- Audit runs store per-run redaction summaries. No document content.
	CREATE TABLE IF NOT EXISTS audit_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		source TEXT NOT NULL,
		total_redactions INTEGER NOT NULL,
		per_category TEXT NOT NULL,
		risk_tier TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_audit_runs_created ON audit_runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_audit_runs_tier ON audit_runs(risk_tier);
	`

	_, err := a.db.ExecContext(context.Background(), schema)
	return err
}

// Insert stores a record and assigns its ID.
func (a *Archive) Insert(ctx context.Context, record *Record) error {
	perCategory, err := json.Marshal(record.PerCategory)
	if err != nil {
		return fmt.Errorf("failed to encode per-category counts: %w", err)
	}

	result, err := a.db.ExecContext(ctx,
		`INSERT INTO audit_runs (created_at, source, total_redactions, per_category, risk_tier)
		 VALUES (?, ?, ?, ?, ?)`,
		record.CreatedAt.UTC(), record.Source, record.TotalRedactions,
		string(perCategory), record.RiskTier.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted id: %w", err)
	}
	record.ID = id
	return nil
}

// Recent returns up to limit records, newest first. A limit of 0 or less
// defaults to 10.
func (a *Archive) Recent(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := a.db.QueryContext(ctx,
		`SELECT id, created_at, source, total_redactions, per_category, risk_tier
		 FROM audit_runs ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]*Record, 0, limit)
	for rows.Next() {
		var (
			r           Record
			perCategory string
			tier        string
		)
		if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Source, &r.TotalRedactions, &perCategory, &tier); err != nil {
			return nil, fmt.Errorf("failed to scan audit run: %w", err)
		}
		if err := json.Unmarshal([]byte(perCategory), &r.PerCategory); err != nil {
			return nil, fmt.Errorf("failed to decode per-category counts: %w", err)
		}
		r.RiskTier = tierFromString(tier)
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit runs: %w", err)
	}

	return records, nil
}

// Stats aggregates the archive.
func (a *Archive) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := a.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(total_redactions), 0),
		        COALESCE(SUM(CASE WHEN risk_tier = 'High' THEN 1 ELSE 0 END), 0)
		 FROM audit_runs`,
	).Scan(&s.TotalRuns, &s.TotalRedactions, &s.HighRiskRuns)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate archive: %w", err)
	}
	return &s, nil
}

// tierFromString converts a stored tier name back to its constant.
func tierFromString(name string) model.RiskTier {
	switch name {
	case "High":
		return model.RiskHigh
	case "Medium":
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}
