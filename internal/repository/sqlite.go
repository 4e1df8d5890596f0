package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/crisisdesk/disaster-response-api/internal/models"
)

type SQLiteDB struct {
	db       *sql.DB
	capacity int
}

func NewSQLiteDB(path string, capacity int) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db:       db,
		capacity: capacity,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS summaries (
			id TEXT PRIMARY KEY,
			disaster_type TEXT NOT NULL,
			location TEXT,
			timeframe TEXT,
			markdown TEXT NOT NULL,
			report TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			expires_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_summaries_created_at ON summaries(created_at);
		CREATE INDEX IF NOT EXISTS idx_summaries_expires_at ON summaries(expires_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Save(ctx context.Context, summary *models.Summary) error {
	report, err := json.Marshal(summary.Report)
	if err != nil {
		return fmt.Errorf("error encoding report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO summaries
			(id, disaster_type, location, timeframe, markdown, report, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.ID, summary.DisasterType, summary.Location, summary.Timeframe,
		summary.Markdown, string(report), summary.CreatedAt.UTC(), summary.ExpiresAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("error inserting summary: %w", err)
	}

	return s.evictOverCapacity(ctx)
}

// evictOverCapacity drops the oldest rows beyond the capacity bound.
func (s *SQLiteDB) evictOverCapacity(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM summaries WHERE id NOT IN (
			SELECT id FROM summaries ORDER BY created_at DESC LIMIT ?
		)`, s.capacity)
	if err != nil {
		return fmt.Errorf("error evicting summaries: %w", err)
	}
	return nil
}

func (s *SQLiteDB) Get(ctx context.Context, id string) (*models.Summary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, disaster_type, location, timeframe, markdown, report, created_at, expires_at
		FROM summaries WHERE id = ? AND expires_at > ?`, id, time.Now().UTC())

	var summary models.Summary
	var report string
	err := row.Scan(&summary.ID, &summary.DisasterType, &summary.Location, &summary.Timeframe,
		&summary.Markdown, &report, &summary.CreatedAt, &summary.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning summary: %w", err)
	}

	if err := json.Unmarshal([]byte(report), &summary.Report); err != nil {
		return nil, fmt.Errorf("error decoding report: %w", err)
	}

	return &summary, nil
}

func (s *SQLiteDB) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM summaries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting summary: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteDB) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM summaries WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("error deleting expired summaries: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLiteDB) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM summaries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting summaries: %w", err)
	}
	return n, nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
