package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/baxromumarov/seo-auditor/internal/audit"
)

type Store struct {
	db *sql.DB
}

func NewStore(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) RunMigrations(schemaPath string) error {
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

func clampLimit(limit int, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// AuditRecord is one persisted audit run.
type AuditRecord struct {
	ID              string        `json:"id"`
	URL             string        `json:"url"`
	FinalURL        string        `json:"final_url"`
	Score           int           `json:"score"`
	Issues          []audit.Issue `json:"issues"`
	Recommendations []string      `json:"recommendations"`
	Keywords        []string      `json:"keywords"`
	WordCount       int           `json:"word_count"`
	CreatedAt       time.Time     `json:"created_at"`
}

func (s *Store) SaveAudit(ctx context.Context, rec AuditRecord) error {
	issues, err := json.Marshal(nonNil(rec.Issues))
	if err != nil {
		return fmt.Errorf("encode issues: %w", err)
	}
	recs, err := json.Marshal(nonNil(rec.Recommendations))
	if err != nil {
		return fmt.Errorf("encode recommendations: %w", err)
	}
	keywords, err := json.Marshal(nonNil(rec.Keywords))
	if err != nil {
		return fmt.Errorf("encode keywords: %w", err)
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO audits (id, url, final_url, score, issues, recommendations, keywords, word_count, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO NOTHING
`, rec.ID, rec.URL, rec.FinalURL, rec.Score, string(issues), string(recs), string(keywords), rec.WordCount, createdAt)
	return err
}

func (s *Store) ListAudits(ctx context.Context, limit, offset int) ([]AuditRecord, error) {
	limit = clampLimit(limit, 20, 200)
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, url, COALESCE(final_url, ''), score, issues, recommendations, keywords, word_count, created_at
FROM audits
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []AuditRecord{}
	for rows.Next() {
		var (
			rec                    AuditRecord
			issues, recs, keywords []byte
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.URL,
			&rec.FinalURL,
			&rec.Score,
			&issues,
			&recs,
			&keywords,
			&rec.WordCount,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal(issues, &rec.Issues); err != nil {
			return nil, fmt.Errorf("decode issues for %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal(recs, &rec.Recommendations); err != nil {
			return nil, fmt.Errorf("decode recommendations for %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal(keywords, &rec.Keywords); err != nil {
			return nil, fmt.Errorf("decode keywords for %s: %w", rec.ID, err)
		}

		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) DeleteOldAudits(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	res, err := s.db.ExecContext(ctx, `
DELETE FROM audits
WHERE created_at < $1
`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
