package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/qmanhbeo/uk-procurement-data-pipeline/internal/record"
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

func clampLimit(limit, defaultLimit, maxLimit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// Notice is one stored canonical record with its key columns lifted out
// for querying; the full record rides along as JSON.
type Notice struct {
	ID              int            `json:"id"`
	SourceFile      string         `json:"source_file,omitempty"`
	SchemaType      string         `json:"schema_type,omitempty"`
	FormType        string         `json:"form_type,omitempty"`
	NoticeTypeGroup string         `json:"notice_type_group,omitempty"`
	DocID           string         `json:"doc_id,omitempty"`
	OCID            string         `json:"ocid,omitempty"`
	Published       string         `json:"published,omitempty"`
	Record          *record.Record `json:"record,omitempty"`
	ExtractedAt     *time.Time     `json:"extracted_at,omitempty"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// InsertNotice stores one canonical record. Key columns are duplicated
// from the record for indexing; the record itself lands in a jsonb
// column in its sparse form.
func (s *Store) InsertNotice(ctx context.Context, rec *record.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	published := deref(rec.DatePub)
	if published == "" {
		published = deref(rec.PublishedDate)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO notices (source_file, schema_type, form_type, notice_type_group, doc_id, ocid, published, record)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		deref(rec.SourceFile),
		deref(rec.SchemaType),
		deref(rec.FormType),
		deref(rec.NoticeTypeGroup),
		deref(rec.DocID),
		deref(rec.OCID),
		published,
		payload,
	)
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

// ListNotices returns stored notices, newest first.
func (s *Store) ListNotices(ctx context.Context, limit, offset int) ([]Notice, error) {
	limit = clampLimit(limit, 100, 1000)
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_file, schema_type, form_type, notice_type_group, doc_id, ocid, published, record, extracted_at
		FROM notices
		ORDER BY id DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var notices []Notice
	for rows.Next() {
		var n Notice
		var payload []byte
		if err := rows.Scan(&n.ID, &n.SourceFile, &n.SchemaType, &n.FormType, &n.NoticeTypeGroup,
			&n.DocID, &n.OCID, &n.Published, &payload, &n.ExtractedAt); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		var rec record.Record
		if err := json.Unmarshal(payload, &rec); err == nil {
			n.Record = &rec
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

// CountByGroup reports stored notice counts per notice type group.
func (s *Store) CountByGroup(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT notice_type_group, COUNT(*)
		FROM notices
		GROUP BY notice_type_group`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var group string
		var count int
		if err := rows.Scan(&group, &count); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		counts[group] = count
	}
	return counts, rows.Err()
}
