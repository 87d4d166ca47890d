package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// TimeLayout is how timestamps are kept in sqlite: local time with the
// timezone suffix already stripped.
const TimeLayout = "2006-01-02T15:04:05"

const schema = `
CREATE TABLE IF NOT EXISTS vacancies (
	id                 TEXT PRIMARY KEY,
	experience         TEXT,
	schedule           TEXT,
	employment         TEXT,
	description        TEXT,
	key_skills         TEXT,
	employer_id        TEXT,
	employer_name      TEXT,
	employer_url       TEXT,
	published_at       TEXT,
	created_at         TEXT,
	initial_created_at TEXT,
	salary_from        INTEGER,
	salary_to          INTEGER,
	salary_currency    TEXT,
	salary_gross       INTEGER,
	type_open          TEXT,
	applied            INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS tokenization (
	id                 TEXT PRIMARY KEY,
	common_tokens      TEXT,
	len_common_tokens  INTEGER,
	missing_tokens     TEXT,
	len_missing_tokens INTEGER,
	tokens             TEXT,
	score              REAL
);
`

type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens (and if needed creates) the sqlite database at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// sqlite typically wants a single writer
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
