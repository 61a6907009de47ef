package knowledge

import (
	"context"
	"fmt"
	"strconv"
	"time"

	ch "github.com/MyCarrier-DevOps/goLibMyCarrier/clickhouse"

	"github.com/MyCarrier-DevOps/smart-commit/internal/domain"
)

const createTableQuery = `CREATE TABLE IF NOT EXISTS commit_records (
	timestamp DateTime,
	type LowCardinality(String),
	scope LowCardinality(String),
	files Array(String),
	message String
) ENGINE = MergeTree ORDER BY timestamp`

const insertQuery = `INSERT INTO commit_records (timestamp, type, scope, files, message) VALUES (?, ?, ?, ?, ?)`

// Session is the subset of a goLibMyCarrier ClickHouse session used by ClickHouseSink.
type Session interface {
	ExecWithArgs(ctx context.Context, query string, args ...any) error
	Close() error
}

// ClickHouseSink mirrors commit records into a ClickHouse table.
type ClickHouseSink struct {
	session Session
}

// OpenClickHouseSink connects with the shared ClickHouse session helper and
// ensures the records table exists.
func OpenClickHouseSink(ctx context.Context, cfg *ch.ClickhouseConfig) (*ClickHouseSink, error) {
	session, err := ch.NewClickhouseSession(cfg, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open clickhouse session: %w", err)
	}

	if err := session.ExecWithArgs(ctx, createTableQuery); err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("failed to create commit_records table: %w", err)
	}
	return NewClickHouseSink(session), nil
}

// NewClickHouseSink wraps an existing session.
func NewClickHouseSink(session Session) *ClickHouseSink {
	return &ClickHouseSink{session: session}
}

// Append inserts one record.
func (s *ClickHouseSink) Append(ctx context.Context, record domain.CommitRecord) error {
	secs, err := strconv.ParseInt(record.Timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid record timestamp %q: %w", record.Timestamp, err)
	}
	files := record.Files
	if files == nil {
		files = []string{}
	}
	return s.session.ExecWithArgs(ctx, insertQuery,
		time.Unix(secs, 0).UTC(),
		record.Type,
		record.Scope,
		files,
		record.Message,
	)
}

// Close releases the session.
func (s *ClickHouseSink) Close() error {
	return s.session.Close()
}
