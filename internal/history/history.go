// Package history accumulates every time-series sample seen during a run
// in an in-memory SQLite database, so charts keep growing when the
// collector's snapshots only carry the latest few points. Nothing outlives
// the process.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/flightdeck/internal/log"
	"github.com/zjrosen/flightdeck/internal/telemetry"
	"github.com/zjrosen/flightdeck/internal/tracing"
)

// DefaultLimit is how many of the newest points Merge returns per series.
const DefaultLimit = 500

// ErrClosed is returned by every operation on a closed store.
var ErrClosed = errors.New("history store is closed")

// Config configures a Store.
type Config struct {
	// Limit caps the points Merge returns per series. <= 0 means DefaultLimit.
	Limit int
	// Retention drops points older than this on every Merge. 0 keeps everything.
	Retention time.Duration
	Tracer    trace.Tracer
}

// Store records snapshot series and serves them back merged. It is safe for
// concurrent use; mu serializes every operation with Close.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	cfg    Config
	tracer trace.Tracer
	now    func() time.Time
}

var _ telemetry.History = (*Store)(nil)

// Open creates an empty in-memory store with its schema applied.
func Open(cfg Config) (*Store, error) {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = tracing.Noop()
	}

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		log.ErrorErr(log.CatDB, "Failed to open history database", err)
		return nil, fmt.Errorf("history: open: %w", err)
	}
	// Every pooled connection to ":memory:" would see its own database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetMaxIdleConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: migrate: %w", err)
	}
	log.Info(log.CatDB, "History database ready", "limit", cfg.Limit, "retention", cfg.Retention)

	return &Store{db: db, cfg: cfg, tracer: tracer, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Record stores every series point of snap. Points already stored for the
// same series and timestamp are updated in place.
func (s *Store) Record(ctx context.Context, snap telemetry.Snapshot) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record(ctx, snap)
}

func (s *Store) record(ctx context.Context, snap telemetry.Snapshot) (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO points (series, at, value) VALUES (?, ?, ?)
		 ON CONFLICT (series, at) DO UPDATE SET value = excluded.value`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	n := 0
	for name, points := range snap.SeriesMap {
		for _, p := range points {
			if _, err := stmt.ExecContext(ctx, name, p.Time.UnixNano(), p.Value); err != nil {
				return 0, fmt.Errorf("recording %s: %w", name, err)
			}
			n++
		}
	}
	return n, tx.Commit()
}

// Series returns up to limit of the newest points of name, oldest first.
func (s *Store) Series(ctx context.Context, name string, limit int) ([]telemetry.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.series(ctx, name, limit)
}

func (s *Store) series(ctx context.Context, name string, limit int) ([]telemetry.Point, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT at, value FROM points WHERE series = ? ORDER BY at DESC LIMIT ?`, name, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []telemetry.Point
	for rows.Next() {
		var at int64
		var value float64
		if err := rows.Scan(&at, &value); err != nil {
			return nil, err
		}
		out = append(out, telemetry.Point{Time: time.Unix(0, at).UTC(), Value: value})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	slices.Reverse(out)
	return out, nil
}

// Names lists every recorded series.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.names(ctx)
}

func (s *Store) names(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT series FROM points ORDER BY series`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// Prune deletes points older than before and returns how many were removed.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prune(ctx, before)
}

func (s *Store) prune(ctx context.Context, before time.Time) (int64, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM points WHERE at < ?`, before.UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Merge records snap and returns a copy whose series are replaced by the
// stored history. Series the snapshot does not mention are added when the
// store knows them, so a collector may send only what changed.
func (s *Store) Merge(ctx context.Context, snap telemetry.Snapshot) (telemetry.Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanHistoryMerge)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	fail := func(err error) (telemetry.Snapshot, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "merge failed")
		return snap, err
	}

	recorded, err := s.record(ctx, snap)
	if err != nil {
		return fail(err)
	}
	if s.cfg.Retention > 0 {
		if _, err := s.prune(ctx, s.now().Add(-s.cfg.Retention)); err != nil {
			return fail(err)
		}
	}

	names, err := s.names(ctx)
	if err != nil {
		return fail(err)
	}
	merged := make(map[string][]telemetry.Point, len(names))
	total := 0
	for _, name := range names {
		points, err := s.series(ctx, name, s.cfg.Limit)
		if err != nil {
			return fail(err)
		}
		if len(points) > 0 {
			merged[name] = points
			total += len(points)
		}
	}

	span.SetAttributes(attribute.Int(tracing.AttrPointCount, total))
	log.Debug(log.CatDB, "Merged snapshot history", "recorded", recorded, "series", len(merged), "points", total)

	out := snap
	out.SeriesMap = merged
	return out, nil
}
