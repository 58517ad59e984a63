package history

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/flightdeck/internal/telemetry"
	"github.com/zjrosen/flightdeck/internal/tracing"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func points(values ...float64) []telemetry.Point {
	out := make([]telemetry.Point, len(values))
	for i, v := range values {
		out[i] = telemetry.Point{Time: base.Add(time.Duration(i) * time.Hour), Value: v}
	}
	return out
}

func openMemory(t *testing.T, cfg Config) *Store {
	t.Helper()
	s, err := Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_AppliesSchema(t *testing.T) {
	s := openMemory(t, Config{})

	var version int
	require.NoError(t, s.db.QueryRow(`PRAGMA user_version`).Scan(&version))
	require.Equal(t, SchemaVersion(), version)
	require.Equal(t, DefaultLimit, s.cfg.Limit)

	// Running the migrations again on an up to date schema changes nothing.
	require.NoError(t, migrate(s.db))
}

func TestMigrate_RejectsNewerSchema(t *testing.T) {
	s := openMemory(t, Config{})
	_, err := s.db.Exec(`PRAGMA user_version = 99`)
	require.NoError(t, err)
	require.ErrorContains(t, migrate(s.db), "newer")
}

func TestRecordAndSeries(t *testing.T) {
	s := openMemory(t, Config{})
	ctx := context.Background()

	n, err := s.Record(ctx, telemetry.Snapshot{SeriesMap: map[string][]telemetry.Point{
		"wealth": points(1, 2, 3),
	}})
	require.NoError(t, err)
	require.Equal(t, 3, n)

	// Same timestamps overwrite rather than duplicate.
	_, err = s.Record(ctx, telemetry.Snapshot{SeriesMap: map[string][]telemetry.Point{
		"wealth": points(10),
	}})
	require.NoError(t, err)

	got, err := s.Series(ctx, "wealth", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, 10.0, got[0].Value)
	require.True(t, got[0].Time.Equal(base))
	require.Equal(t, 3.0, got[2].Value)

	newest, err := s.Series(ctx, "wealth", 2)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 3}, []float64{newest[0].Value, newest[1].Value})

	names, err := s.Names(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"wealth"}, names)
}

func TestMerge_AccumulatesAcrossSnapshots(t *testing.T) {
	s := openMemory(t, Config{Limit: 4})
	ctx := context.Background()

	first := telemetry.Snapshot{SeriesMap: map[string][]telemetry.Point{
		"session_credits": points(1, 2),
		"wealth":          points(5),
	}}
	_, err := s.Merge(ctx, first)
	require.NoError(t, err)

	later := make([]telemetry.Point, 0, 3)
	for i, v := range []float64{3, 4, 5} {
		later = append(later, telemetry.Point{Time: base.Add(time.Duration(2+i) * time.Hour), Value: v})
	}
	second := telemetry.Snapshot{
		StatusList: []telemetry.StatusRecord{{Key: telemetry.StatusGame, Value: "Docked"}},
		SeriesMap:  map[string][]telemetry.Point{"session_credits": later},
	}
	merged, err := s.Merge(ctx, second)
	require.NoError(t, err)

	credits := merged.Series("session_credits")
	require.Len(t, credits, 4, "limited to the newest points")
	require.Equal(t, 2.0, credits[0].Value)
	require.Equal(t, 5.0, credits[3].Value)
	require.Len(t, merged.Series("wealth"), 1, "series missing from the snapshot come from history")

	rec, ok := telemetry.LookupStatus(merged, telemetry.StatusGame)
	require.True(t, ok)
	require.Equal(t, "Docked", rec.Value)
	require.Len(t, second.Series("session_credits"), 3, "input snapshot untouched")
}

func TestMerge_Retention(t *testing.T) {
	s := openMemory(t, Config{Retention: 90 * time.Minute})
	s.now = func() time.Time { return base.Add(2 * time.Hour) }

	merged, err := s.Merge(context.Background(), telemetry.Snapshot{SeriesMap: map[string][]telemetry.Point{
		"wealth": points(1, 2, 3),
	}})
	require.NoError(t, err)

	got := merged.Series("wealth")
	require.Len(t, got, 2)
	require.Equal(t, 2.0, got[0].Value)
}

func TestMerge_Span(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	s := openMemory(t, Config{Tracer: tp.Tracer("test")})

	_, err := s.Merge(context.Background(), telemetry.Snapshot{SeriesMap: map[string][]telemetry.Point{
		"wealth": points(1, 2),
	}})
	require.NoError(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, tracing.SpanHistoryMerge, spans[0].Name())
	var count int64
	for _, a := range spans[0].Attributes() {
		if string(a.Key) == tracing.AttrPointCount {
			count = a.Value.AsInt64()
		}
	}
	require.Equal(t, int64(2), count)
}

func TestClosedStore(t *testing.T) {
	s, err := Open(Config{})
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.Record(context.Background(), telemetry.Snapshot{})
	require.ErrorIs(t, err, ErrClosed)
	_, err = s.Merge(context.Background(), telemetry.Snapshot{})
	require.ErrorIs(t, err, ErrClosed)
}

func TestMerge_ConcurrentWithClose(t *testing.T) {
	s, err := Open(Config{})
	require.NoError(t, err)
	snap := telemetry.Snapshot{SeriesMap: map[string][]telemetry.Point{"wealth": points(1, 2)}}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Merge(context.Background(), snap)
			errs <- err
		}()
	}
	require.NoError(t, s.Close())
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			require.ErrorIs(t, err, ErrClosed)
		}
	}
}
