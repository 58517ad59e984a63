package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/flightdeck/internal/pubsub"
	"github.com/zjrosen/flightdeck/internal/tracing"
)

func writeSnapshot(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func nextEvent(t *testing.T, ch <-chan pubsub.Event[Snapshot]) pubsub.Event[Snapshot] {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "subscription closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for feed event")
		return pubsub.Event[Snapshot]{}
	}
}

func TestFeed_EmptyPath(t *testing.T) {
	feed := NewFeed(FeedConfig{})
	t.Cleanup(func() { _ = feed.Close() })

	require.NoError(t, feed.Start(context.Background()))
	require.True(t, feed.Current().IsEmpty())
	require.NoError(t, feed.LastError())
}

func TestFeed_LoadPublishesLoadedThenReloaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	writeSnapshot(t, path, sampleSnapshot)

	feed := NewFeed(FeedConfig{Path: path})
	t.Cleanup(func() { _ = feed.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ch := feed.Broker().Subscribe(ctx)

	require.NoError(t, feed.Load(ctx))
	ev := nextEvent(t, ch)
	require.Equal(t, pubsub.LoadedEvent, ev.Type)
	rec, ok := LookupStatus(ev.Payload, StatusGame)
	require.True(t, ok)
	require.Equal(t, "Docked", rec.Value)

	writeSnapshot(t, path, "status:\n  - key: game_status\n    value: In Supercruise\n")
	require.NoError(t, feed.Reload(ctx))
	ev = nextEvent(t, ch)
	require.Equal(t, pubsub.ReloadedEvent, ev.Type)

	rec, _ = LookupStatus(feed.Current(), StatusGame)
	require.Equal(t, "In Supercruise", rec.Value)
}

func TestFeed_FailedReloadKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	writeSnapshot(t, path, sampleSnapshot)

	feed := NewFeed(FeedConfig{Path: path})
	t.Cleanup(func() { _ = feed.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, feed.Load(ctx))

	ch := feed.Broker().Subscribe(ctx)
	writeSnapshot(t, path, "version: [not a number\n")
	err := feed.Reload(ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrSnapshot)
	require.ErrorIs(t, feed.LastError(), ErrSnapshot)

	ev := nextEvent(t, ch)
	require.Equal(t, pubsub.FailedEvent, ev.Type)
	rec, ok := LookupStatus(ev.Payload, StatusGame)
	require.True(t, ok)
	require.Equal(t, "Docked", rec.Value)

	rec, _ = LookupStatus(feed.Current(), StatusGame)
	require.Equal(t, "Docked", rec.Value)
}

func TestFeed_WatchReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	writeSnapshot(t, path, sampleSnapshot)

	feed := NewFeed(FeedConfig{Path: path, Watch: true, Debounce: 20 * time.Millisecond})
	t.Cleanup(func() { _ = feed.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	ch := feed.Broker().Subscribe(ctx)

	require.NoError(t, feed.Start(ctx))
	require.Equal(t, pubsub.LoadedEvent, nextEvent(t, ch).Type)

	writeSnapshot(t, path, "status:\n  - key: location\n    value: Colonia\n")

	require.Eventually(t, func() bool {
		rec, ok := LookupStatus(feed.Current(), StatusLocation)
		return ok && rec.Value == "Colonia"
	}, 3*time.Second, 20*time.Millisecond)
}

func TestFeed_CloseClosesSubscriptions(t *testing.T) {
	feed := NewFeed(FeedConfig{})
	ch := feed.Broker().Subscribe(context.Background())
	require.NoError(t, feed.Close())

	_, ok := <-ch
	require.False(t, ok)
}

func TestFeed_LoadSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	writeSnapshot(t, path, sampleSnapshot)

	feed := NewFeed(FeedConfig{Path: path, Tracer: tp.Tracer("test")})
	t.Cleanup(func() { _ = feed.Close() })
	require.NoError(t, feed.Load(context.Background()))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, tracing.SpanFeedLoad, spans[0].Name())

	var gotPath string
	for _, kv := range spans[0].Attributes() {
		if string(kv.Key) == tracing.AttrSnapshotPath {
			gotPath = kv.Value.AsString()
		}
	}
	require.Equal(t, path, gotPath)
}

type fakeHistory struct {
	calls int
	err   error
}

func (h *fakeHistory) Merge(_ context.Context, s Snapshot) (Snapshot, error) {
	h.calls++
	if h.err != nil {
		return Snapshot{}, h.err
	}
	s.SeriesMap = map[string][]Point{"wealth": {{Time: time.Unix(0, 0).UTC(), Value: 1}}}
	return s, nil
}

func TestFeed_HistoryMergesSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	writeSnapshot(t, path, sampleSnapshot)

	hist := &fakeHistory{}
	feed := NewFeed(FeedConfig{Path: path, History: hist})
	t.Cleanup(func() { _ = feed.Close() })

	require.NoError(t, feed.Load(context.Background()))
	require.Equal(t, 1, hist.calls)
	require.Len(t, feed.Current().Series("wealth"), 1)

	hist.err = os.ErrPermission
	require.NoError(t, feed.Load(context.Background()), "history failure is not a load failure")
	require.Equal(t, 2, hist.calls)
	rec, ok := LookupStatus(feed.Current(), StatusGame)
	require.True(t, ok)
	require.Equal(t, "Docked", rec.Value)
}

// blockingHistory parks Merge until release is closed.
type blockingHistory struct {
	entered chan struct{}
	release chan struct{}
	calls   int
}

func (h *blockingHistory) Merge(_ context.Context, s Snapshot) (Snapshot, error) {
	h.calls++
	close(h.entered)
	<-h.release
	return s, nil
}

func TestFeed_CloseWaitsForLoadInFlight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	writeSnapshot(t, path, sampleSnapshot)

	hist := &blockingHistory{entered: make(chan struct{}), release: make(chan struct{})}
	feed := NewFeed(FeedConfig{Path: path, History: hist})

	loadDone := make(chan error, 1)
	go func() { loadDone <- feed.Reload(context.Background()) }()
	<-hist.entered

	closed := make(chan struct{})
	go func() {
		_ = feed.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned while a load was still merging history")
	case <-time.After(50 * time.Millisecond):
	}

	close(hist.release)
	require.NoError(t, <-loadDone)
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close never returned")
	}

	require.ErrorIs(t, feed.Reload(context.Background()), ErrFeedClosed)
	require.Equal(t, 1, hist.calls)
	require.NoError(t, feed.Close(), "closing twice is harmless")
}
