package telemetry

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/flightdeck/internal/log"
	"github.com/zjrosen/flightdeck/internal/pubsub"
	"github.com/zjrosen/flightdeck/internal/tracing"
	"github.com/zjrosen/flightdeck/internal/watcher"
)

// SnapshotMsg carries a freshly loaded snapshot into the update loop.
type SnapshotMsg struct {
	Snapshot Snapshot
}

// FeedConfig configures a file-backed Feed.
type FeedConfig struct {
	// Path of the YAML snapshot. Empty means the feed stays empty.
	Path     string
	Watch    bool
	Debounce time.Duration
	Tracer   trace.Tracer
	// History, when set, records every loaded snapshot and fills its series
	// from everything recorded so far.
	History History
}

// History merges a freshly read snapshot with previously recorded samples.
type History interface {
	Merge(ctx context.Context, s Snapshot) (Snapshot, error)
}

// Feed owns the current snapshot and republishes it when the file changes.
type Feed struct {
	cfg    FeedConfig
	tracer trace.Tracer
	broker *pubsub.Broker[Snapshot]

	mu      sync.RWMutex
	current Snapshot
	loaded  bool
	lastErr error

	watcher *watcher.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// loads counts Load calls in flight; closed stops new ones.
	loads  sync.WaitGroup
	closed bool
}

// NewFeed creates a feed holding an empty snapshot.
func NewFeed(cfg FeedConfig) *Feed {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = tracing.Noop()
	}
	return &Feed{
		cfg:     cfg,
		tracer:  tracer,
		broker:  pubsub.NewBroker[Snapshot](),
		current: EmptySnapshot(),
	}
}

// Broker exposes snapshot events for listeners.
func (f *Feed) Broker() *pubsub.Broker[Snapshot] { return f.broker }

// Path returns the snapshot file path.
func (f *Feed) Path() string { return f.cfg.Path }

// Current returns the last successfully loaded snapshot.
func (f *Feed) Current() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// LastError returns the error from the most recent load, if it failed.
func (f *Feed) LastError() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastErr
}

// Load reads the snapshot file. A missing path leaves the feed empty
// without error. On failure the previous snapshot is kept and a
// FailedEvent is published. After Close it returns ErrFeedClosed.
func (f *Feed) Load(ctx context.Context) error {
	if f.cfg.Path == "" {
		return nil
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrFeedClosed
	}
	f.loads.Add(1)
	f.mu.Unlock()
	defer f.loads.Done()

	ctx, span := f.tracer.Start(ctx, tracing.SpanFeedLoad,
		trace.WithAttributes(attribute.String(tracing.AttrSnapshotPath, f.cfg.Path)))
	defer span.End()

	snap, err := ReadSnapshot(f.cfg.Path)
	if err == nil && f.cfg.History != nil {
		merged, herr := f.cfg.History.Merge(ctx, snap)
		if herr != nil {
			log.ErrorErr(log.CatFeed, "Snapshot history unavailable, showing file values only", herr)
		} else {
			snap = merged
		}
	}

	f.mu.Lock()
	if err != nil {
		f.lastErr = err
		prev := f.current
		f.mu.Unlock()

		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		log.ErrorErr(log.CatFeed, "Snapshot load failed, keeping previous values", err, "path", f.cfg.Path)
		f.broker.Publish(pubsub.FailedEvent, prev)
		return err
	}
	first := !f.loaded
	f.current = snap
	f.loaded = true
	f.lastErr = nil
	f.mu.Unlock()

	span.SetStatus(codes.Ok, "")
	log.Info(log.CatFeed, "Snapshot loaded", "path", f.cfg.Path, "first", first)
	if first {
		f.broker.Publish(pubsub.LoadedEvent, snap)
	} else {
		f.broker.Publish(pubsub.ReloadedEvent, snap)
	}
	return nil
}

// Start loads the snapshot once and, when watching is enabled, reloads it
// after every settled change to the file. The load error, if any, is
// returned but watching still begins.
func (f *Feed) Start(ctx context.Context) error {
	loadErr := f.Load(ctx)
	if !f.cfg.Watch || f.cfg.Path == "" {
		return loadErr
	}

	cfg := watcher.DefaultConfig(f.cfg.Path)
	if f.cfg.Debounce > 0 {
		cfg.Debounce = f.cfg.Debounce
	}
	w, err := watcher.New(cfg)
	if err != nil {
		return fmt.Errorf("starting snapshot watcher: %w", err)
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return fmt.Errorf("starting snapshot watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	f.watcher = w
	f.cancel = cancel
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				_ = f.Load(ctx)
			}
		}
	}()
	return loadErr
}

// Reload re-reads the snapshot on demand.
func (f *Feed) Reload(ctx context.Context) error {
	return f.Load(ctx)
}

// Close stops watching, waits for loads in flight and closes the broker.
// Once Close returns the feed no longer touches its History.
func (f *Feed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	f.mu.Unlock()

	var err error
	if f.cancel != nil {
		f.cancel()
	}
	if f.watcher != nil {
		err = f.watcher.Stop()
	}
	f.wg.Wait()
	f.loads.Wait()
	f.broker.Close()
	return err
}

// ReadSnapshot parses the YAML snapshot at path.
func ReadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, &LoadError{Path: path, Err: err}
	}
	return ParseSnapshot(path, data)
}

// ParseSnapshot decodes snapshot YAML. Unknown fields are rejected so a
// typo in the collector output surfaces instead of rendering placeholders.
func ParseSnapshot(path string, data []byte) (Snapshot, error) {
	var snap Snapshot
	if len(bytes.TrimSpace(data)) == 0 {
		return EmptySnapshot(), nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&snap); err != nil {
		return Snapshot{}, &LoadError{Path: path, Err: err}
	}
	if err := snap.validate(); err != nil {
		return Snapshot{}, &LoadError{Path: path, Err: err}
	}
	return snap, nil
}

// MarshalSnapshot encodes a snapshot as YAML.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
