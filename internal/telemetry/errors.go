package telemetry

import (
	"errors"
	"fmt"
)

// ErrSnapshot marks every failure to load a snapshot.
var ErrSnapshot = errors.New("telemetry snapshot")

// ErrFeedClosed is returned by Load once the feed is closed.
var ErrFeedClosed = errors.New("telemetry feed closed")

// VersionError reports a snapshot written by a newer collector.
type VersionError struct {
	Got int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("snapshot version %d is newer than supported version %d", e.Got, SnapshotVersion)
}

func (e *VersionError) Unwrap() error { return ErrSnapshot }

// LoadError wraps a read or parse failure with the file it came from.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading snapshot %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{ErrSnapshot, e.Err} }
