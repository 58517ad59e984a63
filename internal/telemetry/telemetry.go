// Package telemetry is the boundary through which game data enters the
// dashboard. Panels only read from the source interfaces here; nothing in
// this package parses game journals or talks to the network. Values come
// from a YAML snapshot produced by an external collector.
package telemetry

import (
	"slices"
	"strings"
	"time"
)

// SnapshotVersion is the snapshot file format understood by this build.
const SnapshotVersion = 1

// Well-known status keys.
const (
	StatusGame     = "game_status"
	StatusShip     = "current_ship"
	StatusLocation = "location"
	StatusActivity = "activity"
	StatusSession  = "session_time"
	StatusDatabase = "db_status"
	StatusModels   = "model_status"
	StatusSync     = "profile_sync"
)

// StatusRecord is one live status value.
type StatusRecord struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label,omitempty"`
	Value string `yaml:"value"`
	// Level colors the value: "ok", "warn" or "error". Empty means neutral.
	Level string `yaml:"level,omitempty"`
}

// Metric is one headline number for a metric card.
type Metric struct {
	Key      string `yaml:"key"`
	Value    string `yaml:"value"`
	Subtitle string `yaml:"subtitle,omitempty"`
}

// Forecast is a predicted value with an optional confidence band.
type Forecast struct {
	Key        string   `yaml:"key"`
	Label      string   `yaml:"label,omitempty"`
	Value      string   `yaml:"value"`
	Low        *float64 `yaml:"low,omitempty"`
	High       *float64 `yaml:"high,omitempty"`
	Confidence float64  `yaml:"confidence,omitempty"`
}

// Event is one line of the live event feed.
type Event struct {
	Time   time.Time `yaml:"time"`
	Kind   string    `yaml:"kind"`
	Detail string    `yaml:"detail,omitempty"`
}

// Point is one sample of a time series.
type Point struct {
	Time  time.Time `yaml:"time"`
	Value float64   `yaml:"value"`
}

// StatusSource supplies live status records.
type StatusSource interface {
	Status() []StatusRecord
}

// MetricsSource supplies metric cards grouped by panel ("analysis", "mining", ...).
type MetricsSource interface {
	Metrics(group string) []Metric
}

// ForecastSource supplies prediction results.
type ForecastSource interface {
	Forecasts() []Forecast
}

// Snapshot is an immutable set of externally supplied values. It satisfies
// every source interface.
type Snapshot struct {
	Version      int                 `yaml:"version"`
	CapturedAt   time.Time           `yaml:"captured_at,omitempty"`
	StatusList   []StatusRecord      `yaml:"status,omitempty"`
	MetricMap    map[string][]Metric `yaml:"metrics,omitempty"`
	ForecastList []Forecast          `yaml:"forecasts,omitempty"`
	EventList    []Event             `yaml:"events,omitempty"`
	SeriesMap    map[string][]Point  `yaml:"series,omitempty"`
}

var (
	_ StatusSource   = Snapshot{}
	_ MetricsSource  = Snapshot{}
	_ ForecastSource = Snapshot{}
)

// EmptySnapshot supplies nothing; every panel shows placeholders.
func EmptySnapshot() Snapshot {
	return Snapshot{Version: SnapshotVersion}
}

// IsEmpty reports whether the snapshot carries no values at all.
func (s Snapshot) IsEmpty() bool {
	return len(s.StatusList) == 0 && len(s.MetricMap) == 0 && len(s.ForecastList) == 0 &&
		len(s.EventList) == 0 && len(s.SeriesMap) == 0
}

func (s Snapshot) Status() []StatusRecord {
	return append([]StatusRecord(nil), s.StatusList...)
}

func (s Snapshot) Metrics(group string) []Metric {
	return append([]Metric(nil), s.MetricMap[group]...)
}

func (s Snapshot) Forecasts() []Forecast {
	return append([]Forecast(nil), s.ForecastList...)
}

// Events returns feed events newest first.
func (s Snapshot) Events() []Event {
	out := append([]Event(nil), s.EventList...)
	slices.SortStableFunc(out, func(a, b Event) int { return b.Time.Compare(a.Time) })
	return out
}

// Series returns the named time series in file order.
func (s Snapshot) Series(name string) []Point {
	return append([]Point(nil), s.SeriesMap[name]...)
}

// LookupStatus finds a status record by key.
func LookupStatus(src StatusSource, key string) (StatusRecord, bool) {
	if src == nil {
		return StatusRecord{}, false
	}
	for _, r := range src.Status() {
		if r.Key == key {
			return r, true
		}
	}
	return StatusRecord{}, false
}

// LookupMetric finds a metric in group by key.
func LookupMetric(src MetricsSource, group, key string) (Metric, bool) {
	if src == nil {
		return Metric{}, false
	}
	for _, m := range src.Metrics(group) {
		if m.Key == key {
			return m, true
		}
	}
	return Metric{}, false
}

// LookupForecast finds a forecast by key.
func LookupForecast(src ForecastSource, key string) (Forecast, bool) {
	if src == nil {
		return Forecast{}, false
	}
	for _, f := range src.Forecasts() {
		if f.Key == key {
			return f, true
		}
	}
	return Forecast{}, false
}

// validate normalizes keys and rejects snapshots from a newer format.
func (s *Snapshot) validate() error {
	if s.Version == 0 {
		s.Version = SnapshotVersion
	}
	if s.Version > SnapshotVersion {
		return &VersionError{Got: s.Version}
	}
	for i := range s.StatusList {
		s.StatusList[i].Key = strings.TrimSpace(s.StatusList[i].Key)
	}
	return nil
}
