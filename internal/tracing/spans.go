package tracing

// Span names.
const (
	SpanShellInitialize = "shell.initialize"
	SpanShellSelect     = "shell.select"
	SpanFeedLoad        = "feed.load"
	SpanHistoryMerge    = "history.merge"
)

// Span attribute keys.
const (
	AttrSessionID    = "session.id"
	AttrShellID      = "shell.id"
	AttrNavKey       = "nav.key"
	AttrNavPrevKey   = "nav.previous_key"
	AttrPanelCount   = "panel.count"
	AttrSwitchCount  = "shell.switches"
	AttrSnapshotPath = "feed.snapshot_path"
	AttrPointCount   = "history.points"
)

// Event names.
const (
	EventPanelMounted = "panel.mounted"
	EventPanelShown   = "panel.shown"
	EventPanelHidden  = "panel.hidden"
)
