package panes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

// ScrollableConfig holds the configuration for rendering a scrollable pane.
type ScrollableConfig struct {
	// Viewport must be a pointer owned by the caller so the scroll offset
	// survives across renders and across hide/show of the owning panel.
	Viewport *viewport.Model

	LeftTitle  string
	RightTitle string
	Focused    bool
	Theme      styles.Theme
}

// ScrollablePane sizes the viewport to the pane interior, refreshes its
// content and renders it inside a BorderedPane with a scroll indicator.
//
// The y offset is kept as long as it is still in range for the new content;
// the viewport clamps it otherwise.
func ScrollablePane(width, height int, cfg ScrollableConfig, contentFn func(wrapWidth int) string) string {
	vpWidth := max(width-2, 1)
	vpHeight := max(height-2, 1)

	offset := cfg.Viewport.YOffset
	cfg.Viewport.Width = vpWidth
	cfg.Viewport.Height = vpHeight
	cfg.Viewport.SetContent(contentFn(vpWidth))
	cfg.Viewport.SetYOffset(offset)

	return BorderedPane(BorderConfig{
		Content:     cfg.Viewport.View(),
		Width:       width,
		Height:      height,
		TopLeft:     cfg.LeftTitle,
		TopRight:    cfg.RightTitle,
		BottomRight: BuildScrollIndicator(*cfg.Viewport),
		Focused:     cfg.Focused,
		Theme:       cfg.Theme,
	})
}

// BuildScrollIndicator returns "↓XX%" while more content is below the fold,
// and an empty string when everything fits or the view is at the bottom.
func BuildScrollIndicator(vp viewport.Model) string {
	if vp.TotalLineCount() <= vp.Height || vp.AtBottom() {
		return ""
	}
	return fmt.Sprintf("↓%.0f%%", vp.ScrollPercent()*100)
}
