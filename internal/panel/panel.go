// Package panel defines the ContentPanel capability and the registry that
// maps navigation keys to panels.
package panel

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Panel is a self-contained content surface. Panels are built once, mounted
// once and then only shown or hidden; they keep their internal state (scroll
// position, nested selection) across visibility changes.
type Panel interface {
	// Mount builds the panel's widgets. A second call is a no-op.
	Mount()
	Mounted() bool

	SetVisible(visible bool)
	Visible() bool

	SetSize(width, height int)
	Update(msg tea.Msg) tea.Cmd
	View() string
}

// Base implements the mount and visibility bookkeeping shared by every panel.
// Panels with a build step define their own Mount and guard it with
// MarkMounted.
type Base struct {
	mounted bool
	mounts  int
	visible bool

	Width  int
	Height int
}

// MarkMounted marks the panel mounted. It returns false when it already was.
func (b *Base) MarkMounted() bool {
	if b.mounted {
		return false
	}
	b.mounted = true
	b.mounts++
	return true
}

func (b *Base) Mount() { b.MarkMounted() }

func (b *Base) Mounted() bool { return b.mounted }

// Mounts counts successful mounts; it never exceeds one.
func (b *Base) Mounts() int { return b.mounts }

func (b *Base) SetVisible(visible bool) { b.visible = visible }

func (b *Base) Visible() bool { return b.visible }

func (b *Base) SetSize(width, height int) {
	b.Width = width
	b.Height = height
}
