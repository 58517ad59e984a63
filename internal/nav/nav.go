// Package nav implements the two-level navigation tree: named categories,
// each holding selectable leaves identified by a Key. Selecting a leaf emits
// a SelectedMsg that the owning shell turns into a panel switch.
package nav

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/flightdeck/internal/ui/styles"
)

// KeySpaceVersion versions the set of navigation keys. Bump it when a key is
// renamed or removed, since keys appear in config files and --start flags.
const KeySpaceVersion = 1

// Key identifies a leaf and the panel registered for it.
type Key string

// Leaf is a selectable navigation entry.
type Leaf struct {
	Label string
	Key   Key
}

// Category is a non-selectable group header.
type Category struct {
	Label  string
	Leaves []Leaf
}

// SelectedMsg is emitted when a leaf of the tree identified by Tree is selected.
type SelectedMsg struct {
	Tree string
	Key  Key
}

// Tree is an immutable two-level navigation structure plus its cursor and
// highlight state.
type Tree struct {
	id         string
	categories []Category
	leaves     []Leaf
	index      map[Key]int

	cursor  int
	current int
	theme   styles.Theme
}

// New validates categories and builds a tree. id scopes emitted messages and
// mouse zones, so nested trees must use distinct ids.
//
// A tree must have at least one category, every category a label and at
// least one leaf, and every leaf a label and a key unique across the tree.
func New(id string, categories ...Category) (*Tree, error) {
	if len(categories) == 0 {
		return nil, &ConfigError{Label: id, Reason: "navigation tree has no categories"}
	}

	t := &Tree{
		id:         id,
		categories: make([]Category, 0, len(categories)),
		index:      make(map[Key]int),
		current:    -1,
		theme:      styles.DefaultTheme(),
	}

	for _, cat := range categories {
		if strings.TrimSpace(cat.Label) == "" {
			return nil, &ConfigError{Reason: "category has no label"}
		}
		if len(cat.Leaves) == 0 {
			return nil, &ConfigError{Label: cat.Label, Reason: "category has no leaves"}
		}
		leaves := make([]Leaf, len(cat.Leaves))
		copy(leaves, cat.Leaves)
		for _, leaf := range leaves {
			if leaf.Key == "" {
				return nil, &ConfigError{Label: leaf.Label, Reason: "leaf has no key"}
			}
			if strings.TrimSpace(leaf.Label) == "" {
				return nil, &ConfigError{Key: leaf.Key, Reason: "leaf has no label"}
			}
			if _, dup := t.index[leaf.Key]; dup {
				return nil, &ConfigError{Key: leaf.Key, Label: leaf.Label, Reason: "duplicate navigation key"}
			}
			t.index[leaf.Key] = len(t.leaves)
			t.leaves = append(t.leaves, leaf)
		}
		t.categories = append(t.categories, Category{Label: cat.Label, Leaves: leaves})
	}

	return t, nil
}

// ID returns the tree id.
func (t *Tree) ID() string {
	return t.id
}

// SetTheme sets the colors used by the views.
func (t *Tree) SetTheme(theme styles.Theme) {
	t.theme = theme
}

// Categories returns a copy of the categories in display order.
func (t *Tree) Categories() []Category {
	out := make([]Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = Category{Label: c.Label, Leaves: append([]Leaf(nil), c.Leaves...)}
	}
	return out
}

// Leaves returns every leaf in display order.
func (t *Tree) Leaves() []Leaf {
	return append([]Leaf(nil), t.leaves...)
}

// Keys returns every leaf key in display order.
func (t *Tree) Keys() []Key {
	keys := make([]Key, len(t.leaves))
	for i, l := range t.leaves {
		keys[i] = l.Key
	}
	return keys
}

// Len returns the number of leaves.
func (t *Tree) Len() int {
	return len(t.leaves)
}

// Contains reports whether key names a leaf of this tree.
func (t *Tree) Contains(key Key) bool {
	_, ok := t.index[key]
	return ok
}

// DefaultKey is the first leaf of the first category.
func (t *Tree) DefaultKey() Key {
	return t.leaves[0].Key
}

// LeafByKey looks a leaf up by key.
func (t *Tree) LeafByKey(key Key) (Leaf, bool) {
	i, ok := t.index[key]
	if !ok {
		return Leaf{}, false
	}
	return t.leaves[i], true
}

// LeafAt returns the i-th leaf in display order.
func (t *Tree) LeafAt(i int) (Leaf, bool) {
	if i < 0 || i >= len(t.leaves) {
		return Leaf{}, false
	}
	return t.leaves[i], true
}

// CategoryOf returns the label of the category holding key.
func (t *Tree) CategoryOf(key Key) (string, bool) {
	for _, c := range t.categories {
		for _, l := range c.Leaves {
			if l.Key == key {
				return c.Label, true
			}
		}
	}
	return "", false
}

// Current returns the highlighted leaf key, or "" before the first selection.
func (t *Tree) Current() Key {
	if t.current < 0 || t.current >= len(t.leaves) {
		return ""
	}
	return t.leaves[t.current].Key
}

// CursorKey returns the key of the leaf under the cursor.
func (t *Tree) CursorKey() Key {
	return t.leaves[t.cursor].Key
}

// SelectLeaf highlights key and returns a command emitting SelectedMsg.
// Unknown keys are ignored and yield a nil command.
func (t *Tree) SelectLeaf(key Key) tea.Cmd {
	if !t.MarkCurrent(key) {
		return nil
	}
	id := t.id
	return func() tea.Msg {
		return SelectedMsg{Tree: id, Key: key}
	}
}

// MarkCurrent moves the highlight and cursor to key without emitting a
// message. It reports false for unknown keys.
func (t *Tree) MarkCurrent(key Key) bool {
	i, ok := t.index[key]
	if !ok {
		return false
	}
	t.current = i
	t.cursor = i
	return true
}

// MoveCursor moves the cursor by delta leaves, wrapping at both ends.
// Category rows are never under the cursor.
func (t *Tree) MoveCursor(delta int) {
	n := len(t.leaves)
	t.cursor = ((t.cursor+delta)%n + n) % n
}

// Confirm selects the leaf under the cursor.
func (t *Tree) Confirm() tea.Cmd {
	return t.SelectLeaf(t.CursorKey())
}

// Cycle selects the leaf delta positions after the current one, wrapping.
func (t *Tree) Cycle(delta int) tea.Cmd {
	n := len(t.leaves)
	base := t.current
	if base < 0 {
		base = 0
	}
	return t.SelectLeaf(t.leaves[((base+delta)%n+n)%n].Key)
}
