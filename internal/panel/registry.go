package panel

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/zjrosen/flightdeck/internal/nav"
)

var (
	// ErrDuplicateKey is returned when a key is registered twice.
	ErrDuplicateKey = errors.New("panel already registered")
	// ErrPanelNotFound is returned by Resolve for unregistered keys.
	ErrPanelNotFound = errors.New("panel not found")
)

// maxSuggestionDistance bounds "did you mean" suggestions.
const maxSuggestionDistance = 2

// Registry maps navigation keys to panels, keeping registration order.
type Registry struct {
	panels map[nav.Key]Panel
	order  []nav.Key
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{panels: make(map[nav.Key]Panel)}
}

// Register adds p under key. Registering an existing key fails and keeps
// the first panel.
func (r *Registry) Register(key nav.Key, p Panel) error {
	if key == "" {
		return &nav.ConfigError{Reason: "cannot register a panel without a key"}
	}
	if p == nil {
		return &nav.ConfigError{Key: key, Reason: "cannot register a nil panel"}
	}
	if _, exists := r.panels[key]; exists {
		return &nav.ConfigError{Key: key, Reason: "panel registered twice", Err: ErrDuplicateKey}
	}
	r.panels[key] = p
	r.order = append(r.order, key)
	return nil
}

// Resolve returns the panel registered for key.
func (r *Registry) Resolve(key nav.Key) (Panel, error) {
	p, ok := r.panels[key]
	if !ok {
		return nil, fmt.Errorf("resolve %q: %w", key, ErrPanelNotFound)
	}
	return p, nil
}

// Keys returns registered keys in registration order.
func (r *Registry) Keys() []nav.Key {
	return slices.Clone(r.order)
}

// Len returns the number of registered panels.
func (r *Registry) Len() int {
	return len(r.order)
}

// Each calls fn for every panel in registration order.
func (r *Registry) Each(fn func(nav.Key, Panel)) {
	for _, k := range r.order {
		fn(k, r.panels[k])
	}
}

// Validate checks that every key has a registered panel. The error lists
// every missing key, each with the closest registered key when one is near.
func (r *Registry) Validate(keys []nav.Key) error {
	var missing []string
	for _, k := range keys {
		if _, ok := r.panels[k]; ok {
			continue
		}
		entry := fmt.Sprintf("%q", k)
		if s, ok := r.Suggest(k); ok {
			entry += fmt.Sprintf(" (did you mean %q?)", s)
		}
		missing = append(missing, entry)
	}
	if len(missing) == 0 {
		return nil
	}

	cfgErr := &nav.ConfigError{
		Reason: "navigation leaves without a panel: " + strings.Join(missing, ", "),
		Err:    ErrPanelNotFound,
	}
	if len(missing) == 1 {
		cfgErr.Key = keys[slices.IndexFunc(keys, func(k nav.Key) bool { _, ok := r.panels[k]; return !ok })]
	}
	return cfgErr
}

// Suggest returns the registered key closest to key by edit distance, if
// one is within maxSuggestionDistance.
func (r *Registry) Suggest(key nav.Key) (nav.Key, bool) {
	best := nav.Key("")
	bestDist := maxSuggestionDistance + 1
	for _, k := range r.order {
		if d := levenshtein.ComputeDistance(string(key), string(k)); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best, best != ""
}
