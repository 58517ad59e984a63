package nav

import (
	"errors"
	"fmt"
)

// ErrConfig marks every startup configuration error: malformed trees,
// duplicate registrations and leaves without a panel.
var ErrConfig = errors.New("navigation configuration error")

// ConfigError describes one configuration problem. Err optionally carries a
// more specific sentinel; errors.Is matches both ErrConfig and Err.
type ConfigError struct {
	Key    Key
	Label  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Key != "" && e.Label != "":
		return fmt.Sprintf("%s: %s (key %q, label %q)", ErrConfig, e.Reason, e.Key, e.Label)
	case e.Key != "":
		return fmt.Sprintf("%s: %s (key %q)", ErrConfig, e.Reason, e.Key)
	case e.Label != "":
		return fmt.Sprintf("%s: %s (label %q)", ErrConfig, e.Reason, e.Label)
	default:
		return fmt.Sprintf("%s: %s", ErrConfig, e.Reason)
	}
}

func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConfig}
	}
	return []error{ErrConfig, e.Err}
}
