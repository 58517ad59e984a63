package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatLeaves formats the navigation keys as JSON
func (f *Formatter) FormatLeaves(leaves []LeafDTO) error {
	return f.encode(leaves)
}

// FormatValidation formats a validation result as JSON
func (f *Formatter) FormatValidation(result ValidationDTO) error {
	return f.encode(result)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
