package presentation

import (
	"github.com/zjrosen/flightdeck/internal/nav"
	"github.com/zjrosen/flightdeck/internal/shell"
)

// LeafDTO is one selectable navigation entry. Tabs lists the nested shell's
// leaves when the panel behind the key has sub-tabs.
type LeafDTO struct {
	Category string    `json:"category,omitempty"`
	Label    string    `json:"label"`
	Key      string    `json:"key"`
	Tabs     []LeafDTO `json:"tabs,omitempty"`
}

// ValidationDTO is the result of checking a configuration headlessly.
type ValidationDTO struct {
	Config string `json:"config,omitempty"`
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
	Start  string `json:"start,omitempty"`
	Leaves int    `json:"leaves"`
	Panels int    `json:"panels"`
}

type tabbed interface {
	Tabs() *shell.Shell
}

// FromShell walks a shell's tree and returns one DTO per leaf, descending
// into panels that own a nested tab shell.
func FromShell(s *shell.Shell) []LeafDTO {
	if s == nil || s.Tree() == nil {
		return nil
	}
	var out []LeafDTO
	for _, cat := range s.Tree().Categories() {
		for _, leaf := range cat.Leaves {
			out = append(out, fromLeaf(s, cat.Label, leaf))
		}
	}
	return out
}

func fromLeaf(s *shell.Shell, category string, leaf nav.Leaf) LeafDTO {
	dto := LeafDTO{Category: category, Label: leaf.Label, Key: string(leaf.Key)}
	if s.Registry() == nil {
		return dto
	}
	p, err := s.Registry().Resolve(leaf.Key)
	if err != nil {
		return dto
	}
	if t, ok := p.(tabbed); ok {
		for _, tab := range FromShell(t.Tabs()) {
			tab.Category = ""
			dto.Tabs = append(dto.Tabs, tab)
		}
	}
	return dto
}

// CountLeaves counts leaves including nested tabs.
func CountLeaves(leaves []LeafDTO) int {
	n := 0
	for _, l := range leaves {
		n += 1 + CountLeaves(l.Tabs)
	}
	return n
}
