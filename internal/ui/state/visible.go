package state

import (
	"strings"

	"github.com/atomicstack/tmux-popup-select/internal/option"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// DefaultGroup names the implicit group used when grouping is inactive.
const DefaultGroup = "default"

// MatchFunc reports whether opt, rendered as label, matches the search text.
type MatchFunc func(opt option.Option, label, search string) bool

// LabelFunc renders an option for display.
type LabelFunc func(option.Option) string

// SubstringMatch is the default case-insensitive substring predicate.
func SubstringMatch(_ option.Option, label, search string) bool {
	return strings.Contains(strings.ToLower(label), strings.ToLower(search))
}

// PrefixMatch matches labels starting with the search text, ignoring case.
func PrefixMatch(_ option.Option, label, search string) bool {
	return strings.HasPrefix(strings.ToLower(label), strings.ToLower(search))
}

// FuzzyMatch matches when the search runes appear in order within the label.
func FuzzyMatch(_ option.Option, label, search string) bool {
	return fuzzy.MatchNormalizedFold(search, label)
}

// DefaultLabel renders an option by its label.
func DefaultLabel(opt option.Option) string {
	return opt.DisplayLabel()
}

// Group is one titled run of visible options.
type Group struct {
	Name    string
	Options []option.Option
}

// Visible is the derived option view: grouped for rendering and flattened for
// index arithmetic. Both representations describe the same options.
type Visible struct {
	Groups  []Group
	Flat    []option.Option
	Grouped bool
	index   map[option.Value]int
	offsets []int
}

// Len returns the number of visible options.
func (v Visible) Len() int {
	return len(v.Flat)
}

// At returns the option at the flat index.
func (v Visible) At(idx int) (option.Option, bool) {
	if idx < 0 || idx >= len(v.Flat) {
		return option.Option{}, false
	}
	return v.Flat[idx], true
}

// IndexOf returns the flat index of the first visible option carrying value.
func (v Visible) IndexOf(value option.Value) int {
	if idx, ok := v.index[value]; ok {
		return idx
	}
	return -1
}

// GroupOffset returns the flat index of the first option of group g.
func (v Visible) GroupOffset(g int) int {
	if g < 0 || g >= len(v.offsets) {
		return -1
	}
	return v.offsets[g]
}

// VisibleInput bundles everything the visible set depends on.
type VisibleInput struct {
	Options  []option.Option
	Search   string
	Selected []option.Value
	Multi    bool
	Grouped  bool
	Match    MatchFunc
	Label    LabelFunc
	TagLabel LabelFunc
}

// ComputeVisible derives the visible option set. It has no side effects.
func ComputeVisible(in VisibleInput) Visible {
	match := in.Match
	if match == nil {
		match = SubstringMatch
	}
	label := in.Label
	if in.Multi && in.TagLabel != nil {
		label = in.TagLabel
	}
	if label == nil {
		label = DefaultLabel
	}
	var excluded map[option.Value]struct{}
	if in.Multi && len(in.Selected) > 0 {
		excluded = make(map[option.Value]struct{}, len(in.Selected))
		for _, v := range in.Selected {
			excluded[v] = struct{}{}
		}
	}

	filtered := make([]option.Option, 0, len(in.Options))
	hasGroup := false
	for _, opt := range in.Options {
		if _, skip := excluded[opt.Value]; skip {
			continue
		}
		if in.Search != "" && !match(opt, label(opt), in.Search) {
			continue
		}
		if opt.Group != "" {
			hasGroup = true
		}
		filtered = append(filtered, opt)
	}

	var v Visible
	if !in.Grouped || !hasGroup {
		v.Groups = []Group{{Name: DefaultGroup, Options: filtered}}
	} else {
		v.Grouped = true
		order := make(map[string]int)
		for _, opt := range filtered {
			name := opt.Group
			if name == "" {
				name = DefaultGroup
			}
			g, ok := order[name]
			if !ok {
				g = len(v.Groups)
				order[name] = g
				v.Groups = append(v.Groups, Group{Name: name})
			}
			v.Groups[g].Options = append(v.Groups[g].Options, opt)
		}
	}

	v.Flat = make([]option.Option, 0, len(filtered))
	v.offsets = make([]int, len(v.Groups))
	for g, group := range v.Groups {
		v.offsets[g] = len(v.Flat)
		v.Flat = append(v.Flat, group.Options...)
	}
	v.index = make(map[option.Value]int, len(v.Flat))
	for i, opt := range v.Flat {
		if _, dup := v.index[opt.Value]; !dup {
			v.index[opt.Value] = i
		}
	}
	return v
}
