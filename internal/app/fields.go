package app

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/atomicstack/tmux-popup-select/internal/backend"
	"github.com/atomicstack/tmux-popup-select/internal/logging"
	"github.com/atomicstack/tmux-popup-select/internal/option"
	"github.com/atomicstack/tmux-popup-select/internal/source"
	"github.com/atomicstack/tmux-popup-select/internal/ui"
	"github.com/atomicstack/tmux-popup-select/internal/ui/state"
)

// Match modes accepted by FieldConfig.Match.
const (
	MatchSubstring = "substring"
	MatchPrefix    = "prefix"
	MatchFuzzy     = "fuzzy"
)

// MatchModes lists the accepted match modes.
var MatchModes = []string{MatchSubstring, MatchPrefix, MatchFuzzy}

// MatchFunc resolves a match mode; empty selects the substring matcher.
func MatchFunc(mode string) (state.MatchFunc, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", MatchSubstring:
		return state.SubstringMatch, nil
	case MatchPrefix:
		return state.PrefixMatch, nil
	case MatchFuzzy:
		return state.FuzzyMatch, nil
	}
	return nil, fmt.Errorf("unknown match mode %q (want one of %s)", mode, strings.Join(MatchModes, ", "))
}

type labelData struct {
	Value    string
	Label    string
	Group    string
	Disabled bool
}

// ParseLabelFormat compiles a text/template rendering an option label, for
// instance `{{.Label}} ({{.Group}})`. An empty format yields a nil func so
// the field keeps its default label.
func ParseLabelFormat(format string) (state.LabelFunc, error) {
	if format == "" {
		return nil, nil
	}
	tmpl, err := template.New("label").Parse(format)
	if err != nil {
		return nil, fmt.Errorf("parse label format %q: %w", format, err)
	}
	return func(opt option.Option) string {
		var b strings.Builder
		data := labelData{
			Value:    string(opt.Value),
			Label:    opt.DisplayLabel(),
			Group:    opt.Group,
			Disabled: opt.Disabled,
		}
		if err := tmpl.Execute(&b, data); err != nil {
			logging.Error(fmt.Errorf("render label %q: %w", opt.Value, err))
			return opt.DisplayLabel()
		}
		return b.String()
	}, nil
}

// BuildFields turns field configuration into UI field specs and, for watched
// sources, the backend targets that refresh them.
func BuildFields(cfg Config, opts source.Options) ([]ui.FieldSpec, []backend.Target, error) {
	specs := make([]ui.FieldSpec, 0, len(cfg.Fields))
	var targets []backend.Target
	for _, fc := range cfg.Fields {
		spec, err := buildField(fc, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("field %s: %w", fc.Name, err)
		}
		specs = append(specs, spec)
		if cfg.Watch && spec.Loader != nil && spec.Loader.Spec().Watch() != source.WatchNone {
			targets = append(targets, backend.Target{Field: fc.Name, Loader: spec.Loader})
		}
	}
	return specs, targets, nil
}

func buildField(fc FieldConfig, opts source.Options) (ui.FieldSpec, error) {
	srcSpec, err := source.ParseSpec(fc.Source)
	if err != nil {
		return ui.FieldSpec{}, err
	}
	match, err := MatchFunc(fc.Match)
	if err != nil {
		return ui.FieldSpec{}, err
	}
	label, err := ParseLabelFormat(fc.LabelFormat)
	if err != nil {
		return ui.FieldSpec{}, err
	}
	tag, err := ParseLabelFormat(fc.TagFormat)
	if err != nil {
		return ui.FieldSpec{}, err
	}
	opts.Static = fc.Options
	initial := make([]option.Value, 0, len(fc.Values))
	for _, v := range fc.Values {
		initial = append(initial, option.Value(v))
	}
	return ui.FieldSpec{
		Name:  fc.Name,
		Title: fc.Title,
		Config: state.Config{
			Placeholder:    fc.Placeholder,
			Clearable:      fc.Clearable,
			Disabled:       fc.Disabled,
			Grouped:        fc.Grouped,
			Searchable:     fc.Searchable,
			Multi:          fc.Multi,
			AutofocusFirst: fc.Autofocus,
			CloseOnSelect:  fc.CloseOnSelect,
			Match:          match,
			Label:          label,
			TagLabel:       tag,
			AppendToBody:   fc.AppendToBody,
		},
		Initial: initial,
		Loader:  source.New(srcSpec, opts),
	}, nil
}
