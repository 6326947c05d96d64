// Package option holds the candidate options offered by a select field and
// the parsers that turn option files into them.
package option

// Value identifies an option within one Store. Values are expected to be
// unique; when they are not, the first occurrence wins every lookup.
type Value string

// Option represents a selectable candidate.
type Option struct {
	Value    Value  `json:"value" toml:"value"`
	Label    string `json:"label" toml:"label"`
	Group    string `json:"group,omitempty" toml:"group"`
	Disabled bool   `json:"disabled,omitempty" toml:"disabled"`
}

// DisplayLabel returns the label, falling back to the value.
func (o Option) DisplayLabel() string {
	if o.Label != "" {
		return o.Label
	}
	return string(o.Value)
}

// Clone produces a shallow copy of the provided options.
func Clone(options []Option) []Option {
	if options == nil {
		return nil
	}
	dup := make([]Option, len(options))
	copy(dup, options)
	return dup
}

// Values extracts the values of the given options in order.
func Values(options []Option) []Value {
	out := make([]Value, 0, len(options))
	for _, opt := range options {
		out = append(out, opt.Value)
	}
	return out
}

// IndexOf returns the index of the first option carrying value, or -1.
func IndexOf(options []Option, value Value) int {
	for i, opt := range options {
		if opt.Value == value {
			return i
		}
	}
	return -1
}
