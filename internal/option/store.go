package option

// Store holds the immutable option list of one field together with the
// host-supplied loading flag.
type Store interface {
	Options() []Option
	SetOptions([]Option)
	Revision() int
	Loading() bool
	SetLoading(bool)
	Index(Value) int
	Lookup(Value) (Option, bool)
}

type store struct {
	options  []Option
	index    map[Value]int
	revision int
	loading  bool
}

// NewStore creates a store seeded with the given options.
func NewStore(options []Option) Store {
	s := &store{}
	s.SetOptions(options)
	return s
}

func (s *store) Options() []Option {
	return Clone(s.options)
}

// SetOptions replaces the option list wholesale.
func (s *store) SetOptions(options []Option) {
	s.options = Clone(options)
	s.index = make(map[Value]int, len(s.options))
	for i, opt := range s.options {
		if _, dup := s.index[opt.Value]; dup {
			continue
		}
		s.index[opt.Value] = i
	}
	s.revision++
}

func (s *store) Revision() int {
	return s.revision
}

func (s *store) Loading() bool {
	return s.loading
}

func (s *store) SetLoading(loading bool) {
	s.loading = loading
}

func (s *store) Index(value Value) int {
	if idx, ok := s.index[value]; ok {
		return idx
	}
	return -1
}

func (s *store) Lookup(value Value) (Option, bool) {
	idx := s.Index(value)
	if idx < 0 {
		return Option{}, false
	}
	return s.options[idx], true
}
