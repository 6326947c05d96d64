package state

import (
	"github.com/atomicstack/tmux-popup-select/internal/logging"
	"github.com/atomicstack/tmux-popup-select/internal/option"
)

// Selection is the committed value of a field. Single mode holds at most one
// value; multi mode holds an ordered sequence.
type Selection struct {
	multi  bool
	values []option.Value
}

// NewSelection builds a selection from the host's initial value. A sequence
// longer than one in single mode is a configuration error: it is reported and
// kept as received.
func NewSelection(multi bool, initial []option.Value) Selection {
	if !multi && len(initial) > 1 {
		logging.Warn("single select received %d initial values; expected at most one", len(initial))
	}
	s := Selection{multi: multi}
	if len(initial) > 0 {
		s.values = append([]option.Value(nil), initial...)
	}
	return s
}

// Multi reports whether the selection is a sequence.
func (s Selection) Multi() bool {
	return s.multi
}

// Values returns the committed values in order.
func (s Selection) Values() []option.Value {
	if len(s.values) == 0 {
		return nil
	}
	return append([]option.Value(nil), s.values...)
}

// Value returns the single committed value.
func (s Selection) Value() (option.Value, bool) {
	if len(s.values) == 0 {
		return "", false
	}
	return s.values[0], true
}

// Len returns the number of committed values.
func (s Selection) Len() int {
	return len(s.values)
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return len(s.values) == 0
}

// Contains reports whether value is committed.
func (s Selection) Contains(value option.Value) bool {
	for _, v := range s.values {
		if v == value {
			return true
		}
	}
	return false
}

func (s *Selection) add(value option.Value) {
	if s.multi {
		s.values = append(s.values, value)
		return
	}
	s.values = []option.Value{value}
}

func (s *Selection) remove(value option.Value) bool {
	for i, v := range s.values {
		if v == value {
			s.values = append(s.values[:i:i], s.values[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Selection) dropLast() bool {
	if len(s.values) == 0 {
		return false
	}
	if !s.multi {
		s.values = nil
		return true
	}
	s.values = s.values[:len(s.values)-1]
	return true
}

func (s *Selection) reset() {
	s.values = nil
}
