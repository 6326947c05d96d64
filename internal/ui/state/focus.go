package state

import "github.com/atomicstack/tmux-popup-select/internal/option"

// NoFocus marks the absence of a keyboard-highlighted option.
const NoFocus = -1

// NextFocus returns the first enabled option after current, wrapping to the
// first enabled option of the list.
func NextFocus(flat []option.Option, current int) int {
	start := current + 1
	if start < 0 {
		start = 0
	}
	for i := start; i < len(flat); i++ {
		if !flat[i].Disabled {
			return i
		}
	}
	return FirstEnabled(flat)
}

// PrevFocus returns the first enabled option before current, wrapping to the
// last enabled option of the list.
func PrevFocus(flat []option.Option, current int) int {
	start := current - 1
	if start >= len(flat) {
		start = len(flat) - 1
	}
	for i := start; i >= 0; i-- {
		if !flat[i].Disabled {
			return i
		}
	}
	return LastEnabled(flat)
}

// ResolveFocus validates current against a recomputed list. Out of range
// positions are reset, never clamped onto a different option.
func ResolveFocus(flat []option.Option, current int) int {
	if current < 0 || current >= len(flat) {
		return NoFocus
	}
	return current
}

// FirstEnabled returns the index of the first enabled option or NoFocus.
func FirstEnabled(opts []option.Option) int {
	for i, opt := range opts {
		if !opt.Disabled {
			return i
		}
	}
	return NoFocus
}

// LastEnabled returns the index of the last enabled option or NoFocus.
func LastEnabled(opts []option.Option) int {
	for i := len(opts) - 1; i >= 0; i-- {
		if !opts[i].Disabled {
			return i
		}
	}
	return NoFocus
}

// PageDownFocus moves focus forward by up to page options, landing on the
// nearest enabled option without wrapping.
func PageDownFocus(flat []option.Option, current, page int) int {
	if len(flat) == 0 {
		return NoFocus
	}
	target := current + pageSize(len(flat), page)
	if current < 0 {
		target = pageSize(len(flat), page) - 1
	}
	if target >= len(flat) {
		target = len(flat) - 1
	}
	for i := target; i >= 0 && i > current; i-- {
		if !flat[i].Disabled {
			return i
		}
	}
	return ResolveFocus(flat, current)
}

// PageUpFocus moves focus backward by up to page options without wrapping.
func PageUpFocus(flat []option.Option, current, page int) int {
	if len(flat) == 0 {
		return NoFocus
	}
	if current < 0 {
		return FirstEnabled(flat)
	}
	target := current - pageSize(len(flat), page)
	if target < 0 {
		target = 0
	}
	for i := target; i < current; i++ {
		if !flat[i].Disabled {
			return i
		}
	}
	return ResolveFocus(flat, current)
}

func pageSize(total, maxVisible int) int {
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// Viewport tracks the first rendered row of a scrolling list.
type Viewport struct {
	Offset int
}

// Follow adjusts the offset so row stays within a window of maxVisible rows
// over total rows.
func (v *Viewport) Follow(row, total, maxVisible int) {
	if total == 0 || maxVisible <= 0 {
		v.Offset = 0
		return
	}
	maxOffset := total - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.Offset > maxOffset {
		v.Offset = maxOffset
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
	if row < 0 {
		return
	}
	if row >= total {
		row = total - 1
	}
	if row < v.Offset {
		v.Offset = row
	}
	upper := v.Offset + maxVisible - 1
	if row > upper {
		v.Offset = row - maxVisible + 1
		if v.Offset < 0 {
			v.Offset = 0
		}
		if v.Offset > maxOffset {
			v.Offset = maxOffset
		}
	}
}
