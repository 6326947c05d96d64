package state

import "unicode"

// Menu owns the open flag and the search text of a field. Closing always
// clears the search.
type Menu struct {
	open         bool
	search       string
	searchCursor int
}

// IsOpen reports whether the menu is open.
func (m Menu) IsOpen() bool {
	return m.open
}

// Search returns the current search text.
func (m Menu) Search() string {
	return m.search
}

// SearchCursor returns the rune offset of the search caret.
func (m Menu) SearchCursor() int {
	runes := []rune(m.search)
	if m.searchCursor < 0 {
		return 0
	}
	if m.searchCursor > len(runes) {
		return len(runes)
	}
	return m.searchCursor
}

func (m *Menu) setOpen(open bool) bool {
	if m.open == open {
		return false
	}
	m.open = open
	return true
}

// setSearch replaces the search text and reports whether it changed.
func (m *Menu) setSearch(text string, cursor int) bool {
	changed := m.search != text
	m.search = text
	runes := []rune(text)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	m.searchCursor = cursor
	return changed
}

func (m *Menu) insertText(text string) (string, int, bool) {
	insert := []rune(text)
	if len(insert) == 0 {
		return m.search, m.searchCursor, false
	}
	runes := []rune(m.search)
	pos := m.SearchCursor()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	return string(updated), pos + len(insert), true
}

func (m *Menu) deleteRuneBackward() (string, int, bool) {
	runes := []rune(m.search)
	pos := m.SearchCursor()
	if pos == 0 || len(runes) == 0 {
		return m.search, pos, false
	}
	updated := append(runes[:pos-1:pos-1], runes[pos:]...)
	return string(updated), pos - 1, true
}

func (m *Menu) deleteWordBackward() (string, int, bool) {
	runes := []rune(m.search)
	pos := m.SearchCursor()
	if pos == 0 || len(runes) == 0 {
		return m.search, pos, false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i:i], runes[pos:]...)
	return string(updated), i, true
}

func (m *Menu) moveCursorStart() bool {
	if m.SearchCursor() == 0 {
		return false
	}
	m.searchCursor = 0
	return true
}

func (m *Menu) moveCursorEnd() bool {
	end := len([]rune(m.search))
	if m.SearchCursor() == end {
		return false
	}
	m.searchCursor = end
	return true
}

func (m *Menu) moveCursorRuneBackward() bool {
	if m.SearchCursor() == 0 {
		return false
	}
	m.searchCursor = m.SearchCursor() - 1
	return true
}

func (m *Menu) moveCursorRuneForward() bool {
	pos := m.SearchCursor()
	if pos >= len([]rune(m.search)) {
		return false
	}
	m.searchCursor = pos + 1
	return true
}

func (m *Menu) moveCursorWordBackward() bool {
	runes := []rune(m.search)
	pos := m.SearchCursor()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	if i == pos {
		return false
	}
	m.searchCursor = i
	return true
}

func (m *Menu) moveCursorWordForward() bool {
	runes := []rune(m.search)
	pos := m.SearchCursor()
	if pos >= len(runes) {
		return false
	}
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	m.searchCursor = i
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}
