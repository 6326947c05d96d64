package state

import "unicode"

// Key names understood by the router. They match the names Bubble Tea gives
// the corresponding key presses.
const (
	KeyDown      = "down"
	KeyUp        = "up"
	KeyEnter     = "enter"
	KeySpace     = " "
	KeyEsc       = "esc"
	KeyBackspace = "backspace"
	KeyTab       = "tab"
	KeyShiftTab  = "shift+tab"
	KeyHome      = "home"
	KeyEnd       = "end"
	KeyPgUp      = "pgup"
	KeyPgDown    = "pgdown"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyRunes     = "runes"
)

// Key is a raw key press forwarded by the presentation layer.
type Key struct {
	Name  string
	Runes []rune
	Alt   bool
}

// KeyResult tells the presentation layer what happened to a key press.
// PreventDefault means the key must not fall through to text entry or focus
// traversal.
type KeyResult struct {
	Handled        bool
	PreventDefault bool
}

var (
	unhandled = KeyResult{}
	consumed  = KeyResult{Handled: true, PreventDefault: true}
)

// HandleKey routes a key press through the navigation table and then through
// search text editing.
func (c *Control) HandleKey(k Key) KeyResult {
	if c.cfg.Disabled {
		return unhandled
	}
	c.sync()
	if c.menu.IsOpen() {
		if res, ok := c.routeOpen(k); ok {
			return res
		}
	} else if res, ok := c.routeClosed(k); ok {
		return res
	}
	return c.handleTextInput(k)
}

func (c *Control) routeOpen(k Key) (KeyResult, bool) {
	search := c.menu.Search()
	switch k.Name {
	case KeyDown:
		c.FocusNext()
		return consumed, true
	case KeyUp:
		c.FocusPrev()
		return consumed, true
	case KeyEnter:
		if c.focus == NoFocus {
			return unhandled, false
		}
		c.SelectFocused()
		return consumed, true
	case KeySpace:
		if search != "" {
			return unhandled, false
		}
		c.SelectFocused()
		return consumed, true
	case KeyEsc:
		c.Close()
		return consumed, true
	case KeyBackspace:
		if search != "" || c.selection.Empty() {
			return unhandled, false
		}
		c.RemoveLast()
		return consumed, true
	case KeyTab, KeyShiftTab:
		c.Close()
		return KeyResult{Handled: true}, true
	case KeyHome:
		c.FocusFirst()
		return consumed, true
	case KeyEnd:
		c.FocusLast()
		return consumed, true
	case KeyPgUp:
		c.FocusPageUp()
		return consumed, true
	case KeyPgDown:
		c.FocusPageDown()
		return consumed, true
	}
	return unhandled, false
}

func (c *Control) routeClosed(k Key) (KeyResult, bool) {
	switch k.Name {
	case KeySpace:
		if c.menu.Search() != "" {
			return unhandled, false
		}
		c.Open(true)
		return consumed, true
	case KeyDown:
		c.Open(true)
		return consumed, true
	}
	return unhandled, false
}

func (c *Control) handleTextInput(k Key) KeyResult {
	if !c.cfg.Searchable {
		return unhandled
	}
	switch k.Name {
	case "ctrl+u":
		if c.menu.Search() == "" {
			return unhandled
		}
		c.applySearch("", 0)
		return consumed
	case "ctrl+w":
		text, cursor, ok := c.menu.deleteWordBackward()
		if !ok {
			return unhandled
		}
		c.applySearch(text, cursor)
		return consumed
	case "ctrl+a":
		return cursorResult(c.menu.moveCursorStart())
	case "ctrl+e":
		return cursorResult(c.menu.moveCursorEnd())
	case "alt+b":
		return cursorResult(c.menu.moveCursorWordBackward())
	case "alt+f":
		return cursorResult(c.menu.moveCursorWordForward())
	case KeyLeft:
		return cursorResult(c.menu.moveCursorRuneBackward())
	case KeyRight:
		return cursorResult(c.menu.moveCursorRuneForward())
	case KeyBackspace, "ctrl+h":
		text, cursor, ok := c.menu.deleteRuneBackward()
		if !ok {
			return unhandled
		}
		c.applySearch(text, cursor)
		return consumed
	case KeySpace:
		text, cursor, _ := c.menu.insertText(" ")
		c.applySearch(text, cursor)
		return consumed
	case KeyRunes:
		if k.Alt || len(k.Runes) == 0 {
			return unhandled
		}
		for _, r := range k.Runes {
			if unicode.IsControl(r) {
				return unhandled
			}
		}
		text, cursor, ok := c.menu.insertText(string(k.Runes))
		if !ok {
			return unhandled
		}
		c.applySearch(text, cursor)
		return consumed
	}
	return unhandled
}

func cursorResult(moved bool) KeyResult {
	if !moved {
		return unhandled
	}
	return consumed
}
