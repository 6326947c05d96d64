package state

import (
	"reflect"
	"testing"
)

func typeText(c *Control, text string) {
	for _, r := range text {
		if r == ' ' {
			c.HandleKey(Key{Name: KeySpace})
			continue
		}
		c.HandleKey(Key{Name: KeyRunes, Runes: []rune{r}})
	}
}

func TestRouterClosedMenuKeys(t *testing.T) {
	c, _ := newTestControl(DefaultConfig(), opts("a", "b"))
	if res := c.HandleKey(Key{Name: KeySpace}); !res.PreventDefault || !c.IsOpen() {
		t.Fatalf("expected space to open the menu, got %#v", res)
	}
	c.Close()
	if res := c.HandleKey(Key{Name: KeyDown}); !res.PreventDefault || !c.IsOpen() {
		t.Fatalf("expected arrow down to open the menu, got %#v", res)
	}
	if c.FocusedIndex() != NoFocus {
		t.Fatalf("expected opening key not to move focus")
	}
	c.Close()
	if res := c.HandleKey(Key{Name: KeyEnter}); res.Handled {
		t.Fatalf("expected enter on closed menu left to the host")
	}
	if res := c.HandleKey(Key{Name: KeyEsc}); res.Handled {
		t.Fatalf("expected esc on closed menu left to the host")
	}
}

func TestRouterWrapsAroundAndSkipsDisabled(t *testing.T) {
	c, _ := newTestControl(DefaultConfig(), withDisabled(opts("a", "b", "c"), 1))
	c.Open(true)
	c.HandleKey(Key{Name: KeyDown})
	c.HandleKey(Key{Name: KeyDown})
	if got := c.FocusedIndex(); got != 2 {
		t.Fatalf("expected disabled b skipped, got %d", got)
	}
	c.HandleKey(Key{Name: KeyDown})
	if got := c.FocusedIndex(); got != 0 {
		t.Fatalf("expected wrap to first, got %d", got)
	}
	c.HandleKey(Key{Name: KeyUp})
	if got := c.FocusedIndex(); got != 2 {
		t.Fatalf("expected wrap to last, got %d", got)
	}
}

func TestRouterEnterWithoutFocusIsUnhandled(t *testing.T) {
	c, rec := newTestControl(DefaultConfig(), opts("a"))
	c.Open(true)
	if res := c.HandleKey(Key{Name: KeyEnter}); res.Handled {
		t.Fatalf("expected enter without focus unhandled, got %#v", res)
	}
	if len(rec.selected) != 0 {
		t.Fatalf("expected nothing selected")
	}
}

func TestRouterSpaceSelectsFocusedWhenSearchEmpty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Multi = true
	cfg.CloseOnSelect = false
	c, rec := newTestControl(cfg, opts("a", "b"))
	c.Open(true)
	c.HandleKey(Key{Name: KeyDown})
	c.HandleKey(Key{Name: KeySpace})
	if len(rec.selected) != 1 || rec.selected[0].Value != "a" {
		t.Fatalf("expected space to select a, got %#v", rec.selected)
	}
	if !c.IsOpen() {
		t.Fatalf("expected menu to stay open")
	}
}

func TestRouterSpaceInsertsIntoNonEmptySearch(t *testing.T) {
	c, rec := newTestControl(DefaultConfig(), books)
	typeText(c, "harry p")
	if c.Menu().Search() != "harry p" {
		t.Fatalf("expected search with space, got %q", c.Menu().Search())
	}
	if len(rec.selected) != 0 {
		t.Fatalf("expected no selection from typed space")
	}
	if got := valuesOf(c.Visible().Flat); !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Fatalf("expected harry potter entries, got %v", got)
	}
}

func TestRouterEscClosesAndClearsSearch(t *testing.T) {
	c, _ := newTestControl(DefaultConfig(), books)
	typeText(c, "dune")
	if res := c.HandleKey(Key{Name: KeyEsc}); !res.PreventDefault {
		t.Fatalf("expected esc consumed")
	}
	if c.IsOpen() || c.Menu().Search() != "" {
		t.Fatalf("expected esc to close and clear search")
	}
}

func TestRouterTabClosesWithoutPreventingDefault(t *testing.T) {
	c, _ := newTestControl(DefaultConfig(), opts("a"))
	c.Open(true)
	res := c.HandleKey(Key{Name: KeyTab})
	if !res.Handled || res.PreventDefault {
		t.Fatalf("expected tab handled but not prevented, got %#v", res)
	}
	if c.IsOpen() {
		t.Fatalf("expected tab to close the menu")
	}
}

func TestRouterBackspaceEditsSearchBeforeSelection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Multi = true
	c, rec := newTestControl(cfg, books, "2")
	typeText(c, "ha")
	c.HandleKey(Key{Name: KeyBackspace})
	if c.Menu().Search() != "h" || c.Selection().Len() != 1 {
		t.Fatalf("expected backspace to edit search first, search=%q selected=%d", c.Menu().Search(), c.Selection().Len())
	}
	c.HandleKey(Key{Name: KeyBackspace})
	if c.Menu().Search() != "" || c.Selection().Len() != 1 {
		t.Fatalf("expected second backspace to empty search only")
	}
	c.HandleKey(Key{Name: KeyBackspace})
	if !c.Selection().Empty() || len(rec.deselected) != 0 {
		t.Fatalf("expected third backspace to remove last value silently")
	}
}

func TestRouterBackspaceOnEmptyEverythingUnhandled(t *testing.T) {
	c, _ := newTestControl(DefaultConfig(), opts("a"))
	c.Open(true)
	if res := c.HandleKey(Key{Name: KeyBackspace}); res.Handled {
		t.Fatalf("expected backspace unhandled, got %#v", res)
	}
}

func TestRouterHomeEndPaging(t *testing.T) {
	c, _ := newTestControl(DefaultConfig(), opts("0", "1", "2", "3", "4", "5"))
	c.SetPageSize(2)
	c.Open(true)
	c.HandleKey(Key{Name: KeyEnd})
	if c.FocusedIndex() != 5 {
		t.Fatalf("expected end to focus last, got %d", c.FocusedIndex())
	}
	c.HandleKey(Key{Name: KeyPgUp})
	if c.FocusedIndex() != 3 {
		t.Fatalf("expected page up to 3, got %d", c.FocusedIndex())
	}
	c.HandleKey(Key{Name: KeyHome})
	if c.FocusedIndex() != 0 {
		t.Fatalf("expected home to focus first, got %d", c.FocusedIndex())
	}
	c.HandleKey(Key{Name: KeyPgDown})
	if c.FocusedIndex() != 2 {
		t.Fatalf("expected page down to 2, got %d", c.FocusedIndex())
	}
}

func TestRouterSearchCursorEditing(t *testing.T) {
	c, _ := newTestControl(DefaultConfig(), books)
	typeText(c, "harry potter")
	c.HandleKey(Key{Name: "alt+b"})
	if c.Menu().SearchCursor() != 6 {
		t.Fatalf("expected cursor at start of last word, got %d", c.Menu().SearchCursor())
	}
	c.HandleKey(Key{Name: "ctrl+w"})
	if c.Menu().Search() != "potter" || c.Menu().SearchCursor() != 0 {
		t.Fatalf("expected first word deleted, got %q@%d", c.Menu().Search(), c.Menu().SearchCursor())
	}
	c.HandleKey(Key{Name: "ctrl+e"})
	c.HandleKey(Key{Name: KeyLeft})
	typeText(c, "X")
	if c.Menu().Search() != "potteXr" {
		t.Fatalf("expected insertion at caret, got %q", c.Menu().Search())
	}
	c.HandleKey(Key{Name: "ctrl+u"})
	if c.Menu().Search() != "" {
		t.Fatalf("expected ctrl+u to clear search")
	}
	if !c.IsOpen() {
		t.Fatalf("expected menu to stay open while editing")
	}
}

func TestRouterIgnoresAltRunesAndControlCharacters(t *testing.T) {
	c, _ := newTestControl(DefaultConfig(), opts("a"))
	if res := c.HandleKey(Key{Name: KeyRunes, Runes: []rune{'x'}, Alt: true}); res.Handled {
		t.Fatalf("expected alt runes ignored")
	}
	if res := c.HandleKey(Key{Name: KeyRunes, Runes: []rune{'\x01'}}); res.Handled {
		t.Fatalf("expected control characters ignored")
	}
	if c.IsOpen() {
		t.Fatalf("expected menu closed")
	}
}

func TestRouterNonSearchableIgnoresTyping(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Searchable = false
	c, _ := newTestControl(cfg, opts("a"))
	if res := c.HandleKey(Key{Name: KeyRunes, Runes: []rune{'a'}}); res.Handled {
		t.Fatalf("expected typing ignored")
	}
	if c.IsOpen() || c.Menu().Search() != "" {
		t.Fatalf("expected no search or open")
	}
}
