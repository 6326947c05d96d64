package events

import "github.com/atomicstack/tmux-popup-select/internal/logging"

type MenuTracer struct{}

type SelectionTracer struct{}

type SearchTracer struct{}

type FocusTracer struct{}

type FormTracer struct{}

var (
	Menu      = MenuTracer{}
	Selection = SelectionTracer{}
	Search    = SearchTracer{}
	Focus     = FocusTracer{}
	Form      = FormTracer{}
)

func (MenuTracer) Open(field string) {
	logging.Trace("menu.open", map[string]interface{}{"field": field})
}

func (MenuTracer) Close(field string) {
	logging.Trace("menu.close", map[string]interface{}{"field": field})
}

func (MenuTracer) OutsideClick(field string, x, y int) {
	logging.Trace("menu.outside-click", map[string]interface{}{"field": field, "x": x, "y": y})
}

func (SelectionTracer) Select(field, value string, count int) {
	logging.Trace("selection.select", map[string]interface{}{"field": field, "value": value, "count": count})
}

func (SelectionTracer) Deselect(field, value string, count int) {
	logging.Trace("selection.deselect", map[string]interface{}{"field": field, "value": value, "count": count})
}

func (SelectionTracer) Clear(field string) {
	logging.Trace("selection.clear", map[string]interface{}{"field": field})
}

func (SelectionTracer) RemoveLast(field string, count int) {
	logging.Trace("selection.remove-last", map[string]interface{}{"field": field, "count": count})
}

func (SearchTracer) Change(field, text string) {
	logging.Trace("search.change", map[string]interface{}{"field": field, "search": text})
}

func (FocusTracer) Move(field string, index int) {
	logging.Trace("focus.move", map[string]interface{}{"field": field, "index": index})
}

func (FormTracer) FieldFocus(field string) {
	logging.Trace("form.focus", map[string]interface{}{"field": field})
}

func (FormTracer) Submit(fields int) {
	logging.Trace("form.submit", map[string]interface{}{"fields": fields})
}

func (FormTracer) Cancel() {
	logging.Trace("form.cancel", nil)
}
