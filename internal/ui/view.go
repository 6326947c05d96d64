package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/atomicstack/tmux-popup-select/internal/logging"
	"github.com/atomicstack/tmux-popup-select/internal/option"
	"github.com/atomicstack/tmux-popup-select/internal/ui/document"
	"github.com/atomicstack/tmux-popup-select/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
)

const (
	defaultPlaceholder = "Select…"
	footerRows         = 2
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

type zoneKind int

const (
	zoneControl zoneKind = iota
	zonePrompt
	zoneOption
	zoneTagRemove
	zoneClear
)

// zone is a clickable column span [from, to) of a row.
type zone struct {
	kind   zoneKind
	from   int
	to     int
	option option.Option
}

// row is one rendered line and the field that drew it. field is -1 for form
// chrome such as the footer.
type row struct {
	line  styledLine
	field int
	zones []zone
}

func (r row) zoneAt(x int) (zone, bool) {
	for _, z := range r.zones {
		if x >= z.from && x < z.to {
			return z, true
		}
	}
	return zone{}, false
}

// lineBuilder assembles a raw line out of styled segments while tracking the
// column of each segment.
type lineBuilder struct {
	out   strings.Builder
	width int
}

func (b *lineBuilder) add(text string, style *lipgloss.Style) (int, int) {
	from := b.width
	if style != nil && text != "" {
		b.out.WriteString(style.Render(text))
	} else {
		b.out.WriteString(text)
	}
	b.width += lipgloss.Width(text)
	return from, b.width
}

// addRendered appends text that already carries styling.
func (b *lineBuilder) addRendered(text string) {
	b.out.WriteString(text)
	b.width += ansi.StringWidth(text)
}

func (b *lineBuilder) line() styledLine {
	return styledLine{text: b.out.String(), raw: true}
}

// View renders the form.
func (m *Model) View() string {
	rows := m.layout()
	lines := make([]styledLine, len(rows))
	for i, r := range rows {
		lines[i] = r.line
	}
	lines = applyWidth(lines, m.width)
	lines = limitHeight(lines, m.height, m.width)
	return renderLines(lines)
}

// layout computes the rows of the whole form and records the screen regions
// every field occupies.
func (m *Model) layout() []row {
	rows := make([]row, 0, len(m.fields)+8)
	var body []row
	bodyField := -1
	for i, f := range m.fields {
		control := m.controlRow(i, f)
		rows = append(rows, control)
		cfg := f.ctrl.Config()
		if i == m.active && cfg.Searchable && !cfg.Disabled && f.ctrl.IsOpen() {
			rows = append(rows, m.promptRow(i, f))
		}
		if !f.ctrl.IsOpen() {
			continue
		}
		if cfg.AppendToBody {
			bodyField = i
			continue
		}
		rows = append(rows, m.menuRows(i, f, 2)...)
	}
	if bodyField >= 0 {
		f := m.fields[bodyField]
		if m.width <= 0 && m.height <= 0 {
			if !f.originWarn {
				f.originWarn = true
				logging.Warn("field %q: no layout information for detached menu, drawing at origin", f.name)
			}
			body = m.menuRows(bodyField, f, 0)
			rows = append(body, rows...)
		} else {
			body = m.menuRows(bodyField, f, f.valueCol)
			rows = append(rows, row{field: -1})
			rows = append(rows, body...)
		}
	}
	if m.errMsg != "" {
		rows = append(rows, row{field: -1, line: styledLine{text: "Error: " + m.errMsg, style: styles.Error}})
	}
	if m.showFooter {
		rows = append(rows, m.footerRows()...)
	}
	m.recordRegions(rows)
	return rows
}

// recordRegions stores, per field, the rectangles its rows cover. A detached
// menu yields a second region apart from the control.
func (m *Model) recordRegions(rows []row) {
	for _, f := range m.fields {
		f.regions = f.regions[:0]
	}
	width := m.width
	if width <= 0 {
		width = math.MaxInt32
	}
	for y := 0; y < len(rows); {
		idx := rows[y].field
		start := y
		for y < len(rows) && rows[y].field == idx {
			y++
		}
		if idx < 0 || idx >= len(m.fields) {
			continue
		}
		f := m.fields[idx]
		f.regions = append(f.regions, document.Rect{X: 0, Y: start, Width: width, Height: y - start})
	}
}

func (m *Model) controlRow(i int, f *field) row {
	var b lineBuilder
	zones := make([]zone, 0, 4)
	snap := f.ctrl.Snapshot()

	indicator, title := styles.ItemIndicator, styles.FieldTitle
	if i == m.active {
		indicator, title = styles.SelectedItemIndicator, styles.ActiveFieldTitle
	}
	b.add("▌", indicator)
	b.add(" ", nil)
	if f.title != "" {
		b.add(f.title+":", title)
		b.add(" ", nil)
	}
	f.valueCol = b.width

	cfg := f.ctrl.Config()
	switch {
	case len(snap.Selected) == 0:
		placeholder := snap.Placeholder
		if placeholder == "" {
			placeholder = defaultPlaceholder
		}
		b.add(placeholder, styles.Placeholder)
	case snap.Multi:
		for j, opt := range snap.Selected {
			if j > 0 {
				b.add(" ", nil)
			}
			b.add("["+cfg.TagLabel(opt)+" ", styles.Tag)
			from, to := b.add("×", styles.TagRemove)
			b.add("]", styles.Tag)
			zones = append(zones, zone{kind: zoneTagRemove, from: from, to: to, option: opt})
		}
	default:
		b.add(cfg.Label(snap.Selected[0]), styles.Value)
	}
	if snap.ShowClear() {
		b.add("  ", nil)
		from, to := b.add("×", styles.Clear)
		zones = append(zones, zone{kind: zoneClear, from: from, to: to})
	}
	if snap.Loading {
		b.add(" ", nil)
		b.addRendered(m.spinner.View())
	}
	switch {
	case snap.Disabled:
		b.add(" (disabled)", styles.Placeholder)
	case snap.MenuOpen:
		b.add(" ▴", styles.ItemIndicator)
	default:
		b.add(" ▾", styles.ItemIndicator)
	}
	zones = append(zones, zone{kind: zoneControl, from: 0, to: math.MaxInt32})
	return row{line: b.line(), field: i, zones: zones}
}

func (m *Model) promptRow(i int, f *field) row {
	var b lineBuilder
	b.add("  ", nil)
	b.addRendered(m.filterPrompt(f))
	return row{line: b.line(), field: i, zones: []zone{{kind: zonePrompt, from: 0, to: math.MaxInt32}}}
}

// menuEntry is either a group header or the flat index of a visible option.
type menuEntry struct {
	header string
	index  int
}

func menuEntries(v state.Visible) []menuEntry {
	entries := make([]menuEntry, 0, v.Len()+len(v.Groups))
	if !v.Grouped {
		for idx := range v.Flat {
			entries = append(entries, menuEntry{index: idx})
		}
		return entries
	}
	for g, group := range v.Groups {
		entries = append(entries, menuEntry{header: group.Name, index: -1})
		offset := v.GroupOffset(g)
		for j := range group.Options {
			entries = append(entries, menuEntry{index: offset + j})
		}
	}
	return entries
}

func (m *Model) menuRows(i int, f *field, indent int) []row {
	snap := f.ctrl.Snapshot()
	pad := strings.Repeat(" ", indent)
	vis := snap.Visible
	if vis.Len() == 0 {
		var b lineBuilder
		b.add(pad, nil)
		switch {
		case snap.Loading:
			b.addRendered(m.spinner.View())
			b.add(" Loading options…", styles.Loading)
		case snap.Search != "":
			b.add(fmt.Sprintf("No matches for %q", snap.Search), styles.Info)
		default:
			b.add("(no options)", styles.Info)
		}
		return []row{{line: b.line(), field: i}}
	}

	entries := menuEntries(vis)
	focusRow := -1
	for r, e := range entries {
		if e.index >= 0 && e.index == snap.FocusedIndex {
			focusRow = r
			break
		}
	}
	maxRows := m.maxMenuRows(i)
	f.ctrl.SetPageSize(maxRows)
	vp := f.ctrl.Viewport()
	vp.Follow(focusRow, len(entries), maxRows)
	start, end := vp.Offset, len(entries)
	if maxRows > 0 && start+maxRows < end {
		end = start + maxRows
	}

	var selected option.Value
	hasSelected := false
	if !snap.Multi && len(snap.Selected) == 1 {
		selected, hasSelected = snap.Selected[0].Value, true
	}
	cfg := f.ctrl.Config()
	rows := make([]row, 0, end-start)
	for _, e := range entries[start:end] {
		var b lineBuilder
		b.add(pad, nil)
		if e.index < 0 {
			b.add(e.header, styles.GroupHeader)
			rows = append(rows, row{line: b.line(), field: i})
			continue
		}
		opt := vis.Flat[e.index]
		focused := e.index == snap.FocusedIndex
		indicator, style := styles.ItemIndicator, styles.Item
		switch {
		case opt.Disabled:
			style = styles.DisabledItem
		case focused:
			indicator, style = styles.SelectedItemIndicator, styles.SelectedItem
		}
		b.add("▌", indicator)
		if hasSelected && opt.Value == selected {
			b.add("✓", styles.CheckedMark)
			b.add(" ", style)
		} else if !snap.Multi {
			b.add("  ", style)
		} else {
			b.add(" ", style)
		}
		label := cfg.Label(opt)
		if m.width > 0 {
			if fill := m.width - b.width - lipgloss.Width(label); fill > 0 {
				label += strings.Repeat(" ", fill)
			}
		}
		b.add(label, style)
		rows = append(rows, row{
			line:  b.line(),
			field: i,
			zones: []zone{{kind: zoneOption, from: 0, to: math.MaxInt32, option: opt}},
		})
	}
	return rows
}

// maxMenuRows is the number of menu rows that fit below the form chrome, or -1
// when the height is unknown.
func (m *Model) maxMenuRows(i int) int {
	if m.height <= 0 {
		return -1
	}
	used := len(m.fields)
	if f := m.activeField(); f != nil && f.ctrl.Config().Searchable {
		used++
	}
	if i < len(m.fields) && m.fields[i].ctrl.Config().AppendToBody {
		used++
	}
	if m.errMsg != "" {
		used++
	}
	if m.showFooter {
		used += footerRows
	}
	if avail := m.height - used; avail > 0 {
		return avail
	}
	return 1
}

func (m *Model) footerRows() []row {
	parts := []string{}
	if f := m.activeField(); f != nil {
		snap := f.ctrl.Snapshot()
		total := len(f.ctrl.Store().Options())
		parts = append(parts, fmt.Sprintf("%s/%s options", humanize.Comma(int64(snap.Visible.Len())), humanize.Comma(int64(total))))
		if snap.Multi {
			parts = append(parts, fmt.Sprintf("%s selected", humanize.Comma(int64(len(snap.Selected)))))
		}
	}
	help := "↑/↓ move · enter select · tab next field · esc close · ctrl+c quit"
	return []row{
		{field: -1, line: styledLine{text: strings.Join(parts, " · "), style: styles.Footer}},
		{field: -1, line: styledLine{text: help, style: styles.Footer}},
	}
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
