// Package table lays out plain-text columns for terminal output.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Format returns the rows padded according to the widest entry in each
// column. Widths are measured in terminal cells. The last column is never
// padded on the right.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if width := runewidth.StringWidth(cell); width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			pad := widths[c] - runewidth.StringWidth(cell)
			if pad < 0 {
				pad = 0
			}
			last := c == len(row)-1
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if !last {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
		}
		out[i] = b.String()
	}
	return out
}
