package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/atomicstack/tmux-popup-select/internal/format/table"
	"github.com/atomicstack/tmux-popup-select/internal/ui"
)

// Print modes accepted by Config.Print.
const (
	PrintValues = "values"
	PrintLabels = "labels"
	PrintJSON   = "json"
	PrintTable  = "table"
)

// PrintModes lists the accepted print modes.
var PrintModes = []string{PrintValues, PrintLabels, PrintJSON, PrintTable}

// Print writes the committed selection of every field in the given mode.
func Print(w io.Writer, mode string, fields []ui.FieldResult) error {
	switch mode {
	case "", PrintValues:
		return printLines(w, fields, func(f ui.FieldResult, i int) string { return string(f.Selected[i].Value) })
	case PrintLabels:
		return printLines(w, fields, func(f ui.FieldResult, i int) string { return f.Labels[i] })
	case PrintJSON:
		return printJSON(w, fields)
	case PrintTable:
		return printTable(w, fields)
	}
	return fmt.Errorf("unknown print mode %q", mode)
}

// printLines writes one line per selected option. Forms with several fields
// prefix every line with the field name.
func printLines(w io.Writer, fields []ui.FieldResult, text func(ui.FieldResult, int) string) error {
	prefix := len(fields) > 1
	for _, f := range fields {
		for i := range f.Selected {
			line := text(f, i)
			if prefix {
				line = f.Name + "=" + line
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func printJSON(w io.Writer, fields []ui.FieldResult) error {
	out := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		if f.Multi {
			values := make([]string, 0, len(f.Selected))
			for _, opt := range f.Selected {
				values = append(values, string(opt.Value))
			}
			out[f.Name] = values
			continue
		}
		if len(f.Selected) == 0 {
			out[f.Name] = nil
			continue
		}
		out[f.Name] = string(f.Selected[0].Value)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printTable(w io.Writer, fields []ui.FieldResult) error {
	rows := [][]string{{"FIELD", "VALUE", "LABEL", "GROUP"}}
	for _, f := range fields {
		for i, opt := range f.Selected {
			rows = append(rows, []string{f.Name, string(opt.Value), f.Labels[i], opt.Group})
		}
	}
	lines := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft, table.AlignLeft})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
