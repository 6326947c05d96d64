package table

import "testing"

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"FIELD", "VALUE", "LABEL"},
		{"fruit", "a", "Apple"},
		{"basket", "banana", "Banana"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignRight, AlignLeft})
	want := []string{
		"FIELD    VALUE  LABEL",
		"fruit        a  Apple",
		"basket  banana  Banana",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatMeasuresWideRunes(t *testing.T) {
	got := Format([][]string{{"日本", "x"}, {"ab", "y"}}, nil)
	if got[1] != "ab    y" {
		t.Fatalf("expected wide cells to count double, got %q", got[1])
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
