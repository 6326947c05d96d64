package option

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLines(t *testing.T) {
	input := strings.Join([]string{
		"# books",
		"hp1\tHarry Potter and the Philosopher's Stone\tfantasy",
		"",
		"!hp2\tHarry Potter and the Chamber of Secrets\tfantasy",
		"dune",
	}, "\n")
	opts, err := Parse(strings.NewReader(input), FormatLines)
	require.NoError(t, err)
	require.Len(t, opts, 3)
	assert.Equal(t, Option{Value: "hp1", Label: "Harry Potter and the Philosopher's Stone", Group: "fantasy"}, opts[0])
	assert.True(t, opts[1].Disabled)
	assert.Equal(t, "dune", opts[2].Label)
	assert.Empty(t, opts[2].Group)
}

func TestParseLinesRejectsEmptyValue(t *testing.T) {
	_, err := Parse(strings.NewReader("ok\n\tlabel only\n"), FormatLines)
	require.Error(t, err)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Line)
}

func TestParseJSON(t *testing.T) {
	input := `[{"value":"1","label":"One","group":"odd"},{"value":"2","disabled":true}]`
	opts, err := Parse(strings.NewReader(input), FormatJSON)
	require.NoError(t, err)
	require.Len(t, opts, 2)
	assert.Equal(t, "odd", opts[0].Group)
	assert.Equal(t, "2", opts[1].Label)
	assert.True(t, opts[1].Disabled)
}

func TestParseJSONEmptyInput(t *testing.T) {
	opts, err := Parse(strings.NewReader("  \n"), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, opts)
}

func TestParseTOML(t *testing.T) {
	input := `
[[option]]
value = "a"
label = "Alpha"
group = "greek"

[[option]]
value = "b"
`
	opts, err := Parse(strings.NewReader(input), FormatTOML)
	require.NoError(t, err)
	require.Len(t, opts, 2)
	assert.Equal(t, Option{Value: "a", Label: "Alpha", Group: "greek"}, opts[0])
	assert.Equal(t, "b", opts[1].Label)
}

func TestParseTOMLRejectsMissingValue(t *testing.T) {
	_, err := Parse(strings.NewReader("[[option]]\nlabel = \"x\"\n"), FormatTOML)
	require.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("/tmp/opts.JSON"))
	assert.Equal(t, FormatTOML, FormatFromPath("opts.toml"))
	assert.Equal(t, FormatLines, FormatFromPath("opts.txt"))
	assert.Equal(t, FormatLines, FormatFromPath("-"))
}
