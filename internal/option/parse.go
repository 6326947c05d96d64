package option

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Format names an option file encoding.
type Format int

const (
	FormatLines Format = iota
	FormatJSON
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	default:
		return "lines"
	}
}

// FormatFromPath guesses the encoding from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatLines
	}
}

// ParseError reports a malformed entry in an option file.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// Parse reads options encoded in the given format.
func Parse(r io.Reader, format Format) ([]Option, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read options: %w", err)
	}
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatTOML:
		return parseTOML(data)
	default:
		return parseLines(data)
	}
}

func parseJSON(data []byte) ([]Option, error) {
	var options []Option
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(data, &options); err != nil {
		return nil, fmt.Errorf("decode json options: %w", err)
	}
	return normalize(options)
}

type tomlOptions struct {
	Option []Option `toml:"option"`
}

func parseTOML(data []byte) ([]Option, error) {
	var doc tomlOptions
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("decode toml options: %w", err)
	}
	return normalize(doc.Option)
}

// parseLines reads value[\tlabel[\tgroup]] records. A leading '!' disables
// the option; blank lines and '#' comments are skipped.
func parseLines(data []byte) ([]Option, error) {
	var options []Option
	scanner := bufio.NewScanner(bytes.NewReader(data))
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(strings.TrimSpace(text), "#") {
			continue
		}
		disabled := false
		if strings.HasPrefix(text, "!") {
			disabled = true
			text = text[1:]
		}
		fields := strings.Split(text, "\t")
		value := strings.TrimSpace(fields[0])
		if value == "" {
			return nil, &ParseError{Line: line, Msg: "empty option value"}
		}
		opt := Option{Value: Value(value), Label: value, Disabled: disabled}
		if len(fields) > 1 && strings.TrimSpace(fields[1]) != "" {
			opt.Label = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			opt.Group = strings.TrimSpace(fields[2])
		}
		options = append(options, opt)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan options: %w", err)
	}
	return options, nil
}

func normalize(options []Option) ([]Option, error) {
	for i := range options {
		if strings.TrimSpace(string(options[i].Value)) == "" {
			return nil, &ParseError{Msg: fmt.Sprintf("option %d has an empty value", i+1)}
		}
		if options[i].Label == "" {
			options[i].Label = string(options[i].Value)
		}
	}
	return options, nil
}
