package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/atomicstack/tmux-popup-select/internal/app"
	"github.com/atomicstack/tmux-popup-select/internal/option"
)

const configRelPath = "tmux-popup-select/config.toml"

// searchConfigFile finds a file below the XDG config directories. It is a
// variable so tests can point it elsewhere.
var searchConfigFile = xdg.SearchConfigFile

// File is the on-disk form description.
type File struct {
	Fields []app.FieldConfig
}

type fileField struct {
	Name          string          `toml:"name"`
	Title         string          `toml:"title"`
	Source        string          `toml:"source"`
	Options       []option.Option `toml:"option"`
	Values        []string        `toml:"values"`
	Placeholder   string          `toml:"placeholder"`
	Multi         bool            `toml:"multi"`
	Grouped       bool            `toml:"grouped"`
	Searchable    *bool           `toml:"searchable"`
	Clearable     *bool           `toml:"clearable"`
	Disabled      bool            `toml:"disabled"`
	Autofocus     bool            `toml:"autofocus"`
	CloseOnSelect *bool           `toml:"close_on_select"`
	AppendToBody  bool            `toml:"append_to_body"`
	Match         string          `toml:"match"`
	LabelFormat   string          `toml:"label_format"`
	TagFormat     string          `toml:"tag_format"`
}

type fileDoc struct {
	Fields []fileField `toml:"field"`
}

func defaultConfigPath() string {
	path, err := searchConfigFile(configRelPath)
	if err != nil {
		return ""
	}
	return path
}

// loadFile decodes the TOML form description at path. A relative path that
// does not exist is also looked up below the XDG config directories.
func loadFile(path string) (File, error) {
	if _, err := os.Stat(path); err != nil && !filepath.IsAbs(path) {
		if found, serr := searchConfigFile(filepath.Join("tmux-popup-select", path)); serr == nil {
			path = found
		}
	}
	var doc fileDoc
	md, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return File{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return File{}, fmt.Errorf("read config %s: unknown key %s", path, undecoded[0])
	}
	out := File{Fields: make([]app.FieldConfig, 0, len(doc.Fields))}
	for _, f := range doc.Fields {
		out.Fields = append(out.Fields, app.FieldConfig{
			Name:          f.Name,
			Title:         f.Title,
			Source:        f.Source,
			Options:       f.Options,
			Values:        f.Values,
			Placeholder:   f.Placeholder,
			Multi:         f.Multi,
			Grouped:       f.Grouped,
			Searchable:    boolOr(f.Searchable, true),
			Clearable:     boolOr(f.Clearable, true),
			Disabled:      f.Disabled,
			Autofocus:     f.Autofocus,
			CloseOnSelect: boolOr(f.CloseOnSelect, true),
			AppendToBody:  f.AppendToBody,
			Match:         f.Match,
			LabelFormat:   f.LabelFormat,
			TagFormat:     f.TagFormat,
		})
	}
	return out, nil
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
