package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/tmux-popup-select/internal/app"
	"github.com/atomicstack/tmux-popup-select/internal/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfigSearch(t *testing.T, fn func(string) (string, error)) {
	t.Helper()
	prev := searchConfigFile
	searchConfigFile = fn
	t.Cleanup(func() { searchConfigFile = prev })
}

func noConfigFile(t *testing.T) {
	withConfigSearch(t, func(string) (string, error) { return "", os.ErrNotExist })
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	noConfigFile(t)
	cfg, err := LoadArgs(nil, nil)
	require.NoError(t, err)
	require.Len(t, cfg.App.Fields, 1)
	f := cfg.App.Fields[0]
	assert.Equal(t, DefaultFieldName, f.Name)
	assert.True(t, f.Searchable)
	assert.True(t, f.Clearable)
	assert.True(t, f.CloseOnSelect)
	assert.False(t, f.Multi)
	assert.Equal(t, app.PrintValues, cfg.App.Print)
	assert.Equal(t, app.DefaultPollInterval, cfg.App.PollInterval)
	require.NoError(t, Validate(cfg))
}

func TestLoadArgsFlags(t *testing.T) {
	noConfigFile(t)
	args := []string{
		"-source", "tmux:windows", "-multi", "-grouped", "-searchable=false",
		"-value", "@1", "-value", "@3", "-match", "fuzzy", "-print", "json",
		"-watch", "-poll", "2s", "-width", "80", "-height", "20", "-footer",
		"-append-to-body", "-label-format", "{{.Label}}", "-name", "win", "-title", "Window",
	}
	cfg, err := LoadArgs(args, nil)
	require.NoError(t, err)
	f := cfg.App.Fields[0]
	assert.Equal(t, "win", f.Name)
	assert.Equal(t, "Window", f.Title)
	assert.Equal(t, "tmux:windows", f.Source)
	assert.True(t, f.Multi)
	assert.True(t, f.Grouped)
	assert.False(t, f.Searchable)
	assert.True(t, f.AppendToBody)
	assert.Equal(t, []string{"@1", "@3"}, f.Values)
	assert.Equal(t, "fuzzy", f.Match)
	assert.Equal(t, "{{.Label}}", f.LabelFormat)
	assert.Equal(t, app.PrintJSON, cfg.App.Print)
	assert.True(t, cfg.App.Watch)
	assert.Equal(t, 2*time.Second, cfg.App.PollInterval)
	assert.Equal(t, 80, cfg.App.Width)
	assert.Equal(t, 20, cfg.App.Height)
	assert.True(t, cfg.App.ShowFooter)
	assert.Equal(t, "80", cfg.Flags["width"])
	assert.Equal(t, args, cfg.Args)
}

func TestLoadArgsEnvFallbacks(t *testing.T) {
	noConfigFile(t)
	env := []string{
		"TMUX_POPUP_SELECT_SOCKET=/tmp/sock",
		"TMUX_POPUP_SELECT_MULTI=true",
		"TMUX_POPUP_SELECT_CLEARABLE=false",
		"TMUX_POPUP_SELECT_PRINT=labels",
		"TMUX_POPUP_SELECT_POLL=250ms",
		"TMUX_POPUP_SELECT_WIDTH=oops",
		"TMUX_POPUP_SELECT_LOG_FILE=/tmp/select.log",
		"TMUX_POPUP_SELECT_TRACE=1",
	}
	cfg, err := LoadArgs([]string{"-print", "table"}, env)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/sock", cfg.App.SocketPath)
	assert.True(t, cfg.App.Fields[0].Multi)
	assert.False(t, cfg.App.Fields[0].Clearable)
	assert.Equal(t, app.PrintTable, cfg.App.Print, "flags win over env")
	assert.Equal(t, 250*time.Millisecond, cfg.App.PollInterval)
	assert.Equal(t, 0, cfg.App.Width, "unparsable env falls back")
	assert.Equal(t, "/tmp/select.log", cfg.Logging.FilePath)
	assert.True(t, cfg.Logging.Trace)
}

func TestLoadArgsUnknownFlag(t *testing.T) {
	noConfigFile(t)
	_, err := LoadArgs([]string{"-nope"}, nil)
	require.Error(t, err)
}

const formTOML = `
[[field]]
name = "session"
title = "Session"
source = "tmux:sessions"
grouped = true

[[field]]
name = "fruit"
multi = true
searchable = false
values = ["b"]

  [[field.option]]
  value = "a"
  label = "Apple"

  [[field.option]]
  value = "b"
  label = "Banana"
  disabled = true
`

func TestLoadArgsConfigFile(t *testing.T) {
	noConfigFile(t)
	path := writeFile(t, "form.toml", formTOML)
	cfg, err := LoadArgs([]string{"-config", path}, nil)
	require.NoError(t, err)
	require.Len(t, cfg.App.Fields, 2)

	session := cfg.App.Fields[0]
	assert.Equal(t, "session", session.Name)
	assert.Equal(t, "tmux:sessions", session.Source)
	assert.True(t, session.Grouped)
	assert.True(t, session.Searchable, "unset booleans keep their defaults")
	assert.True(t, session.CloseOnSelect)

	fruit := cfg.App.Fields[1]
	assert.True(t, fruit.Multi)
	assert.False(t, fruit.Searchable)
	assert.Equal(t, []string{"b"}, fruit.Values)
	assert.Equal(t, []option.Option{
		{Value: "a", Label: "Apple"},
		{Value: "b", Label: "Banana", Disabled: true},
	}, fruit.Options)
	require.NoError(t, Validate(cfg))
}

func TestLoadArgsConfigFileFromXDG(t *testing.T) {
	path := writeFile(t, "config.toml", formTOML)
	withConfigSearch(t, func(rel string) (string, error) {
		if rel == configRelPath {
			return path, nil
		}
		return "", os.ErrNotExist
	})
	cfg, err := LoadArgs(nil, nil)
	require.NoError(t, err)
	assert.Len(t, cfg.App.Fields, 2)
	assert.Equal(t, path, cfg.Flags["config"])

	cfg, err = LoadArgs([]string{"-source", "list.txt"}, nil)
	require.NoError(t, err)
	require.Len(t, cfg.App.Fields, 1, "an explicit source skips the default config file")
}

func TestLoadArgsMissingExplicitConfig(t *testing.T) {
	noConfigFile(t)
	_, err := LoadArgs([]string{"-config", filepath.Join(t.TempDir(), "missing.toml")}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadArgsRejectsUnknownKeys(t *testing.T) {
	noConfigFile(t)
	path := writeFile(t, "bad.toml", "[[field]]\nname = \"x\"\ncolour = \"red\"\n")
	_, err := LoadArgs([]string{"-config", path}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{App: app.Config{
			Print:  app.PrintValues,
			Fields: []app.FieldConfig{{Name: "a"}},
		}}
	}
	require.NoError(t, Validate(base()))

	cases := map[string]func(*Config){
		"negative width":  func(c *Config) { c.App.Width = -1 },
		"negative height": func(c *Config) { c.App.Height = -1 },
		"negative poll":   func(c *Config) { c.App.PollInterval = -time.Second },
		"print mode":      func(c *Config) { c.App.Print = "xml" },
		"no fields":       func(c *Config) { c.App.Fields = nil },
		"empty name":      func(c *Config) { c.App.Fields[0].Name = " " },
		"duplicate name":  func(c *Config) { c.App.Fields = append(c.App.Fields, app.FieldConfig{Name: "a"}) },
		"match mode":      func(c *Config) { c.App.Fields[0].Match = "regex" },
		"label format":    func(c *Config) { c.App.Fields[0].LabelFormat = "{{.Label" },
		"tag format":      func(c *Config) { c.App.Fields[0].TagFormat = "{{" },
	}
	for name, mutate := range cases {
		cfg := base()
		mutate(&cfg)
		assert.Error(t, Validate(cfg), name)
	}
}
