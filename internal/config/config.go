package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/tmux-popup-select/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// DefaultFieldName names the field described by command-line flags.
const DefaultFieldName = "value"

const (
	envSocketPath    = "TMUX_POPUP_SELECT_SOCKET"
	envWidth         = "TMUX_POPUP_SELECT_WIDTH"
	envHeight        = "TMUX_POPUP_SELECT_HEIGHT"
	envShowFooter    = "TMUX_POPUP_SELECT_FOOTER"
	envTrace         = "TMUX_POPUP_SELECT_TRACE"
	envLogFile       = "TMUX_POPUP_SELECT_LOG_FILE"
	envSource        = "TMUX_POPUP_SELECT_SOURCE"
	envMulti         = "TMUX_POPUP_SELECT_MULTI"
	envGrouped       = "TMUX_POPUP_SELECT_GROUPED"
	envSearchable    = "TMUX_POPUP_SELECT_SEARCHABLE"
	envClearable     = "TMUX_POPUP_SELECT_CLEARABLE"
	envAutofocus     = "TMUX_POPUP_SELECT_AUTOFOCUS"
	envCloseOnSelect = "TMUX_POPUP_SELECT_CLOSE_ON_SELECT"
	envPlaceholder   = "TMUX_POPUP_SELECT_PLACEHOLDER"
	envMatch         = "TMUX_POPUP_SELECT_MATCH"
	envLabelFormat   = "TMUX_POPUP_SELECT_LABEL_FORMAT"
	envTagFormat     = "TMUX_POPUP_SELECT_TAG_FORMAT"
	envPrint         = "TMUX_POPUP_SELECT_PRINT"
	envWatch         = "TMUX_POPUP_SELECT_WATCH"
	envPoll          = "TMUX_POPUP_SELECT_POLL"
	envConfig        = "TMUX_POPUP_SELECT_CONFIG"
)

// valueList collects a repeatable string flag.
type valueList []string

func (v *valueList) String() string {
	return strings.Join(*v, ",")
}

func (v *valueList) Set(s string) error {
	*v = append(*v, s)
	return nil
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("tmux-popup-select", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint rows")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	name := fs.String("name", DefaultFieldName, "name of the field described by flags")
	title := fs.String("title", "", "title shown before the field")
	src := fs.String("source", envOrDefault(env, envSource, ""), "option source: file path, - for stdin, tmux:sessions or tmux:windows")
	multi := fs.Bool("multi", envOrBool(env, envMulti, false), "allow selecting several options")
	grouped := fs.Bool("grouped", envOrBool(env, envGrouped, false), "render options under group headers")
	searchable := fs.Bool("searchable", envOrBool(env, envSearchable, true), "allow typing to filter options")
	clearable := fs.Bool("clearable", envOrBool(env, envClearable, true), "show a clear control when something is selected")
	disabled := fs.Bool("disabled", false, "render the field disabled")
	autofocus := fs.Bool("autofocus", envOrBool(env, envAutofocus, false), "focus the first enabled option when the menu opens or the search changes")
	closeOnSelect := fs.Bool("close-on-select", envOrBool(env, envCloseOnSelect, true), "close the menu after selecting")
	appendToBody := fs.Bool("append-to-body", false, "render the menu below the whole form")
	placeholder := fs.String("placeholder", envOrDefault(env, envPlaceholder, ""), "text shown while nothing is selected")
	match := fs.String("match", envOrDefault(env, envMatch, app.MatchSubstring), "search matcher: substring, prefix or fuzzy")
	labelFormat := fs.String("label-format", envOrDefault(env, envLabelFormat, ""), "text/template rendering option labels")
	tagFormat := fs.String("tag-format", envOrDefault(env, envTagFormat, ""), "text/template rendering multi-select tags")
	var values valueList
	fs.Var(&values, "value", "initially selected value (repeatable)")

	printMode := fs.String("print", envOrDefault(env, envPrint, app.PrintValues), "output format: values, labels, json or table")
	watch := fs.Bool("watch", envOrBool(env, envWatch, false), "reload file and tmux sources while the form is open")
	poll := fs.Duration("poll", envOrDuration(env, envPoll, app.DefaultPollInterval), "tmux source polling interval while watching")
	configPath := fs.String("config", envOrDefault(env, envConfig, ""), "TOML file describing the form's fields")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	field := app.FieldConfig{
		Name:          *name,
		Title:         *title,
		Source:        *src,
		Values:        append([]string(nil), values...),
		Placeholder:   *placeholder,
		Multi:         *multi,
		Grouped:       *grouped,
		Searchable:    *searchable,
		Clearable:     *clearable,
		Disabled:      *disabled,
		Autofocus:     *autofocus,
		CloseOnSelect: *closeOnSelect,
		AppendToBody:  *appendToBody,
		Match:         *match,
		LabelFormat:   *labelFormat,
		TagFormat:     *tagFormat,
	}
	fields := []app.FieldConfig{field}

	path, explicit := *configPath, *configPath != ""
	if !explicit && *src == "" && len(values) == 0 {
		path = defaultConfigPath()
	}
	if path != "" {
		file, err := loadFile(path)
		switch {
		case err == nil:
			if len(file.Fields) > 0 {
				fields = file.Fields
			}
		case explicit || !errors.Is(err, os.ErrNotExist):
			return Config{}, err
		}
	}

	cfg := Config{
		App: app.Config{
			SocketPath:   *socket,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Print:        *printMode,
			Watch:        *watch,
			PollInterval: *poll,
			Fields:       fields,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"socket":  *socket,
			"width":   strconv.Itoa(*width),
			"height":  strconv.Itoa(*height),
			"footer":  strconv.FormatBool(*footer),
			"trace":   strconv.FormatBool(*trace),
			"logFile": *logFile,
			"source":  *src,
			"multi":   strconv.FormatBool(*multi),
			"print":   *printMode,
			"watch":   strconv.FormatBool(*watch),
			"poll":    poll.String(),
			"config":  path,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects configuration the application cannot run with.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.PollInterval < 0 {
		return fmt.Errorf("poll interval must be >= 0 (got %s)", cfg.App.PollInterval)
	}
	if !contains(app.PrintModes, cfg.App.Print) {
		return fmt.Errorf("unknown print mode %q (want one of %s)", cfg.App.Print, strings.Join(app.PrintModes, ", "))
	}
	if len(cfg.App.Fields) == 0 {
		return errors.New("no fields configured")
	}
	seen := make(map[string]bool, len(cfg.App.Fields))
	for i, f := range cfg.App.Fields {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("field %d: name is required", i+1)
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field name %q", f.Name)
		}
		seen[f.Name] = true
		if _, err := app.MatchFunc(f.Match); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		if _, err := app.ParseLabelFormat(f.LabelFormat); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		if _, err := app.ParseLabelFormat(f.TagFormat); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
