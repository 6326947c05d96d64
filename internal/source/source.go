// Package source turns a field's source spec into a loader producing its
// option list.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/atomicstack/tmux-popup-select/internal/option"
	"github.com/atomicstack/tmux-popup-select/internal/tmux"
)

// Kind identifies where options come from.
type Kind int

const (
	KindStatic Kind = iota
	KindFile
	KindStdin
	KindSessions
	KindWindows
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindStdin:
		return "stdin"
	case KindSessions:
		return "tmux:sessions"
	case KindWindows:
		return "tmux:windows"
	default:
		return "static"
	}
}

// Watch describes how a source can be followed for changes.
type Watch int

const (
	WatchNone Watch = iota
	WatchFile
	WatchPoll
)

// Spec is a parsed source reference.
type Spec struct {
	Kind   Kind
	Path   string
	Format option.Format
}

// ParseSpec parses a source reference: empty for inline options, "-" for
// stdin, "tmux:sessions", "tmux:windows", or a file path whose extension
// selects the format.
func ParseSpec(raw string) (Spec, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return Spec{Kind: KindStatic}, nil
	case raw == "-":
		return Spec{Kind: KindStdin, Format: option.FormatLines}, nil
	case strings.HasPrefix(raw, "tmux:"):
		switch strings.TrimPrefix(raw, "tmux:") {
		case "sessions":
			return Spec{Kind: KindSessions}, nil
		case "windows":
			return Spec{Kind: KindWindows}, nil
		}
		return Spec{}, fmt.Errorf("unknown tmux source %q", raw)
	}
	return Spec{Kind: KindFile, Path: raw, Format: option.FormatFromPath(raw)}, nil
}

func (s Spec) String() string {
	if s.Kind == KindFile {
		return s.Path
	}
	if s.Kind == KindStdin {
		return "-"
	}
	return s.Kind.String()
}

// Watch reports how the source can be followed.
func (s Spec) Watch() Watch {
	switch s.Kind {
	case KindFile:
		return WatchFile
	case KindSessions, KindWindows:
		return WatchPoll
	default:
		return WatchNone
	}
}

// Loader produces the current option list of a source.
type Loader interface {
	Spec() Spec
	Load(ctx context.Context) ([]option.Option, error)
}

// Options carries what loaders need besides the spec.
type Options struct {
	Socket string
	Stdin  io.Reader
	Static []option.Option
}

var (
	fetchSessions = tmux.FetchSessions
	fetchWindows  = tmux.FetchWindows
)

// New returns the loader for spec.
func New(spec Spec, opts Options) Loader {
	switch spec.Kind {
	case KindFile:
		return &fileLoader{spec: spec}
	case KindStdin:
		r := opts.Stdin
		if r == nil {
			r = os.Stdin
		}
		return &stdinLoader{spec: spec, r: r}
	case KindSessions:
		return &tmuxLoader{spec: spec, load: func() ([]option.Option, error) {
			sessions, err := fetchSessions(opts.Socket)
			if err != nil {
				return nil, err
			}
			return SessionOptions(sessions), nil
		}}
	case KindWindows:
		return &tmuxLoader{spec: spec, load: func() ([]option.Option, error) {
			windows, err := fetchWindows(opts.Socket)
			if err != nil {
				return nil, err
			}
			return WindowOptions(windows), nil
		}}
	default:
		return staticLoader{spec: spec, options: option.Clone(opts.Static)}
	}
}

type staticLoader struct {
	spec    Spec
	options []option.Option
}

func (l staticLoader) Spec() Spec { return l.spec }

func (l staticLoader) Load(context.Context) ([]option.Option, error) {
	return option.Clone(l.options), nil
}

type fileLoader struct {
	spec Spec
}

func (l *fileLoader) Spec() Spec { return l.spec }

func (l *fileLoader) Load(ctx context.Context) ([]option.Option, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.spec.Path)
	if err != nil {
		return nil, fmt.Errorf("open options: %w", err)
	}
	defer f.Close()
	opts, err := option.Parse(f, l.spec.Format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.spec.Path, err)
	}
	return opts, nil
}

// stdinLoader reads its input once; later loads return the same options.
type stdinLoader struct {
	spec Spec
	r    io.Reader

	once sync.Once
	data []byte
	err  error
}

func (l *stdinLoader) Spec() Spec { return l.spec }

func (l *stdinLoader) Load(ctx context.Context) ([]option.Option, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.once.Do(func() {
		l.data, l.err = io.ReadAll(l.r)
	})
	if l.err != nil {
		return nil, fmt.Errorf("read stdin: %w", l.err)
	}
	return option.Parse(bytes.NewReader(l.data), l.spec.Format)
}

type tmuxLoader struct {
	spec Spec
	load func() ([]option.Option, error)
}

func (l *tmuxLoader) Spec() Spec { return l.spec }

func (l *tmuxLoader) Load(ctx context.Context) ([]option.Option, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.load()
}
