package gologger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-pagecontent/internal/logging"
	"github.com/goliatone/go-pagecontent/internal/util"
	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

// DefaultRoot prefixes every logger name handed out by a Provider.
const DefaultRoot = "pagecontent"

// Config mirrors runtimeconfig.LoggingConfig for the go-logger backend.
// Focus accepts short module names ("resolver") as well as qualified ones
// ("pagecontent.resolver").
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
	Root      string
}

// Provider hands out go-logger children named under a common root.
type Provider struct {
	root     *glog.BaseLogger
	rootName string
}

// NewProvider builds the root go-logger instance from cfg.
func NewProvider(cfg Config) (*Provider, error) {
	options := []glog.Option{}

	if level := normalizeLevel(cfg.Level); level != "" {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	p := &Provider{
		root:     glog.NewLogger(options...),
		rootName: util.FirstNonBlank(cfg.Root, DefaultRoot),
	}
	if focus := p.qualifyAll(cfg.Focus); len(focus) > 0 {
		p.root.Focus(focus...)
	}
	return p, nil
}

// GetLogger satisfies interfaces.LoggerProvider. Names outside the root are
// nested under it.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil {
		return logging.NoOp()
	}
	return wrap(p.root.GetLogger(p.qualify(name)))
}

func (p *Provider) qualify(name string) string {
	name = strings.TrimSpace(name)
	switch {
	case name == "", name == p.rootName:
		return p.rootName
	case strings.HasPrefix(name, p.rootName+"."):
		return name
	default:
		return p.rootName + "." + name
	}
}

func (p *Provider) qualifyAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			out = append(out, p.qualify(name))
		}
	}
	return out
}

func wrap(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner glog.Logger
}

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, describe(args)...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, describe(args)...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, describe(args)...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, describe(args)...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, describe(args)...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, describe(args)...) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	fields = util.MergeFields(fields, nil)
	for key, value := range fields {
		fields[key] = plainValue(value)
	}

	if with, ok := l.inner.(glog.FieldsLogger); ok {
		return wrap(with.WithFields(fields))
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	if with, ok := l.inner.(interface{ With(...any) *glog.BaseLogger }); ok {
		return wrap(with.With(args...))
	}
	return l
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return wrap(l.inner.WithContext(ctx))
}

// describe rewrites key/value pairs for structured output. An error value
// carrying a go-errors category gains error_category and error_code pairs.
func describe(args []any) []any {
	if len(args) < 2 {
		return args
	}
	out := make([]any, 0, len(args)+4)
	for i := 0; i < len(args); i++ {
		if i+1 >= len(args) {
			out = append(out, args[i])
			break
		}
		key, value := args[i], args[i+1]
		i++
		out = append(out, key, plainValue(value))

		err, ok := value.(error)
		if !ok || err == nil {
			continue
		}
		var typed *goerrors.Error
		if errors.As(err, &typed) {
			out = append(out, "error_category", string(typed.Category))
			if typed.TextCode != "" {
				out = append(out, "error_code", typed.TextCode)
			}
		}
	}
	return out
}

func plainValue(value any) any {
	switch v := value.(type) {
	case interfaces.Representation:
		return string(v)
	case error:
		return v.Error()
	default:
		return value
	}
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	case "fatal":
		return glog.Fatal
	default:
		return ""
	}
}
