package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/goliatone/go-pagecontent/internal/markdown"
)

var ErrResolverTimeoutInvalid = errors.New("pagecontent config: resolver timeout must be zero or positive")
var ErrResolverRootRequired = errors.New("pagecontent config: resource roots must not be blank")
var ErrSourceCharsetUnknown = errors.New("pagecontent config: source charset is unknown")
var ErrMarkdownExtensionUnknown = errors.New("pagecontent config: markdown extension is unknown")
var ErrLinkPrefixSeparatorInvalid = errors.New("pagecontent config: link prefix separator must not contain wiki link syntax")
var ErrLoggingProviderRequired = errors.New("pagecontent config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("pagecontent config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("pagecontent config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("pagecontent config: logging format is invalid")

// Config aggregates the knobs of the page content module. Zero values fall
// back to the defaults of each component.
type Config struct {
	Resolver ResolverConfig
	Markdown MarkdownConfig
	Logging  LoggingConfig
	Features Features
}

// ResolverConfig captures how URIs are turned into raw streams.
type ResolverConfig struct {
	// ResourceRoots are directories searched, in order, for classpath URIs
	// after the loader carried on the call context.
	ResourceRoots []string
	Timeout       time.Duration
	UserAgent     string
	// SourceCharset names the encoding raw sources are decoded from.
	SourceCharset string
}

// MarkdownConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownConfig struct {
	Extensions          []string
	HardWraps           bool
	HeadingAnchors      bool
	StripFrontMatter    bool
	LinkPrefixSeparator string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Logger bool
}

// DefaultConfig returns the defaults used by the preview tool and tests.
func DefaultConfig() Config {
	return Config{
		Resolver: ResolverConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "go-pagecontent/1.0",
			SourceCharset: "utf-8",
		},
		Markdown: MarkdownConfig{
			Extensions:          []string{"gfm"},
			LinkPrefixSeparator: " - ",
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Resolver.Timeout < 0 {
		return ErrResolverTimeoutInvalid
	}
	for _, root := range cfg.Resolver.ResourceRoots {
		if strings.TrimSpace(root) == "" {
			return ErrResolverRootRequired
		}
	}
	if charset := strings.TrimSpace(cfg.Resolver.SourceCharset); charset != "" {
		if _, err := htmlindex.Get(charset); err != nil {
			return fmt.Errorf("%w: %s", ErrSourceCharsetUnknown, charset)
		}
	}
	for _, ext := range cfg.Markdown.Extensions {
		if !markdown.IsKnownExtension(ext) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, ext)
		}
	}
	if strings.ContainsAny(cfg.Markdown.LinkPrefixSeparator, "|[]\n") {
		return fmt.Errorf("%w: %q", ErrLinkPrefixSeparatorInvalid, cfg.Markdown.LinkPrefixSeparator)
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "gologger", "noop":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
