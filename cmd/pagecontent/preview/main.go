package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"strings"

	"github.com/goliatone/go-pagecontent"
)

var moduleBuilder = buildModule

type options struct {
	uri            string
	roots          []string
	linkPrefix     string
	pageTitle      string
	ignoreVars     bool
	sourceCharset  string
	outputCharset  string
	headingAnchors bool
	stripFront     bool
	logLevel       string
	logFormat      string
}

func main() {
	var (
		uri            = flag.String("uri", "", "Page URI to resolve (classpath:, file:, http(s):)")
		roots          = flag.String("roots", "content", "Comma separated resource roots searched for classpath URIs")
		linkPrefix     = flag.String("link-prefix", "", "Prefix applied to relative markdown links")
		pageTitle      = flag.String("page", "", "Title of the page being rendered")
		ignoreVars     = flag.Bool("ignore-variables", false, "Disable link prefixing for the page")
		sourceCharset  = flag.String("source-charset", "utf-8", "Charset raw sources are decoded from")
		outputCharset  = flag.String("output-charset", "utf-8", "Charset used when printing the content")
		headingAnchors = flag.Bool("heading-anchors", false, "Emit anchor macros for headings")
		stripFront     = flag.Bool("strip-frontmatter", true, "Drop YAML/TOML front matter from markdown sources")
		logLevel       = flag.String("log-level", "", "Enable go-logger output at the given level")
		logFormat      = flag.String("log-format", "console", "go-logger format (json, console, pretty)")
	)

	flag.Parse()

	if *uri == "" {
		log.Fatalf("--uri is required")
	}

	opts := options{
		uri:            *uri,
		roots:          splitList(*roots),
		linkPrefix:     *linkPrefix,
		pageTitle:      *pageTitle,
		ignoreVars:     *ignoreVars,
		sourceCharset:  *sourceCharset,
		outputCharset:  *outputCharset,
		headingAnchors: *headingAnchors,
		stripFront:     *stripFront,
		logLevel:       *logLevel,
		logFormat:      *logFormat,
	}

	if err := run(context.Background(), opts, os.Stdout); err != nil {
		log.Fatalf("preview: %v", err)
	}
}

func buildModule(opts options) (*pagecontent.Module, error) {
	cfg := pagecontent.DefaultConfig()
	cfg.Resolver.ResourceRoots = opts.roots
	if charset := strings.TrimSpace(opts.sourceCharset); charset != "" {
		cfg.Resolver.SourceCharset = charset
	}
	cfg.Markdown.HeadingAnchors = opts.headingAnchors
	cfg.Markdown.StripFrontMatter = opts.stripFront
	if level := strings.TrimSpace(opts.logLevel); level != "" {
		cfg.Features.Logger = true
		cfg.Logging.Level = level
		cfg.Logging.Format = opts.logFormat
	}

	module, err := pagecontent.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialise pagecontent module: %w", err)
	}
	return module, nil
}

func run(ctx context.Context, opts options, out io.Writer) error {
	u, err := url.Parse(strings.TrimSpace(opts.uri))
	if err != nil {
		return fmt.Errorf("parse uri: %w", err)
	}

	module, err := moduleBuilder(opts)
	if err != nil {
		return err
	}

	pg := previewPage{name: opts.pageTitle, uri: u, ignoreVars: opts.ignoreVars}
	content, err := pagecontent.ProcessURIContent(ctx, module, previewSite{}, pg, u, opts.linkPrefix, func(content pagecontent.PageContent) (pagecontent.PageContent, error) {
		return content, nil
	})
	if err != nil {
		return err
	}

	body, err := content.ContentWithCharset(opts.outputCharset)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "URI: %s\nRepresentation: %s\n\n%s\n", u, content.Representation(), body)
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

type previewSite struct{}

func (previewSite) SpaceKey() string       { return "" }
func (previewSite) Home() pagecontent.Page { return nil }

type previewPage struct {
	name       string
	uri        *url.URL
	ignoreVars bool
}

func (p previewPage) Name() string          { return p.name }
func (p previewPage) URI() *url.URL         { return p.uri }
func (p previewPage) IgnoreVariables() bool { return p.ignoreVars }
