package markdown

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-pagecontent/pkg/interfaces"
	"github.com/goliatone/go-pagecontent/pkg/testsupport"
)

type stubContext struct {
	prefix  string
	enabled bool
}

func (s stubContext) Site() interfaces.Site { return nil }
func (s stubContext) Page() interfaces.Page { return nil }
func (s stubContext) PagePrefixToApply() (string, bool) {
	return s.prefix, s.prefix != ""
}
func (s stubContext) IsLinkPrefixEnabled() bool { return s.enabled }

func TestWikiTransformerRendersBlocks(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "heading and emphasis",
			source: "# Heading\n\nHello **world** and _you_.",
			want:   "h1. Heading\n\nHello *world* and _you_.",
		},
		{
			name:   "nested bullet list",
			source: "- a\n- b\n  - c\n",
			want:   "* a\n* b\n** c",
		},
		{
			name:   "ordered list",
			source: "1. one\n2. two\n",
			want:   "# one\n# two",
		},
		{
			name:   "fenced code and code span",
			source: "```go\nfmt.Println(1)\n```\n\nUse `x := 1`.",
			want:   "{code:language=go}\nfmt.Println(1)\n{code}\n\nUse {{x := 1}}.",
		},
		{
			name:   "table",
			source: "| a | b |\n| --- | --- |\n| 1 | 2 |\n",
			want:   "||a||b||\n|1|2|",
		},
		{
			name:   "strikethrough",
			source: "~~old~~ new",
			want:   "-old- new",
		},
		{
			name:   "blockquote",
			source: "> quoted\n",
			want:   "{quote}\nquoted\n{quote}",
		},
		{
			name:   "escapes macro characters",
			source: "use {braces} here",
			want:   `use \{braces\} here`,
		},
		{
			name:   "image and rule",
			source: "![logo](logo.png)\n\n---\n",
			want:   "!logo.png!\n\n----",
		},
	}

	transformer := NewWikiTransformer(interfaces.ParseOptions{}, nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := transformer.Transform(context.Background(), stubContext{}, tc.source)
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestWikiTransformerGoldenCases(t *testing.T) {
	transformer := NewWikiTransformer(interfaces.ParseOptions{}, nil)
	for _, tc := range testsupport.LoadRenderCases(t, "testdata/render_cases.json") {
		t.Run(tc.Name, func(t *testing.T) {
			got, err := transformer.Transform(context.Background(), stubContext{}, tc.Source)
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}
			if got != tc.Want {
				t.Fatalf("expected %q, got %q", tc.Want, got)
			}
		})
	}
}

func TestWikiTransformerPrefixesRelativeLinks(t *testing.T) {
	source := "See [install](Install) and [site](https://example.com) and [top](#intro)."
	transformer := NewWikiTransformer(interfaces.ParseOptions{}, nil)

	got, err := transformer.Transform(context.Background(), stubContext{prefix: "Release 2.0", enabled: true}, source)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	want := "See [install|Release 2.0 - Install] and [site|https://example.com] and [top|#intro]."
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	got, err = transformer.Transform(context.Background(), stubContext{prefix: "Release 2.0", enabled: false}, source)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if !strings.Contains(got, "[install|Install]") {
		t.Fatalf("expected unprefixed link when prefixing is disabled, got %q", got)
	}
}

func TestWikiTransformerCustomSeparator(t *testing.T) {
	transformer := NewWikiTransformer(interfaces.ParseOptions{LinkPrefixSeparator: "/"}, nil)

	got, err := transformer.Transform(context.Background(), stubContext{prefix: "Docs", enabled: true}, "[a](Child)")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got != "[a|Docs/Child]" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestWikiTransformerStripsFrontMatter(t *testing.T) {
	source := testsupport.LoadFixture(t, "testdata/frontmatter.md")
	transformer := NewWikiTransformer(interfaces.ParseOptions{StripFrontMatter: true}, nil)

	got, err := transformer.Transform(context.Background(), stubContext{}, string(source))
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if strings.Contains(got, "title:") {
		t.Fatalf("expected front matter to be stripped, got %q", got)
	}
	if !strings.HasPrefix(got, "h1. Release Notes") {
		t.Fatalf("expected heading first, got %q", got)
	}
}

func TestWikiTransformerHeadingAnchors(t *testing.T) {
	transformer := NewWikiTransformer(interfaces.ParseOptions{HeadingAnchors: true}, nil)

	got, err := transformer.Transform(context.Background(), stubContext{}, "## Getting Started\n")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if !strings.HasPrefix(got, "h2. {anchor:") || !strings.HasSuffix(got, "}Getting Started") {
		t.Fatalf("expected anchored heading, got %q", got)
	}
}

func TestWikiTransformerHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	transformer := NewWikiTransformer(interfaces.ParseOptions{}, nil)
	if _, err := transformer.Transform(ctx, stubContext{}, "# x"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestPrefixLink(t *testing.T) {
	cases := []struct {
		dest string
		want string
	}{
		{dest: "Child Page", want: "Home - Child Page"},
		{dest: "#anchor", want: "#anchor"},
		{dest: "mailto:a@b.c", want: "mailto:a@b.c"},
		{dest: "https://example.com", want: "https://example.com"},
		{dest: "Home - Child Page", want: "Home - Child Page"},
		{dest: "", want: ""},
	}
	for _, tc := range cases {
		if got := PrefixLink(tc.dest, "Home", " - "); got != tc.want {
			t.Fatalf("PrefixLink(%q): expected %q, got %q", tc.dest, tc.want, got)
		}
	}
	if got := PrefixLink("Child", "  ", " - "); got != "Child" {
		t.Fatalf("expected blank prefix to be ignored, got %q", got)
	}
}

func TestKnownExtensions(t *testing.T) {
	if !IsKnownExtension(" GFM ") {
		t.Fatal("expected gfm to be known")
	}
	if IsKnownExtension("footnote") {
		t.Fatal("footnote has no wiki rendering and must not be accepted")
	}
	if len(KnownExtensions()) == 0 {
		t.Fatal("expected extension names")
	}
}
