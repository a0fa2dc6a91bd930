package classifier

import (
	"testing"

	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		path     string
		markdown bool
		rep      interfaces.Representation
	}{
		{path: "docs/index.md", markdown: true, rep: interfaces.RepresentationWiki},
		{path: "/site/page.xml", markdown: false, rep: interfaces.RepresentationStorage},
		{path: "/site/page.xhtml", markdown: false, rep: interfaces.RepresentationStorage},
		{path: "notes.confluence", markdown: false, rep: interfaces.RepresentationWiki},
		{path: "readme.txt", markdown: false, rep: interfaces.RepresentationWiki},
		{path: "UPPER.MD", markdown: false, rep: interfaces.RepresentationWiki},
		{path: "page.XHTML", markdown: false, rep: interfaces.RepresentationWiki},
		{path: "md", markdown: false, rep: interfaces.RepresentationWiki},
		{path: "", markdown: false, rep: interfaces.RepresentationWiki},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			got := Classify(tc.path)
			if got.IsMarkdown != tc.markdown {
				t.Fatalf("IsMarkdown: expected %v, got %v", tc.markdown, got.IsMarkdown)
			}
			if got.Representation != tc.rep {
				t.Fatalf("Representation: expected %s, got %s", tc.rep, got.Representation)
			}
		})
	}
}

func TestExtensionIsExtensionOf(t *testing.T) {
	if !XHTML.IsExtensionOf("a/b.xhtml") {
		t.Fatal("expected xhtml match")
	}
	if XML.IsExtensionOf("a/b.xhtml") {
		t.Fatal("xml must not match .xhtml")
	}
	if Markdown.IsExtensionOf("a/bmd") {
		t.Fatal("expected dot-delimited match only")
	}
}
