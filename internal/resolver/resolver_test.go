package resolver

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

func TestParseURIRejectsMissingScheme(t *testing.T) {
	u, err := url.Parse("//unresolvable.invalid/page.md")
	if err != nil {
		t.Fatalf("url.Parse: %v", err)
	}

	_, err = ParseURI(u)
	if !interfaces.IsInvalidURI(err) {
		t.Fatalf("expected invalid uri error, got %v", err)
	}

	_, err = ParseURI(nil)
	if !interfaces.IsInvalidURI(err) {
		t.Fatalf("expected invalid uri error for nil, got %v", err)
	}
}

func TestParseURIParts(t *testing.T) {
	cases := []struct {
		raw  string
		ssp  string
		path string
		name string
	}{
		{raw: "classpath:docs/page.md", ssp: "docs/page.md", path: "docs/page.md", name: "docs/page.md"},
		{raw: "CLASSPATH:/docs/page.md#intro", ssp: "/docs/page.md", path: "/docs/page.md", name: "docs/page.md"},
		{raw: "https://example.com/a/b.xhtml?v=1", ssp: "//example.com/a/b.xhtml?v=1", path: "/a/b.xhtml", name: "example.com/a/b.xhtml"},
		{raw: "file:///tmp/page.xml", ssp: "/tmp/page.xml", path: "/tmp/page.xml", name: "tmp/page.xml"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			resolved, err := ParseURIString(tc.raw)
			if err != nil {
				t.Fatalf("ParseURIString: %v", err)
			}
			if resolved.SchemeSpecificPart != tc.ssp {
				t.Fatalf("ssp: expected %q, got %q", tc.ssp, resolved.SchemeSpecificPart)
			}
			if resolved.Path != tc.path {
				t.Fatalf("path: expected %q, got %q", tc.path, resolved.Path)
			}
			if resolved.ResourceName() != tc.name {
				t.Fatalf("name: expected %q, got %q", tc.name, resolved.ResourceName())
			}
		})
	}
}

func TestResolveClasspathPrefersContextLoader(t *testing.T) {
	callerFS := fstest.MapFS{"pages/home.md": {Data: []byte("from caller")}}
	moduleFS := fstest.MapFS{"pages/home.md": {Data: []byte("from module")}}

	r := New(Config{}, WithLoaders(NewFSLoader("module", moduleFS)))
	ctx := WithResourceLoader(context.Background(), NewFSLoader("caller", callerFS))

	got := resolveString(t, r, ctx, "classpath:pages/home.md")
	if got != "from caller" {
		t.Fatalf("expected caller content, got %q", got)
	}
}

func TestResolveClasspathFallsBackToModuleLoader(t *testing.T) {
	callerFS := fstest.MapFS{}
	moduleFS := fstest.MapFS{"pages/home.md": {Data: []byte("from module")}}

	r := New(Config{}, WithLoaders(NewFSLoader("module", moduleFS)))
	ctx := WithResourceLoader(context.Background(), NewFSLoader("caller", callerFS))

	got := resolveString(t, r, ctx, "classpath:/pages/home.md")
	if got != "from module" {
		t.Fatalf("expected module content, got %q", got)
	}
}

func TestResolveClasspathNotFoundNamesResource(t *testing.T) {
	r := New(Config{}, WithLoaders(NewFSLoader("module", fstest.MapFS{})))
	ctx := WithResourceLoader(context.Background(), NewFSLoader("caller", fstest.MapFS{}))

	resolved, err := ParseURIString("classpath:missing/page.md")
	if err != nil {
		t.Fatalf("ParseURIString: %v", err)
	}
	_, err = r.Resolve(ctx, resolved)
	if !interfaces.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if !strings.Contains(err.Error(), "missing/page.md") {
		t.Fatalf("expected message to contain resource path, got %q", err.Error())
	}
	if !errors.Is(err, interfaces.ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound in chain, got %v", err)
	}
}

func TestResolveClasspathDirectoryIsNotAResource(t *testing.T) {
	r := New(Config{}, WithLoaders(NewFSLoader("module", fstest.MapFS{
		"pages/home.md": {Data: []byte("x")},
	})))

	resolved, _ := ParseURIString("classpath:pages")
	_, err := r.Resolve(context.Background(), resolved)
	if !interfaces.IsNotFound(err) {
		t.Fatalf("expected not found for directory, got %v", err)
	}
}

func TestResolveClasspathLoaderFailureIsIOError(t *testing.T) {
	broken := LoaderFunc(func(context.Context, string) (io.ReadCloser, error) {
		return nil, fs.ErrPermission
	})
	r := New(Config{}, WithLoaders(broken))

	resolved, _ := ParseURIString("classpath:pages/home.md")
	_, err := r.Resolve(context.Background(), resolved)
	if !interfaces.IsIO(err) {
		t.Fatalf("expected io error, got %v", err)
	}
}

func TestResolveHTTP(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotAgent = req.Header.Get("User-Agent")
		if req.URL.Path == "/missing.md" {
			http.NotFound(w, req)
			return
		}
		_, _ = io.WriteString(w, "# remote")
	}))
	defer server.Close()

	r := New(Config{UserAgent: "pagecontent-test"}, WithHTTPClient(server.Client()))

	got := resolveString(t, r, context.Background(), server.URL+"/page.md")
	if got != "# remote" {
		t.Fatalf("expected remote body, got %q", got)
	}
	if gotAgent != "pagecontent-test" {
		t.Fatalf("expected user agent to be sent, got %q", gotAgent)
	}

	resolved, _ := ParseURIString(server.URL + "/missing.md")
	_, err := r.Resolve(context.Background(), resolved)
	if !interfaces.IsIO(err) {
		t.Fatalf("expected io error for 404, got %v", err)
	}
	if !strings.Contains(err.Error(), resolved.SchemeSpecificPart) {
		t.Fatalf("expected message to contain %q, got %q", resolved.SchemeSpecificPart, err.Error())
	}
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.xhtml")
	if err := os.WriteFile(path, []byte("<p>hello</p>"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	r := New(Config{})
	got := resolveString(t, r, context.Background(), (&url.URL{Scheme: "file", Path: path}).String())
	if got != "<p>hello</p>" {
		t.Fatalf("expected file content, got %q", got)
	}

	resolved, _ := ParseURIString("file://" + filepath.ToSlash(filepath.Join(dir, "absent.md")))
	if _, err := r.Resolve(context.Background(), resolved); !interfaces.IsIO(err) {
		t.Fatalf("expected io error, got %v", err)
	}
}

func TestResolveUnsupportedScheme(t *testing.T) {
	r := New(Config{})
	resolved, _ := ParseURIString("ftp://example.com/page.md")
	_, err := r.Resolve(context.Background(), resolved)
	if !interfaces.IsIO(err) {
		t.Fatalf("expected io error, got %v", err)
	}
	if !strings.Contains(err.Error(), "//example.com/page.md") {
		t.Fatalf("expected message to name the scheme-specific part, got %q", err.Error())
	}
}

func resolveString(tb testing.TB, r *Resolver, ctx context.Context, raw string) string {
	tb.Helper()
	resolved, err := ParseURIString(raw)
	if err != nil {
		tb.Fatalf("ParseURIString(%s): %v", raw, err)
	}
	rc, err := r.Resolve(ctx, resolved)
	if err != nil {
		tb.Fatalf("Resolve(%s): %v", raw, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		tb.Fatalf("ReadAll: %v", err)
	}
	return string(data)
}
