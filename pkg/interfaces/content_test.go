package interfaces_test

import (
	"io"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

func TestPageContentReaderWithCharset(t *testing.T) {
	content := interfaces.NewPageContent("café", interfaces.RepresentationWiki)

	reader, err := content.ReaderWithCharset("ISO-8859-1")
	if err != nil {
		t.Fatalf("ReaderWithCharset: %v", err)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if want := []byte{'c', 'a', 'f', 0xE9}; string(data) != string(want) {
		t.Fatalf("expected latin-1 bytes %v, got %v", want, data)
	}

	reader, err = content.ReaderWithCharset("UTF-8")
	if err != nil {
		t.Fatalf("ReaderWithCharset(UTF-8): %v", err)
	}
	data, _ = io.ReadAll(reader)
	if string(data) != "café" {
		t.Fatalf("expected utf-8 bytes unchanged, got %q", data)
	}
}

func TestPageContentContentWithCharset(t *testing.T) {
	content := interfaces.NewPageContent("café", interfaces.RepresentationStorage)

	same, err := content.ContentWithCharset("utf8")
	if err != nil {
		t.Fatalf("ContentWithCharset(utf8): %v", err)
	}
	if same != "café" {
		t.Fatalf("expected verbatim content, got %q", same)
	}

	reinterpreted, err := content.ContentWithCharset("latin1")
	if err != nil {
		t.Fatalf("ContentWithCharset(latin1): %v", err)
	}
	if reinterpreted != "cafÃ©" {
		t.Fatalf("expected utf-8 bytes read as latin-1, got %q", reinterpreted)
	}
	if content.Representation() != interfaces.RepresentationStorage {
		t.Fatalf("representation changed: %s", content.Representation())
	}
}

func TestPageContentUnknownCharset(t *testing.T) {
	content := interfaces.NewPageContent("x", interfaces.RepresentationWiki)

	if _, err := content.ContentWithCharset("klingon-8"); !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := content.ReaderWithCharset(""); err == nil {
		t.Fatal("expected error for blank charset")
	}
}
