package interfaces_test

import (
	"errors"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

func TestProcessingErrorTakesOwnCategory(t *testing.T) {
	cause := interfaces.NewResourceNotFoundError("pages/missing.md")
	err := interfaces.NewProcessingError("pages/missing.md", cause)

	var typed *goerrors.Error
	if !errors.As(err, &typed) {
		t.Fatalf("expected goerrors.Error, got %T", err)
	}
	if typed.Category != interfaces.CategoryProcessing {
		t.Fatalf("expected processing category, got %s", typed.Category)
	}
	if typed.TextCode != interfaces.TextCodeProcessing {
		t.Fatalf("expected processing text code, got %s", typed.TextCode)
	}
	if typed.Metadata["cause_category"] != string(interfaces.CategoryNotFound) {
		t.Fatalf("expected cause category in metadata, got %v", typed.Metadata)
	}
	if !interfaces.IsProcessing(err) {
		t.Fatal("expected IsProcessing")
	}
	if !interfaces.IsNotFound(err) {
		t.Fatal("expected IsNotFound to match through the chain")
	}
	if errors.Unwrap(err) != cause {
		t.Fatalf("expected Unwrap to return the typed cause, got %v", errors.Unwrap(err))
	}
	if !errors.Is(err, interfaces.ErrResourceNotFound) {
		t.Fatal("expected sentinel in chain")
	}
	if interfaces.CategoryOf(err) != interfaces.CategoryProcessing {
		t.Fatalf("expected outermost category processing, got %s", interfaces.CategoryOf(err))
	}
	if !strings.Contains(err.Error(), "pages/missing.md") {
		t.Fatalf("expected message to name the source, got %q", err.Error())
	}
}

func TestTypedErrorsDoNotInheritCauseCategory(t *testing.T) {
	inner := interfaces.NewTransformError("a.md", errors.New("boom"))
	err := interfaces.NewIOError("a.md", inner)

	if interfaces.CategoryOf(err) != interfaces.CategoryIO {
		t.Fatalf("expected io category, got %s", interfaces.CategoryOf(err))
	}
	if !interfaces.IsIO(err) || !interfaces.IsTransform(err) {
		t.Fatal("expected both categories along the chain")
	}
	if interfaces.IsProcessing(err) {
		t.Fatal("unexpected processing category")
	}
}

func TestPredicatesOnPlainErrors(t *testing.T) {
	plain := errors.New("plain")
	if interfaces.IsIO(plain) || interfaces.IsNotFound(nil) || interfaces.CategoryOf(plain) != "" {
		t.Fatal("plain errors carry no category")
	}
	if !interfaces.IsIO(interfaces.NewIOError("x", nil)) || !errors.Is(interfaces.NewIOError("x", nil), interfaces.ErrIO) {
		t.Fatal("expected nil cause to default to ErrIO")
	}
}
