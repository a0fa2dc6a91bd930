package pagecontentcmd

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-pagecontent/internal/commands"
	"github.com/goliatone/go-pagecontent/internal/markdown"
	"github.com/goliatone/go-pagecontent/internal/pipeline"
	"github.com/goliatone/go-pagecontent/internal/resolver"
	"github.com/goliatone/go-pagecontent/pkg/interfaces"
)

type captured struct {
	msg     ResolvePageCommand
	content interfaces.PageContent
}

type registry struct {
	handlers []any
}

func (r *registry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func newProcessor() *pipeline.Processor {
	res := resolver.New(resolver.Config{}, resolver.WithLoaders(resolver.NewFSLoader("test", fstest.MapFS{
		"docs/home.md": {Data: []byte("See [guide](Guide).")},
		"docs/raw.xml": {Data: []byte("<x/>")},
	})))
	return pipeline.New(res, markdown.NewWikiTransformer(interfaces.ParseOptions{}, nil))
}

func TestResolvePageHandlerDeliversContent(t *testing.T) {
	var got []captured
	handler, err := NewResolvePageHandler(newProcessor(), func(_ context.Context, msg ResolvePageCommand, content interfaces.PageContent) error {
		got = append(got, captured{msg: msg, content: content})
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("NewResolvePageHandler: %v", err)
	}

	msg := ResolvePageCommand{URI: "classpath:docs/home.md", LinkPrefix: "Manual", PageTitle: "Home"}
	if err := handler.Execute(context.Background(), msg); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one delivery, got %d", len(got))
	}
	if want := "See [guide|Manual - Guide]."; got[0].content.Content() != want {
		t.Fatalf("expected %q, got %q", want, got[0].content.Content())
	}
}

func TestResolvePageHandlerHonoursLinkPrefixRules(t *testing.T) {
	cases := []struct {
		name string
		msg  ResolvePageCommand
		want string
	}{
		{
			name: "ignore variables",
			msg:  ResolvePageCommand{URI: "classpath:docs/home.md", LinkPrefix: "Manual", IgnoreVariables: true},
			want: "See [guide|Guide].",
		},
		{
			name: "bracketed model title",
			msg:  ResolvePageCommand{URI: "classpath:docs/home.md", LinkPrefix: "Manual", ModelPageTitle: "Release [2.0]"},
			want: "See [guide|Guide].",
		},
		{
			name: "plain model title",
			msg:  ResolvePageCommand{URI: "classpath:docs/home.md", LinkPrefix: "Manual", ModelPageTitle: "Release 2.0"},
			want: "See [guide|Manual - Guide].",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var content string
			handler, _ := NewResolvePageHandler(newProcessor(), func(_ context.Context, _ ResolvePageCommand, pc interfaces.PageContent) error {
				content = pc.Content()
				return nil
			}, nil)
			if err := handler.Execute(context.Background(), tc.msg); err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if content != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, content)
			}
		})
	}
}

func TestResolvePageHandlerValidationFailure(t *testing.T) {
	called := false
	handler, _ := NewResolvePageHandler(newProcessor(), func(context.Context, ResolvePageCommand, interfaces.PageContent) error {
		called = true
		return nil
	}, nil)

	err := handler.Execute(context.Background(), ResolvePageCommand{URI: "docs/home.md"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("sink must not run for invalid commands")
	}
}

func TestResolvePageHandlerKeepsPipelineCategory(t *testing.T) {
	handler, _ := NewResolvePageHandler(newProcessor(), nil, nil)

	err := handler.Execute(context.Background(), ResolvePageCommand{URI: "classpath:docs/missing.md"})
	if !interfaces.IsNotFound(err) {
		t.Fatalf("expected not found category, got %v", err)
	}
	var typed *goerrors.Error
	if !errors.As(err, &typed) || typed.TextCode != commands.TextCodeSourceMissing {
		t.Fatalf("expected %s, got %v", commands.TextCodeSourceMissing, err)
	}
	if typed.Metadata["uri"] != "classpath:docs/missing.md" {
		t.Fatalf("expected uri in metadata, got %v", typed.Metadata)
	}
}

func TestResolvePageHandlerSinkError(t *testing.T) {
	sinkErr := errors.New("sink full")
	handler, _ := NewResolvePageHandler(newProcessor(), func(context.Context, ResolvePageCommand, interfaces.PageContent) error {
		return sinkErr
	}, nil)

	err := handler.Execute(context.Background(), ResolvePageCommand{URI: "classpath:docs/raw.xml"})
	if !errors.Is(err, sinkErr) {
		t.Fatalf("expected sink error in chain, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestNewResolvePageHandlerRequiresProcessor(t *testing.T) {
	if _, err := NewResolvePageHandler(nil, nil, nil); !errors.Is(err, ErrProcessorRequired) {
		t.Fatalf("expected ErrProcessorRequired, got %v", err)
	}
}

func TestRegisterCommands(t *testing.T) {
	reg := &registry{}
	set, err := RegisterCommands(reg, newProcessor(), nil, nil)
	if err != nil {
		t.Fatalf("RegisterCommands: %v", err)
	}
	if set.Resolve == nil {
		t.Fatal("expected resolve handler")
	}
	if len(reg.handlers) != 1 || reg.handlers[0] != set.Resolve {
		t.Fatalf("expected resolve handler to be registered, got %v", reg.handlers)
	}
}
