package corpuscmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-corpus/pkg/interfaces"
	goerrors "github.com/goliatone/go-errors"
)

type checkCall struct {
	directory string
	options   interfaces.CheckOptions
}

type stubIntegrityService struct {
	calls  []checkCall
	report *interfaces.Report
	err    error
}

func (s *stubIntegrityService) CheckDirectory(ctx context.Context, dir string, opts interfaces.CheckOptions) (*interfaces.Report, error) {
	s.calls = append(s.calls, checkCall{directory: dir, options: opts})
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func (s *stubIntegrityService) CheckDocuments(context.Context, []*interfaces.Document) (*interfaces.Report, error) {
	return s.report, s.err
}

type stubMarkdownService struct {
	docs []*interfaces.Document
	err  error
}

func (s *stubMarkdownService) Load(context.Context, string, interfaces.LoadOptions) (*interfaces.Document, error) {
	return nil, nil
}

func (s *stubMarkdownService) LoadDirectory(context.Context, string, interfaces.LoadOptions) ([]*interfaces.Document, error) {
	return s.docs, s.err
}

func (s *stubMarkdownService) Render(context.Context, []byte, interfaces.ParseOptions) ([]byte, error) {
	return nil, nil
}

func (s *stubMarkdownService) RenderDocument(context.Context, *interfaces.Document, interfaces.ParseOptions) ([]byte, error) {
	return nil, nil
}

func (s *stubMarkdownService) Outline(context.Context, *interfaces.Document) (*interfaces.Outline, error) {
	return nil, nil
}

type syncCall struct {
	docs    []*interfaces.Document
	options interfaces.CatalogSyncOptions
}

type stubCatalogService struct {
	calls  []syncCall
	result *interfaces.CatalogSyncResult
	err    error
}

func (s *stubCatalogService) Sync(ctx context.Context, docs []*interfaces.Document, opts interfaces.CatalogSyncOptions) (*interfaces.CatalogSyncResult, error) {
	s.calls = append(s.calls, syncCall{docs: docs, options: opts})
	if s.err != nil {
		return s.result, s.err
	}
	return s.result, nil
}

func (s *stubCatalogService) List(context.Context) ([]*interfaces.ArticleRecord, error) {
	return nil, nil
}

func (s *stubCatalogService) GetBySlug(context.Context, string) (*interfaces.ArticleRecord, error) {
	return nil, nil
}

func (s *stubCatalogService) WithTag(context.Context, string) ([]*interfaces.ArticleRecord, error) {
	return nil, nil
}

func (s *stubCatalogService) Tags(context.Context) (map[string]int, error) {
	return nil, nil
}

func (s *stubCatalogService) Stats(context.Context) (*interfaces.CatalogStats, error) {
	return nil, nil
}

func TestCheckDirectoryHandlerInvokesService(t *testing.T) {
	service := &stubIntegrityService{
		report: &interfaces.Report{Documents: 3},
	}
	handler := NewCheckDirectoryHandler(service, nil, FeatureGates{})

	err := handler.Execute(context.Background(), CheckDirectoryCommand{
		Directory: "content",
		Pattern:   "*.mdx",
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(service.calls) != 1 {
		t.Fatalf("expected 1 service call, got %d", len(service.calls))
	}
	if service.calls[0].directory != "content" {
		t.Fatalf("unexpected directory %q", service.calls[0].directory)
	}
	if service.calls[0].options.Pattern != "*.mdx" {
		t.Fatalf("unexpected pattern %q", service.calls[0].options.Pattern)
	}
}

func TestCheckDirectoryHandlerFailsOnErrors(t *testing.T) {
	service := &stubIntegrityService{
		report: &interfaces.Report{
			Documents: 2,
			Issues: []interfaces.Issue{
				{Path: "a.md", Rule: "title", Severity: interfaces.SeverityError, Message: "missing title"},
			},
		},
	}
	handler := NewCheckDirectoryHandler(service, nil, FeatureGates{})

	err := handler.Execute(context.Background(), CheckDirectoryCommand{Directory: "content"})
	if err == nil {
		t.Fatal("expected error for failing report")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestCheckDirectoryHandlerWarningsPassByDefault(t *testing.T) {
	service := &stubIntegrityService{
		report: &interfaces.Report{
			Documents: 2,
			Issues: []interfaces.Issue{
				{Path: "a.md", Rule: "duplicate-title", Severity: interfaces.SeverityWarning, Message: "dup"},
			},
		},
	}
	handler := NewCheckDirectoryHandler(service, nil, FeatureGates{})

	if err := handler.Execute(context.Background(), CheckDirectoryCommand{Directory: "content"}); err != nil {
		t.Fatalf("warnings should not fail by default: %v", err)
	}

	err := handler.Execute(context.Background(), CheckDirectoryCommand{
		Directory:      "content",
		FailOnWarnings: true,
	})
	if err == nil {
		t.Fatal("expected error with FailOnWarnings")
	}
}

func TestCheckDirectoryHandlerValidation(t *testing.T) {
	service := &stubIntegrityService{report: &interfaces.Report{}}
	handler := NewCheckDirectoryHandler(service, nil, FeatureGates{})

	err := handler.Execute(context.Background(), CheckDirectoryCommand{Directory: "   "})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if len(service.calls) != 0 {
		t.Fatalf("service should not be called on validation failure")
	}
}

func TestCheckDirectoryHandlerFeatureGate(t *testing.T) {
	service := &stubIntegrityService{report: &interfaces.Report{}}
	handler := NewCheckDirectoryHandler(service, nil, FeatureGates{
		IntegrityEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), CheckDirectoryCommand{Directory: "content"})
	if err == nil {
		t.Fatal("expected feature gate error")
	}
	if !errors.Is(err, ErrIntegrityFeatureDisabled) {
		t.Fatalf("expected ErrIntegrityFeatureDisabled, got %v", err)
	}
}

func TestSyncDirectoryHandlerInvokesServices(t *testing.T) {
	markdown := &stubMarkdownService{
		docs: []*interfaces.Document{{FilePath: "posts/a.md"}},
	}
	catalog := &stubCatalogService{
		result: &interfaces.CatalogSyncResult{Created: 1},
	}
	handler := NewSyncDirectoryHandler(markdown, catalog, nil, FeatureGates{})

	err := handler.Execute(context.Background(), SyncDirectoryCommand{
		Directory:      "posts",
		DryRun:         true,
		DeleteOrphaned: true,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if len(catalog.calls) != 1 {
		t.Fatalf("expected 1 catalog call, got %d", len(catalog.calls))
	}
	call := catalog.calls[0]
	if !call.options.DryRun || !call.options.DeleteOrphaned {
		t.Fatalf("options not propagated: %+v", call.options)
	}
	if len(call.docs) != 1 || call.docs[0].FilePath != "posts/a.md" {
		t.Fatalf("documents not propagated: %#v", call.docs)
	}
}

func TestSyncDirectoryHandlerFeatureGate(t *testing.T) {
	handler := NewSyncDirectoryHandler(&stubMarkdownService{}, &stubCatalogService{}, nil, FeatureGates{
		CatalogEnabled: func() bool { return false },
	})

	err := handler.Execute(context.Background(), SyncDirectoryCommand{Directory: "posts"})
	if err == nil {
		t.Fatal("expected feature gate error")
	}
	if !errors.Is(err, ErrCatalogFeatureDisabled) {
		t.Fatalf("expected ErrCatalogFeatureDisabled, got %v", err)
	}
}

func TestSyncDirectoryHandlerPropagatesLoadError(t *testing.T) {
	markdown := &stubMarkdownService{err: errors.New("walk failed")}
	catalog := &stubCatalogService{}
	handler := NewSyncDirectoryHandler(markdown, catalog, nil, FeatureGates{})

	err := handler.Execute(context.Background(), SyncDirectoryCommand{Directory: "posts"})
	if err == nil {
		t.Fatal("expected load error")
	}
	if len(catalog.calls) != 0 {
		t.Fatalf("catalog should not be called when loading fails")
	}
}
