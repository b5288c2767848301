package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-corpus/cmd/corpus/internal/bootstrap"
	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

type stubMarkdownService struct {
	loadDir string
	docs    []*interfaces.Document
}

func (s *stubMarkdownService) Load(context.Context, string, interfaces.LoadOptions) (*interfaces.Document, error) {
	return nil, nil
}

func (s *stubMarkdownService) LoadDirectory(_ context.Context, dir string, _ interfaces.LoadOptions) ([]*interfaces.Document, error) {
	s.loadDir = dir
	return s.docs, nil
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

type stubCatalogService struct {
	syncRuns int
	syncOpts interfaces.CatalogSyncOptions
	syncDocs []*interfaces.Document
}

func (s *stubCatalogService) Sync(_ context.Context, docs []*interfaces.Document, opts interfaces.CatalogSyncOptions) (*interfaces.CatalogSyncResult, error) {
	s.syncRuns++
	s.syncDocs = docs
	s.syncOpts = opts
	return &interfaces.CatalogSyncResult{Created: len(docs)}, nil
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
	return &interfaces.CatalogStats{Articles: 1}, nil
}

func TestRunSyncUsesCommandHandler(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	markdownSvc := &stubMarkdownService{docs: []*interfaces.Document{{FilePath: "a.md"}}}
	catalogSvc := &stubCatalogService{}
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{
			Markdown: markdownSvc,
			Catalog:  catalogSvc,
			Logger:   logging.NoOp(),
		}, nil
	}

	out := &bytes.Buffer{}
	if err := runSync([]string{
		"-directory", "articles",
		"-dry-run",
		"-delete-orphaned",
	}, out); err != nil {
		t.Fatalf("runSync returned error: %v", err)
	}

	if !strings.Contains(out.String(), "corpus sync complete: 1 articles") {
		t.Fatalf("unexpected output %q", out.String())
	}

	if markdownSvc.loadDir != "articles" {
		t.Fatalf("expected load directory articles, got %s", markdownSvc.loadDir)
	}
	if catalogSvc.syncRuns != 1 {
		t.Fatalf("expected one sync run, got %d", catalogSvc.syncRuns)
	}
	if !catalogSvc.syncOpts.DryRun || !catalogSvc.syncOpts.DeleteOrphaned {
		t.Fatalf("expected dry-run and delete-orphaned to propagate, got %+v", catalogSvc.syncOpts)
	}
	if len(catalogSvc.syncDocs) != 1 {
		t.Fatalf("expected loaded documents to reach the catalog, got %d", len(catalogSvc.syncDocs))
	}
}

func TestRunSyncRequiresCatalogService(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return &bootstrap.Module{Logger: logging.NoOp()}, nil
	}

	if err := runSync(nil, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error when catalog service is missing")
	}
}
