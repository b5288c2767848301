package markdown

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

func TestServiceLoad(t *testing.T) {
	svc := newTestService(t, true)

	doc, err := svc.Load(context.Background(), "react-patterns.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if doc.FrontMatter.Title != "Controlled Inputs, Reconsidered" {
		t.Fatalf("unexpected title %q", doc.FrontMatter.Title)
	}
	if doc.Outline == nil || len(doc.Outline.CodeBlocks) != 1 {
		t.Fatalf("expected outline with one code block, got %#v", doc.Outline)
	}
	if len(doc.Checksum) == 0 {
		t.Fatalf("expected checksum to be populated")
	}
}

func TestServiceLoadDirectory_Recursive(t *testing.T) {
	svc := newTestService(t, true)

	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}

	var foundNested bool
	for _, doc := range docs {
		if filepath.Ext(doc.FilePath) != ".md" {
			t.Fatalf("expected markdown file, got %s", doc.FilePath)
		}
		if len(doc.Checksum) == 0 {
			t.Fatalf("expected checksum set for %s", doc.FilePath)
		}
		if doc.FilePath == "notes/tidy-processes.md" {
			foundNested = true
		}
	}
	if !foundNested {
		t.Fatalf("expected to include notes/tidy-processes.md")
	}
}

func TestServiceLoadDirectory_NonRecursiveOverride(t *testing.T) {
	svc := newTestService(t, true)

	no := false
	docs, err := svc.LoadDirectory(context.Background(), ".", interfaces.LoadOptions{
		Recursive: &no,
	})
	if err != nil {
		t.Fatalf("LoadDirectory override: %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
}

func TestServiceLoadCorpus_ReportsFailures(t *testing.T) {
	cfg := Config{
		BasePath:  "testdata",
		Pattern:   "*.md",
		Recursive: true,
	}
	svc, err := NewService(cfg, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	docs, failures, err := svc.LoadCorpus(context.Background(), ".", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %#v", failures)
	}
	if failures[0].Path != "broken/bad-frontmatter.md" {
		t.Fatalf("unexpected failure path %q", failures[0].Path)
	}
	if len(docs) == 0 {
		t.Fatalf("expected healthy documents alongside the failure")
	}
}

func TestServiceRenderDocument(t *testing.T) {
	svc := newTestService(t, true)

	doc, err := svc.Load(context.Background(), "y-combinator.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	html, err := svc.RenderDocument(context.Background(), doc, interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("RenderDocument: %v", err)
	}
	if !strings.Contains(string(html), "<h1") {
		t.Fatalf("expected rendered heading, got %q", string(html))
	}
	if len(doc.BodyHTML) == 0 {
		t.Fatalf("expected BodyHTML to be cached on the document")
	}
}

func newTestService(tb testing.TB, recursive bool) *Service {
	tb.Helper()

	cfg := Config{
		BasePath:  filepath.Join("testdata", "corpus"),
		Pattern:   "*.md",
		Recursive: recursive,
	}

	svc, err := NewService(cfg, nil)
	if err != nil {
		tb.Fatalf("NewService: %v", err)
	}
	return svc
}
