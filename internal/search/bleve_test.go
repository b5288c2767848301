package search

import (
	"context"
	"testing"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

func TestSearch(t *testing.T) {
	svc, err := NewMemoryService(nil)
	if err != nil {
		t.Fatalf("NewMemoryService: %v", err)
	}
	defer svc.Close()

	ctx := context.Background()
	docs := []*interfaces.Document{
		{
			FilePath: "posts/concurrency.md",
			FrontMatter: interfaces.FrontMatter{
				Title: "Sharing Memory by Communicating",
				Tags:  []string{"go", "concurrency"},
			},
			Body: []byte("Channels let goroutines coordinate without explicit locks."),
		},
		{
			FilePath: "posts/gardening.md",
			FrontMatter: interfaces.FrontMatter{
				Title: "Winter Gardening Notes",
			},
			Body: []byte("Compost, mulch, and patience."),
		},
	}

	if err := svc.Index(ctx, docs); err != nil {
		t.Fatalf("Index: %v", err)
	}

	hits, err := svc.Search(ctx, "goroutines", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if hits[0].Path != "posts/concurrency.md" {
		t.Fatalf("unexpected hit %+v", hits[0])
	}
	if hits[0].Title != "Sharing Memory by Communicating" {
		t.Fatalf("expected stored title, got %q", hits[0].Title)
	}
	if hits[0].Score <= 0 {
		t.Fatalf("expected positive score, got %f", hits[0].Score)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc, err := NewMemoryService(nil)
	if err != nil {
		t.Fatalf("NewMemoryService: %v", err)
	}
	defer svc.Close()

	hits, err := svc.Search(context.Background(), "  ", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if hits != nil {
		t.Fatalf("expected no hits for empty query, got %#v", hits)
	}
}

func TestSearch_Reindex(t *testing.T) {
	svc, err := NewMemoryService(nil)
	if err != nil {
		t.Fatalf("NewMemoryService: %v", err)
	}
	defer svc.Close()

	ctx := context.Background()
	doc := &interfaces.Document{
		FilePath:    "posts/note.md",
		FrontMatter: interfaces.FrontMatter{Title: "Original"},
		Body:        []byte("first version"),
	}
	if err := svc.Index(ctx, []*interfaces.Document{doc}); err != nil {
		t.Fatalf("Index: %v", err)
	}

	doc.Body = []byte("second version entirely rewritten")
	if err := svc.Index(ctx, []*interfaces.Document{doc}); err != nil {
		t.Fatalf("reindex: %v", err)
	}

	hits, err := svc.Search(ctx, "rewritten", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected updated document to match, got %d hits", len(hits))
	}
}
