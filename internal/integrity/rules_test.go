package integrity

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

func TestEffectiveSlug(t *testing.T) {
	cases := []struct {
		name     string
		doc      interfaces.Document
		expected string
	}{
		{
			name:     "explicit slug wins",
			doc:      interfaces.Document{FrontMatter: interfaces.FrontMatter{Slug: "my-slug", Title: "Something Else"}},
			expected: "my-slug",
		},
		{
			name:     "derived from title",
			doc:      interfaces.Document{FrontMatter: interfaces.FrontMatter{Title: "Hello, World!"}},
			expected: "hello-world",
		},
		{
			name:     "empty when nothing to derive",
			doc:      interfaces.Document{},
			expected: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EffectiveSlug(&tc.doc); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestChronologyRule_MissingPublishedAt(t *testing.T) {
	doc := &interfaces.Document{
		FilePath:    "note.md",
		FrontMatter: interfaces.FrontMatter{Title: "Note"},
	}

	issues := ChronologyRule{}.Check(context.Background(), doc)
	if len(issues) != 1 {
		t.Fatalf("expected one issue, got %#v", issues)
	}
	if issues[0].Severity != interfaces.SeverityError {
		t.Fatalf("expected error severity, got %s", issues[0].Severity)
	}
}

func TestChronologyRule_EditOnlyIsOptional(t *testing.T) {
	doc := &interfaces.Document{
		FilePath: "note.md",
		FrontMatter: interfaces.FrontMatter{
			Title:       "Note",
			PublishedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	if issues := (ChronologyRule{}).Check(context.Background(), doc); len(issues) != 0 {
		t.Fatalf("unedited document should pass, got %#v", issues)
	}
}

func TestResolveImagePath(t *testing.T) {
	cases := []struct {
		docPath  string
		dest     string
		expected string
	}{
		{"post.md", "assets/pic.png", "assets/pic.png"},
		{"notes/post.md", "./pic.png", "notes/pic.png"},
		{"notes/post.md", "../assets/pic.png", "assets/pic.png"},
		{"notes/post.md", "/assets/pic.png", "assets/pic.png"},
	}

	for _, tc := range cases {
		if got := resolveImagePath(tc.docPath, tc.dest); got != tc.expected {
			t.Fatalf("resolveImagePath(%q, %q) = %q, expected %q", tc.docPath, tc.dest, got, tc.expected)
		}
	}
}

func TestIsRemoteDestination(t *testing.T) {
	remote := []string{"https://example.com/a.png", "http://example.com/a.png", "//cdn.example.com/a.png", "data:image/png;base64,AAAA"}
	for _, dest := range remote {
		if !isRemoteDestination(dest) {
			t.Fatalf("expected %q to be remote", dest)
		}
	}
	if isRemoteDestination("assets/a.png") {
		t.Fatalf("relative path flagged as remote")
	}
}
