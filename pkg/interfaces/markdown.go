package interfaces

import (
	"context"
	"time"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be reusable across calls so hosts can share a single
// parser instance without additional locking.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// MarkdownService exposes the file workflows for a Markdown article corpus:
// loading documents with parsed front-matter, extracting a structural outline,
// and converting bodies to HTML for previews.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
	Outline(ctx context.Context, doc *Document) (*Outline, error)
}

// Document represents a Markdown article with parsed metadata and content.
// The struct is shared between the interfaces package and internal
// implementations so consumers can depend on a stable contract.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	Outline      *Outline
	LastModified time.Time
	// Checksum stores a digest of the original file content (typically SHA-256)
	// so catalog sync can detect changes without re-importing unchanged files.
	Checksum []byte
}

// FrontMatter models metadata extracted from article files. PublishedAt and
// EditedAt each accept two spellings in source front-matter (date/publishedAt
// and updatedAt/editedAt); the parser resolves the aliases so consumers only
// deal with the canonical fields. The Custom map keeps domain-specific values
// available without schema changes.
type FrontMatter struct {
	Title       string         `yaml:"title" json:"title"`
	Slug        string         `yaml:"slug" json:"slug"`
	Summary     string         `yaml:"summary" json:"summary"`
	Tags        []string       `yaml:"tags" json:"tags"`
	Author      string         `yaml:"author" json:"author"`
	PublishedAt time.Time      `yaml:"publishedAt" json:"published_at"`
	EditedAt    time.Time      `yaml:"editedAt" json:"edited_at"`
	Draft       bool           `yaml:"draft" json:"draft"`
	Custom      map[string]any `yaml:",inline" json:"custom"`
	Raw         map[string]any `yaml:"-" json:"raw"`
}

// HasEditedAt reports whether the document carries an edit timestamp.
func (fm FrontMatter) HasEditedAt() bool {
	return !fm.EditedAt.IsZero()
}

// Outline captures structural facts extracted from a document's Markdown AST.
// It exists so integrity rules and the catalog can inspect fences, images, and
// footnotes without re-parsing the body.
type Outline struct {
	CodeBlocks   []CodeBlock
	Images       []ImageRef
	FootnoteRefs int
	FootnoteDefs int
	Headings     int
	WordCount    int
	// MathIssues lists lines with unbalanced math delimiters found by the
	// line scanner. Goldmark has no math extension, so $…$ spans stay in
	// text nodes and are checked lexically.
	MathIssues []MathIssue
}

// CodeBlock describes a fenced code region and its declared language tag.
type CodeBlock struct {
	Language string
	Line     int
}

// ImageRef describes an image embed and its destination path or URL.
type ImageRef struct {
	Destination string
	Line        int
}

// MathIssue flags a line whose math delimiters do not balance.
type MathIssue struct {
	Line    int
	Message string
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
}
