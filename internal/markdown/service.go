package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// Config controls how the markdown service discovers and parses files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Parser    interfaces.ParseOptions
}

// Service implements interfaces.MarkdownService for filesystem-backed corpora.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	loader *Loader
}

var _ interfaces.MarkdownService = (*Service)(nil)

// NewService constructs a markdown service using an underlying loader. When
// parser is nil, a Goldmark parser with the provided default options is created.
func NewService(cfg Config, parser interfaces.MarkdownParser) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	return NewServiceWithFS(cfg, parser, filesystem), nil
}

// NewServiceWithFS constructs a service over an explicit filesystem. Tests and
// embedded corpora use this to avoid touching disk.
func NewServiceWithFS(cfg Config, parser interfaces.MarkdownParser, filesystem fs.FS) *Service {
	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}

	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
	})

	return &Service{
		cfg:    cfg,
		parser: parser,
		loader: loader,
	}
}

// Loader exposes the underlying loader so integrity rules can resolve asset
// paths against the corpus filesystem.
func (s *Service) Loader() *Loader {
	return s.loader
}

// Load reads a single document relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}
	if _, err := s.Outline(ctx, result.Document); err != nil {
		return nil, err
	}
	return result.Document, nil
}

// LoadDirectory reads every document within the supplied directory. Parse
// failures abort the call; callers that need per-file failure reporting use
// LoadCorpus instead.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	docs, failures, err := s.LoadCorpus(ctx, dir, opts)
	if err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		return nil, failures[0].Err
	}
	return docs, nil
}

// LoadCorpus reads every document within dir, returning parse failures
// alongside the successfully loaded documents so a corpus walk survives
// malformed front-matter.
func (s *Service) LoadCorpus(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, []LoadFailure, error) {
	results, failures, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), toLoaderParams(opts))
	if err != nil {
		return nil, nil, err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		if _, err := s.Outline(ctx, result.Document); err != nil {
			return nil, nil, err
		}
		docs = append(docs, result.Document)
	}
	return docs, failures, nil
}

// Render parses Markdown bytes into HTML using the configured parser.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.parser.ParseWithOptions(markdown, mergeParseOptions(s.cfg.Parser, opts))
}

// RenderDocument converts the document's Markdown body into HTML using the configured parser.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ParseOptions) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("markdown service: document is nil")
	}
	html, err := s.Render(ctx, doc.Body, opts)
	if err != nil {
		return nil, fmt.Errorf("markdown render document %s: %w", doc.FilePath, err)
	}
	doc.BodyHTML = html
	return html, nil
}

// Outline extracts the document's structural outline, caching it on the document.
func (s *Service) Outline(ctx context.Context, doc *interfaces.Document) (*interfaces.Outline, error) {
	if doc == nil {
		return nil, errors.New("markdown service: document is nil")
	}
	if doc.Outline != nil {
		return doc.Outline, nil
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	outline, err := Scan(doc.Body)
	if err != nil {
		return nil, fmt.Errorf("markdown outline %s: %w", doc.FilePath, err)
	}
	doc.Outline = outline
	return outline, nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Sanitize {
		result.Sanitize = true
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}

func toLoaderParams(opts interfaces.LoadOptions) LoadParams {
	return LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	}
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
