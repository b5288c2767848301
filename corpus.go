package corpus

import (
	"github.com/goliatone/go-corpus/internal/commands/corpuscmd"
	"github.com/goliatone/go-corpus/internal/di"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// MarkdownService exports the markdown service contract for consumers of the corpus package.
type MarkdownService = interfaces.MarkdownService

// IntegrityService exports the content-integrity service contract.
type IntegrityService = interfaces.IntegrityService

// CatalogService exports the article catalog service contract.
type CatalogService = interfaces.CatalogService

// SearchService exports the full-text search service contract.
type SearchService = interfaces.SearchService

// Document exports the parsed document DTO.
type Document = interfaces.Document

// FrontMatter exports the parsed front-matter DTO.
type FrontMatter = interfaces.FrontMatter

// Report exports the integrity report DTO.
type Report = interfaces.Report

// Issue exports a single integrity finding.
type Issue = interfaces.Issue

// ArticleRecord exports the catalog projection of a document.
type ArticleRecord = interfaces.ArticleRecord

// SearchHit exports a single ranked search match.
type SearchHit = interfaces.SearchHit

// CheckOptions exports the integrity check options.
type CheckOptions = interfaces.CheckOptions

// LoadOptions exports the corpus load options.
type LoadOptions = interfaces.LoadOptions

// CatalogSyncOptions exports the catalog sync options.
type CatalogSyncOptions = interfaces.CatalogSyncOptions

// CatalogSyncResult exports the catalog sync summary.
type CatalogSyncResult = interfaces.CatalogSyncResult

// Module represents the top level corpus runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a corpus module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Markdown returns the configured markdown service.
func (m *Module) Markdown() MarkdownService {
	return m.container.MarkdownService()
}

// Integrity returns the configured integrity service, nil when the feature is disabled.
func (m *Module) Integrity() IntegrityService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.IntegrityService()
}

// Catalog returns the configured catalog service, nil when the feature is disabled.
func (m *Module) Catalog() CatalogService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.CatalogService()
}

// Search returns the configured search service, nil when the feature is disabled.
func (m *Module) Search() SearchService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.SearchService()
}

// RegisterCommands registers the corpus command handlers on the supplied
// registry when the command layer is enabled.
func (m *Module) RegisterCommands(registry corpuscmd.CommandRegistry, opts ...corpuscmd.Option) (*corpuscmd.HandlerSet, error) {
	if !m.container.Config.Commands.Enabled {
		return nil, nil
	}

	gates := corpuscmd.FeatureGates{
		IntegrityEnabled: func() bool { return m.container.Config.Features.Integrity },
		CatalogEnabled:   func() bool { return m.container.Config.Features.Catalog },
	}

	return corpuscmd.RegisterCorpusCommands(
		registry,
		m.container.IntegrityService(),
		m.container.MarkdownService(),
		m.container.CatalogService(),
		m.container.LoggerProvider(),
		gates,
		opts...,
	)
}

// Close releases resources owned by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
