package di

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-corpus/internal/catalog"
	"github.com/goliatone/go-corpus/internal/integrity"
	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/internal/logging/console"
	"github.com/goliatone/go-corpus/internal/logging/gologger"
	"github.com/goliatone/go-corpus/internal/markdown"
	"github.com/goliatone/go-corpus/internal/runtimeconfig"
	"github.com/goliatone/go-corpus/internal/search"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

// Container wires module dependencies from runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	bunDB  *bun.DB
	ownsDB bool

	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider

	articleRepo catalog.ArticleRepository

	markdownSvc  *markdown.Service
	integritySvc interfaces.IntegrityService
	catalogSvc   interfaces.CatalogService
	searchSvc    interfaces.SearchService
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the default logger provider binding.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies an externally managed database connection. The container
// will not close connections it did not open.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithCacheTTL overrides the default cache entry lifetime.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Container) {
		c.cacheTTL = ttl
	}
}

// WithArticleRepository overrides the default article repository binding.
func WithArticleRepository(repo catalog.ArticleRepository) Option {
	return func(c *Container) {
		c.articleRepo = repo
	}
}

// WithMarkdownService overrides the default markdown service binding.
func WithMarkdownService(svc *markdown.Service) Option {
	return func(c *Container) {
		c.markdownSvc = svc
	}
}

// WithIntegrityService overrides the default integrity service binding.
func WithIntegrityService(svc interfaces.IntegrityService) Option {
	return func(c *Container) {
		c.integritySvc = svc
	}
}

// WithCatalogService overrides the default catalog service binding.
func WithCatalogService(svc interfaces.CatalogService) Option {
	return func(c *Container) {
		c.catalogSvc = svc
	}
}

// WithSearchService overrides the default search service binding.
func WithSearchService(svc interfaces.SearchService) Option {
	return func(c *Container) {
		c.searchSvc = svc
	}
}

// NewContainer validates cfg and wires every enabled service. Feature toggles
// leave the corresponding service nil rather than substituting stubs, so
// callers must consult the feature flags before dereferencing accessors.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cfg.Cache.DefaultTTL,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()

	if err := c.configureMarkdown(); err != nil {
		return nil, err
	}
	if err := c.configureDatabase(); err != nil {
		return nil, err
	}
	if err := c.configureIntegrity(); err != nil {
		return nil, err
	}
	if err := c.configureCatalog(); err != nil {
		return nil, err
	}
	if err := c.configureSearch(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		// ModuleLogger falls back to a no-op logger for nil providers.
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure logger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{})
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureMarkdown() error {
	if c.markdownSvc != nil {
		return nil
	}

	svc, err := markdown.NewService(markdown.Config{
		BasePath:  c.Config.Corpus.ContentDir,
		Pattern:   c.Config.Corpus.Pattern,
		Recursive: c.Config.Corpus.Recursive,
		Parser: interfaces.ParseOptions{
			Extensions: c.Config.Corpus.Parser.Extensions,
			Sanitize:   c.Config.Corpus.Parser.Sanitize,
			HardWraps:  c.Config.Corpus.Parser.HardWraps,
			SafeMode:   c.Config.Corpus.Parser.SafeMode,
		},
	}, nil)
	if err != nil {
		return fmt.Errorf("di: configure markdown service: %w", err)
	}
	c.markdownSvc = svc
	return nil
}

func (c *Container) configureDatabase() error {
	if !c.Config.Features.Catalog || c.bunDB != nil {
		return nil
	}

	driver := strings.TrimSpace(c.Config.Catalog.Driver)
	if driver == "" {
		driver = "sqlite3"
	}

	sqldb, err := sql.Open(driver, c.Config.Catalog.DSN)
	if err != nil {
		return fmt.Errorf("di: open catalog database: %w", err)
	}

	c.bunDB = bun.NewDB(sqldb, sqlitedialect.New())
	c.ownsDB = true

	if _, err := c.bunDB.NewCreateTable().
		Model((*catalog.Article)(nil)).
		IfNotExists().
		Exec(context.Background()); err != nil {
		return fmt.Errorf("di: ensure articles table: %w", err)
	}
	return nil
}

func (c *Container) configureIntegrity() error {
	if !c.Config.Features.Integrity || c.integritySvc != nil {
		return nil
	}

	checker, err := integrity.NewChecker(c.markdownSvc, integrity.Config{
		ExtraLanguages:    c.Config.Integrity.ExtraLanguages,
		FrontMatterSchema: c.Config.Integrity.FrontMatterSchema,
	}, logging.IntegrityLogger(c.loggerProvider))
	if err != nil {
		return fmt.Errorf("di: configure integrity checker: %w", err)
	}
	c.integritySvc = checker
	return nil
}

func (c *Container) configureCatalog() error {
	if !c.Config.Features.Catalog {
		return nil
	}

	if c.articleRepo == nil {
		c.articleRepo = catalog.NewBunArticleRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	}

	if c.catalogSvc == nil {
		svc, err := catalog.NewService(catalog.ServiceConfig{
			Repository: c.articleRepo,
			Logger:     logging.CatalogLogger(c.loggerProvider),
		})
		if err != nil {
			return fmt.Errorf("di: configure catalog service: %w", err)
		}
		c.catalogSvc = svc
	}
	return nil
}

func (c *Container) configureSearch() error {
	if !c.Config.Features.Search || c.searchSvc != nil {
		return nil
	}

	logger := logging.SearchLogger(c.loggerProvider)

	var (
		svc *search.Service
		err error
	)
	if c.Config.Search.Persistent {
		svc, err = search.NewPersistentService(c.Config.Search.IndexPath, logger)
	} else {
		svc, err = search.NewMemoryService(logger)
	}
	if err != nil {
		return fmt.Errorf("di: configure search service: %w", err)
	}
	c.searchSvc = svc
	return nil
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// DB exposes the configured database connection, nil when the catalog feature
// is disabled and no connection was supplied.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// ArticleRepository exposes the configured article repository.
func (c *Container) ArticleRepository() catalog.ArticleRepository {
	return c.articleRepo
}

// MarkdownService returns the configured markdown service.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// IntegrityService returns the configured integrity service, nil when disabled.
func (c *Container) IntegrityService() interfaces.IntegrityService {
	return c.integritySvc
}

// CatalogService returns the configured catalog service, nil when disabled.
func (c *Container) CatalogService() interfaces.CatalogService {
	return c.catalogSvc
}

// SearchService returns the configured search service, nil when disabled.
func (c *Container) SearchService() interfaces.SearchService {
	return c.searchSvc
}

// Close releases resources owned by the container: the search index and any
// database connection the container opened itself.
func (c *Container) Close() error {
	var errs []error
	if c.searchSvc != nil {
		if err := c.searchSvc.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.ownsDB && c.bunDB != nil {
		if err := c.bunDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
