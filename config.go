package corpus

import "github.com/goliatone/go-corpus/internal/runtimeconfig"

var (
	ErrCorpusContentDirRequired = runtimeconfig.ErrCorpusContentDirRequired
	ErrCatalogDSNRequired       = runtimeconfig.ErrCatalogDSNRequired
	ErrSearchIndexPathRequired  = runtimeconfig.ErrSearchIndexPathRequired
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	CorpusConfig    = runtimeconfig.CorpusConfig
	ParserConfig    = runtimeconfig.ParserConfig
	IntegrityConfig = runtimeconfig.IntegrityConfig
	CatalogConfig   = runtimeconfig.CatalogConfig
	SearchConfig    = runtimeconfig.SearchConfig
	CacheConfig     = runtimeconfig.CacheConfig
	Features        = runtimeconfig.Features
	CommandsConfig  = runtimeconfig.CommandsConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
