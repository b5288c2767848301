package corpuscmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-corpus/internal/commands"
	"github.com/goliatone/go-corpus/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the corpus command handlers produced by RegisterCorpusCommands.
type HandlerSet struct {
	Check *CheckDirectoryHandler
	Sync  *SyncDirectoryHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	checkHandlerOpts []commands.HandlerOption[CheckDirectoryCommand]
	syncHandlerOpts  []commands.HandlerOption[SyncDirectoryCommand]
}

// WithCheckHandlerOptions forwards options to the CheckDirectoryHandler constructor.
func WithCheckHandlerOptions(opts ...commands.HandlerOption[CheckDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.checkHandlerOpts = append(cfg.checkHandlerOpts, opts...)
	}
}

// WithSyncHandlerOptions forwards options to the SyncDirectoryHandler constructor.
func WithSyncHandlerOptions(opts ...commands.HandlerOption[SyncDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.syncHandlerOpts = append(cfg.syncHandlerOpts, opts...)
	}
}

// RegisterCorpusCommands builds corpus command handlers and registers them
// with the provided registry. A HandlerSet containing the constructed
// handlers is returned so callers can wire additional integrations
// (dispatcher, cron) as needed.
func RegisterCorpusCommands(reg CommandRegistry, integrity interfaces.IntegrityService, markdown interfaces.MarkdownService, catalog interfaces.CatalogService, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if integrity == nil {
		return nil, errors.New("corpus command registration: integrity service is nil")
	}
	if markdown == nil {
		return nil, errors.New("corpus command registration: markdown service is nil")
	}
	if catalog == nil {
		return nil, errors.New("corpus command registration: catalog service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "corpus")

	checkHandler := NewCheckDirectoryHandler(integrity, logger, gates, cfg.checkHandlerOpts...)
	syncHandler := NewSyncDirectoryHandler(markdown, catalog, logger, gates, cfg.syncHandlerOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(checkHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(syncHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Check: checkHandler,
		Sync:  syncHandler,
	}, nil
}

// RegisterSyncCron wires the provided sync handler into a cron registrar
// using the supplied command configuration and message payload. The handler
// is executed with a background context.
func RegisterSyncCron(reg CronRegistrar, handler *SyncDirectoryHandler, cfg command.HandlerConfig, msg SyncDirectoryCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
