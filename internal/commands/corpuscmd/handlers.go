package corpuscmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-corpus/internal/commands"
	"github.com/goliatone/go-corpus/internal/logging"
	"github.com/goliatone/go-corpus/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	checkOperation = "integrity.check_directory"
	syncOperation  = "catalog.sync_directory"
)

var (
	// ErrIntegrityFeatureDisabled is returned when the integrity feature flag is disabled at runtime.
	ErrIntegrityFeatureDisabled = errors.New("corpus command: integrity feature disabled")
	// ErrCatalogFeatureDisabled is returned when the catalog feature flag is disabled at runtime.
	ErrCatalogFeatureDisabled = errors.New("corpus command: catalog feature disabled")
)

var (
	_ command.Commander[CheckDirectoryCommand] = (*CheckDirectoryHandler)(nil)
	_ command.Commander[SyncDirectoryCommand]  = (*SyncDirectoryHandler)(nil)
)

// CheckDirectoryHandler runs corpus integrity checks via the shared command
// handler foundation. Execution fails when the report contains errors so bus
// and cron callers observe broken corpora.
type CheckDirectoryHandler struct {
	inner *commands.Handler[CheckDirectoryCommand]
}

// NewCheckDirectoryHandler creates a handler bound to the supplied integrity service.
func NewCheckDirectoryHandler(service interfaces.IntegrityService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[CheckDirectoryCommand]) *CheckDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CheckDirectoryCommand) error {
		if !gates.integrityEnabled() {
			return ErrIntegrityFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		report, err := service.CheckDirectory(ctx, msg.Directory, interfaces.CheckOptions{
			Pattern:   msg.Pattern,
			Recursive: msg.Recursive,
		})
		if err != nil {
			return err
		}

		errCount, warnCount := report.Counts()
		logging.WithFields(baseLogger, map[string]any{
			"documents": report.Documents,
			"errors":    errCount,
			"warnings":  warnCount,
		}).Info("corpus.command.check_directory.completed")

		if report.HasErrors() {
			return fmt.Errorf("corpus check found %d errors in %d documents", errCount, report.Documents)
		}
		if msg.FailOnWarnings && warnCount > 0 {
			return fmt.Errorf("corpus check found %d warnings in %d documents", warnCount, report.Documents)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CheckDirectoryCommand]{
		commands.WithLogger[CheckDirectoryCommand](baseLogger),
		commands.WithOperation[CheckDirectoryCommand](checkOperation),
		commands.WithMessageFields(func(msg CheckDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Recursive != nil {
				fields["recursive"] = *msg.Recursive
			}
			if msg.FailOnWarnings {
				fields["fail_on_warnings"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[CheckDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CheckDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CheckDirectoryCommand].
func (h *CheckDirectoryHandler) Execute(ctx context.Context, msg CheckDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SyncDirectoryHandler orchestrates catalog sync workflows via the shared
// command handler foundation.
type SyncDirectoryHandler struct {
	inner *commands.Handler[SyncDirectoryCommand]
}

// NewSyncDirectoryHandler creates a handler bound to the supplied markdown and catalog services.
func NewSyncDirectoryHandler(markdown interfaces.MarkdownService, catalog interfaces.CatalogService, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[SyncDirectoryCommand]) *SyncDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SyncDirectoryCommand) error {
		if !gates.catalogEnabled() {
			return ErrCatalogFeatureDisabled
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		docs, err := markdown.LoadDirectory(ctx, msg.Directory, interfaces.LoadOptions{
			Pattern:   msg.Pattern,
			Recursive: msg.Recursive,
		})
		if err != nil {
			return err
		}

		result, err := catalog.Sync(ctx, docs, interfaces.CatalogSyncOptions{
			DryRun:         msg.DryRun,
			DeleteOrphaned: msg.DeleteOrphaned,
		})
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"created_count":  result.Created,
				"updated_count":  result.Updated,
				"skipped_count":  result.Skipped,
				"deleted_count":  result.Deleted,
				"error_count":    len(result.Errors),
				"dry_run":        msg.DryRun,
				"delete_orphans": msg.DeleteOrphaned,
			}).Info("corpus.command.sync_directory.completed")
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[SyncDirectoryCommand]{
		commands.WithLogger[SyncDirectoryCommand](baseLogger),
		commands.WithOperation[SyncDirectoryCommand](syncOperation),
		commands.WithMessageFields(func(msg SyncDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Recursive != nil {
				fields["recursive"] = *msg.Recursive
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			if msg.DeleteOrphaned {
				fields["delete_orphaned"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SyncDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SyncDirectoryCommand].
func (h *SyncDirectoryHandler) Execute(ctx context.Context, msg SyncDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
