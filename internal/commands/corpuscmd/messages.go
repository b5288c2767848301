package corpuscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	checkDirectoryMessageType = "corpus.integrity.check_directory"
	syncDirectoryMessageType  = "corpus.catalog.sync_directory"
)

// CheckDirectoryCommand triggers an integrity run over every Markdown file
// under the provided Directory. Options map directly onto
// interfaces.CheckOptions.
type CheckDirectoryCommand struct {
	// Directory selects the filesystem path (relative to the corpus root) to check.
	Directory string `json:"directory"`
	// Pattern overrides the configured file glob, e.g. "*.mdx".
	Pattern string `json:"pattern,omitempty"`
	// Recursive overrides the configured directory recursion when non-nil.
	Recursive *bool `json:"recursive,omitempty"`
	// FailOnWarnings treats warnings as failures when deciding the command outcome.
	FailOnWarnings bool `json:"fail_on_warnings,omitempty"`
}

// Type implements command.Message.
func (CheckDirectoryCommand) Type() string { return checkDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd CheckDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("corpus.integrity.check_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}

// SyncDirectoryCommand orchestrates a catalog sync run for the provided
// Directory, applying dry-run and orphan deletion flags consistent with
// interfaces.CatalogSyncOptions.
type SyncDirectoryCommand struct {
	// Directory selects the filesystem path (relative to the corpus root) to sync from.
	Directory string `json:"directory"`
	// Pattern overrides the configured file glob, e.g. "*.mdx".
	Pattern string `json:"pattern,omitempty"`
	// Recursive overrides the configured directory recursion when non-nil.
	Recursive *bool `json:"recursive,omitempty"`
	// DryRun reports what the sync would change without persisting anything.
	DryRun bool `json:"dry_run,omitempty"`
	// DeleteOrphaned removes catalog records without matching files when true.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
}

// Type implements command.Message.
func (SyncDirectoryCommand) Type() string { return syncDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd SyncDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("corpus.catalog.sync_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
