package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-corpus/cmd/corpus/internal/bootstrap"
	"github.com/goliatone/go-corpus/internal/commands/corpuscmd"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSync(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("corpus sync: %v", err)
	}
}

func runSync(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("corpus-sync", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	directory := fs.String("directory", ".", "Directory to sync, relative to the content root")
	recursive := fs.Bool("recursive", true, "Descend into nested directories")
	dsn := fs.String("dsn", "", "Catalog database DSN (defaults to the config DSN)")
	dryRun := fs.Bool("dry-run", false, "Preview changes without persisting records")
	deleteOrphaned := fs.Bool("delete-orphaned", false, "Remove records whose source files no longer exist")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:  *contentDir,
		Pattern:     *pattern,
		Recursive:   *recursive,
		DSN:         *dsn,
		WithCatalog: true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	if module.Catalog == nil {
		return fmt.Errorf("catalog service not configured; ensure Features.Catalog is enabled")
	}

	handler := corpuscmd.NewSyncDirectoryHandler(module.Markdown, module.Catalog, module.Logger, corpuscmd.FeatureGates{
		CatalogEnabled: func() bool { return true },
	})
	cmd := corpuscmd.SyncDirectoryCommand{
		Directory:      *directory,
		Pattern:        *pattern,
		DryRun:         *dryRun,
		DeleteOrphaned: *deleteOrphaned,
	}
	ctx := context.Background()
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute sync command: %w", err)
	}

	stats, err := module.Catalog.Stats(ctx)
	if err != nil {
		return fmt.Errorf("catalog stats: %w", err)
	}
	fmt.Fprintf(out, "corpus sync complete: %d articles, %d drafts, %d tags, %d words\n",
		stats.Articles, stats.Drafts, stats.Tags, stats.WordCount)

	return nil
}
