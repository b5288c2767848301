package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-corpus/cmd/corpus/internal/bootstrap"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSearch(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("corpus search: %v", err)
	}
}

func runSearch(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("corpus-search", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	indexPath := fs.String("index-path", "", "Persist the search index at this path instead of in memory")
	limit := fs.Int("limit", 10, "Maximum number of hits to return")
	noReindex := fs.Bool("no-reindex", false, "Skip reindexing and query the existing index")

	if err := fs.Parse(args); err != nil {
		return err
	}

	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  true,
		IndexPath:  *indexPath,
		WithSearch: true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	if module.Search == nil {
		return fmt.Errorf("search service not configured; ensure Features.Search is enabled")
	}

	ctx := context.Background()

	if !*noReindex {
		docs, err := module.Markdown.LoadDirectory(ctx, ".", interfaces.LoadOptions{})
		if err != nil {
			return fmt.Errorf("load directory: %w", err)
		}
		if err := module.Search.Index(ctx, docs); err != nil {
			return fmt.Errorf("index documents: %w", err)
		}
	}

	hits, err := module.Search.Search(ctx, query, *limit)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if len(hits) == 0 {
		fmt.Fprintln(out, "no matches")
		return nil
	}
	for _, hit := range hits {
		fmt.Fprintf(out, "%.4f %s %s\n", hit.Score, hit.Path, hit.Title)
	}
	return nil
}
