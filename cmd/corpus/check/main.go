package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-corpus/cmd/corpus/internal/bootstrap"
	"github.com/goliatone/go-corpus/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runCheck(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("corpus check: %v", err)
	}
}

func runCheck(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("corpus-check", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	directory := fs.String("directory", ".", "Directory to check, relative to the content root")
	recursive := fs.Bool("recursive", true, "Descend into nested directories")
	languages := fs.String("languages", "", "Comma separated list of extra fence languages to accept")
	schemaPath := fs.String("schema", "", "Path to a JSON schema applied to document front-matter")
	failOnWarnings := fs.Bool("fail-on-warnings", false, "Treat warnings as failures")
	jsonOutput := fs.Bool("json", false, "Emit the report as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:     *contentDir,
		Pattern:        *pattern,
		Recursive:      *recursive,
		ExtraLanguages: bootstrap.SplitList(*languages),
		SchemaPath:     *schemaPath,
		WithIntegrity:  true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Close()

	if module.Integrity == nil {
		return fmt.Errorf("integrity service not configured; ensure Features.Integrity is enabled")
	}

	report, err := module.Integrity.CheckDirectory(context.Background(), *directory, interfaces.CheckOptions{})
	if err != nil {
		return fmt.Errorf("check directory: %w", err)
	}

	if err := printReport(out, report, *jsonOutput); err != nil {
		return err
	}

	errCount, warnCount := report.Counts()
	if errCount > 0 {
		return fmt.Errorf("%d integrity errors across %d documents", errCount, report.Documents)
	}
	if *failOnWarnings && warnCount > 0 {
		return fmt.Errorf("%d integrity warnings across %d documents", warnCount, report.Documents)
	}

	fmt.Fprintf(out, "corpus check passed: %d documents, %d warnings\n", report.Documents, warnCount)
	return nil
}

func printReport(out io.Writer, report *interfaces.Report, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	for _, issue := range report.Issues {
		location := issue.Path
		if issue.Line > 0 {
			location = fmt.Sprintf("%s:%d", issue.Path, issue.Line)
		}
		fmt.Fprintf(out, "%s %s [%s] %s\n", issue.Severity, location, issue.Rule, issue.Message)
	}
	return nil
}
