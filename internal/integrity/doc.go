// Package integrity runs content checks over a Markdown corpus: front-matter
// completeness, publication chronology, fence language tags, image asset
// paths, math delimiters, and corpus-wide duplicate detection. Rules produce
// issues with a severity so callers can fail a run on errors while still
// surfacing warnings.
package integrity
