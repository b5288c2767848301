// Package markdown loads Markdown article files, parses their front-matter,
// and extracts structural outlines used by integrity checks and the catalog.
package markdown
