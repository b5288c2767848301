// Package catalog persists a queryable index of corpus articles. The index is
// derived entirely from files on disk: sync upserts records keyed by slug,
// uses content checksums to skip unchanged files, and can prune records whose
// source files disappeared.
package catalog
