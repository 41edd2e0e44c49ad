package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FromDir adapts a directory tree into entries. Traversal is depth-first
// and each entry's path is the '/'-joined path relative to root, so the
// result is shape-identical to an archive's internal paths. Subtrees that
// cannot be listed are skipped; only a failure to open the root itself is
// an error.
func FromDir(root string) ([]Entry, error) {
	// ReadDir rather than Stat: a root that exists but cannot be listed
	// must surface as the container-level error, not an empty walk.
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("failed to open export directory: %w", err)
	}

	var entries []Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree: skip it, keep walking.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		full := path
		entries = append(entries, Entry{
			Path: normalizePath(filepath.ToSlash(rel)),
			Open: func() ([]byte, error) { return os.ReadFile(full) },
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk export directory: %w", err)
	}
	return entries, nil
}
