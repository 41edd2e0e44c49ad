// Package source turns any supported export container — a zip archive, an
// already-flattened file list, or a directory tree — into one uniform,
// ordered sequence of entries. Downstream stages are path-shape-driven and
// must not care which adapter produced the entries.
package source

// Entry is a single file inside an export, addressed by its relative path.
// Paths are always '/'-joined with no leading slash, regardless of which
// adapter produced them. Entries are read-only; Open may be called more
// than once.
type Entry struct {
	Path string
	Open func() ([]byte, error)
}

// File is a pre-flattened input file, used when the caller already holds
// the export as loose content rather than an archive or directory.
type File struct {
	RelativePath string
	Content      []byte
}

// FromFiles adapts a flattened file list into entries, preserving order.
func FromFiles(files []File) []Entry {
	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		content := f.Content
		entries = append(entries, Entry{
			Path: normalizePath(f.RelativePath),
			Open: func() ([]byte, error) { return content, nil },
		})
	}
	return entries
}

// normalizePath converts separators to '/' and strips any leading slash.
func normalizePath(p string) string {
	out := make([]byte, len(p))
	for i := 0; i < len(p); i++ {
		if p[i] == '\\' {
			out[i] = '/'
		} else {
			out[i] = p[i]
		}
	}
	s := string(out)
	for len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	return s
}
