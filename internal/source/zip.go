package source

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

// FromZip adapts a zip archive into entries. Only a failure to open the
// archive itself is an error; individual members that cannot be read are
// skipped at Open time, never aborting the whole parse.
func FromZip(r io.ReaderAt, size int64) ([]Entry, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	entries := make([]Entry, 0, len(zr.File))
	for _, member := range zr.File {
		if member.FileInfo().IsDir() {
			continue
		}
		m := member
		entries = append(entries, Entry{
			Path: normalizePath(m.Name),
			Open: func() ([]byte, error) {
				rc, err := m.Open()
				if err != nil {
					return nil, fmt.Errorf("failed to open archive member %s: %w", m.Name, err)
				}
				defer rc.Close()
				data, err := io.ReadAll(rc)
				if err != nil {
					return nil, fmt.Errorf("failed to read archive member %s: %w", m.Name, err)
				}
				return data, nil
			},
		})
	}
	return entries, nil
}

// FromZipFile opens a zip archive on disk and adapts it into entries.
func FromZipFile(path string) ([]Entry, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open archive: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to stat archive: %w", err)
	}
	entries, err := FromZip(f, info.Size())
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return entries, f.Close, nil
}
