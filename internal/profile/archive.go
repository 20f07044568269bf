package profile

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
)

// ArchiveName is the file name of the packaged profile the host uploader
// expects.
const ArchiveName = "profile.zip"

// Extensions included in the archive. Anything else under the profile root
// (editor scratch files, archives from earlier runs) is left out.
var archiveExtensions = map[string]bool{
	".txt": true,
	".xml": true,
}

// WriteArchive packages the profile documents under root into a zip archive
// at out.
//
// Entry names are slash-separated paths relative to root, so the archive
// unpacks to the same nls/nodedef/editor layout regardless of where the
// profile tree lived on disk. Hidden directories are skipped entirely and
// only .txt and .xml files are included; in particular a previous archive
// sitting inside root never nests into the next one.
//
// Parameters:
//   - root: Profile tree to package
//   - out: Destination path for the archive
//
// Returns:
//   - error: If the tree cannot be walked or the archive cannot be written
func WriteArchive(root, out string) error {
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !archiveExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return addArchiveEntry(zw, path, filepath.ToSlash(rel))
	})
	if err != nil {
		return fmt.Errorf("packaging profile: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalising archive: %w", err)
	}
	return f.Close()
}

// addArchiveEntry copies one file into the archive under the given entry
// name.
func addArchiveEntry(zw *zip.Writer, path, name string) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("compressing %s: %w", name, err)
	}
	return nil
}
