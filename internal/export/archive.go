package export

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"

	"fjacquet/statement-reconciler/internal/models"
)

// writeArchive stores every document at <key-or-sentinel>/<category>/<name>.
// Colliding paths get a numeric suffix before the extension.
func writeArchive(w io.Writer, docs []models.Document, sentinel string) error {
	zw := zip.NewWriter(w)
	used := make(map[string]int, len(docs))

	for _, doc := range docs {
		name := uniquePath(doc.ArchivePath(sentinel), used)
		entry, err := zw.CreateHeader(&zip.FileHeader{
			Name:   name,
			Method: zip.Deflate,
		})
		if err != nil {
			return fmt.Errorf("error adding %s to archive: %w", name, err)
		}
		if _, err := entry.Write(doc.Content); err != nil {
			return fmt.Errorf("error writing %s to archive: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("error finalizing archive: %w", err)
	}
	return nil
}

func uniquePath(p string, used map[string]int) string {
	n := used[p]
	used[p] = n + 1
	if n == 0 {
		return p
	}

	ext := path.Ext(p)
	base := strings.TrimSuffix(p, ext)
	for {
		n++
		candidate := fmt.Sprintf("%s (%d)%s", base, n, ext)
		if used[candidate] == 0 {
			used[candidate] = 1
			used[p] = n
			return candidate
		}
	}
}
