package models

import "path"

// Document is a supporting file supplied alongside the statement.
// Only Name is inspected; Content is carried untouched to the archive.
type Document struct {
	Name     string
	Category Category
	Key      string
	HasKey   bool
	Content  []byte
}

// ArchiveKey returns the key, or sentinel when the document has none.
func (d Document) ArchiveKey(sentinel string) string {
	if !d.HasKey {
		return sentinel
	}
	return d.Key
}

// ArchivePath is the location of the document inside the export archive:
// <key-or-sentinel>/<category>/<name>.
func (d Document) ArchivePath(sentinel string) string {
	return path.Join(d.ArchiveKey(sentinel), string(d.Category), d.Name)
}

// MatchesKey reports whether this document supports a statement row with the
// given key. The document key only has to contain the row key.
func (d Document) MatchesKey(rowKey string) bool {
	return d.HasKey && rowKey != "" && containsKey(d.Key, rowKey)
}
