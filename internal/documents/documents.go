// Package documents turns supporting files into classified, keyed documents.
package documents

import (
	"path/filepath"

	"fjacquet/statement-reconciler/internal/fileutils"
	"fjacquet/statement-reconciler/internal/logging"
	"fjacquet/statement-reconciler/internal/models"
)

// Classifier assigns a category from a filename.
type Classifier interface {
	Classify(name string) models.Category
}

// KeyExtractor pulls a reference key out of a filename.
type KeyExtractor interface {
	Extract(text string) (string, bool)
}

// Loader reads files and describes them as documents.
type Loader struct {
	classifier Classifier
	extractor  KeyExtractor
	logger     logging.Logger
}

// NewLoader creates a document loader.
func NewLoader(classifier Classifier, extractor KeyExtractor, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Loader{
		classifier: classifier,
		extractor:  extractor,
		logger:     logger,
	}
}

// Describe builds a document from a file name and its content. Only the base
// name is classified and searched for a key.
func (l *Loader) Describe(name string, content []byte) models.Document {
	base := filepath.Base(name)
	key, ok := l.extractor.Extract(base)
	doc := models.Document{
		Name:     base,
		Category: l.classifier.Classify(base),
		Key:      key,
		HasKey:   ok,
		Content:  content,
	}

	l.logger.Debug("Described document",
		logging.F(logging.FieldDocument, doc.Name),
		logging.F(logging.FieldCategory, string(doc.Category)),
		logging.F(logging.FieldKey, doc.Key))
	return doc
}

// Load expands directories one level deep and reads every file, keeping the
// order in which paths were supplied.
func (l *Loader) Load(paths []string) ([]models.Document, error) {
	files, err := fileutils.ExpandPaths(paths)
	if err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(files))
	for _, file := range files {
		content, err := fileutils.ReadFile(file)
		if err != nil {
			return nil, err
		}
		docs = append(docs, l.Describe(file, content))
	}

	l.logger.Info("Loaded documents", logging.F(logging.FieldCount, len(docs)))
	return docs, nil
}
