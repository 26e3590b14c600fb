// Package reconciler joins statement rows to supporting documents by reference key
// and reports, per row, which required document categories are present or missing.
package reconciler

import (
	"fjacquet/statement-reconciler/internal/logging"
	"fjacquet/statement-reconciler/internal/models"
)

// KeyExtractor pulls a reference key from free text.
type KeyExtractor interface {
	Extract(text string) (string, bool)
}

// Engine reconciles one batch at a time. It keeps no state between calls, so a
// single Engine can serve independent batches concurrently.
type Engine struct {
	extractor KeyExtractor
	logger    logging.Logger
}

// NewEngine creates an Engine.
func NewEngine(extractor KeyExtractor, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Engine{extractor: extractor, logger: logger}
}

// Reconcile returns one result per row, in row order.
//
// A document supports a row when the document has a key and that key contains
// the row key as a substring, so "NF0012A" supports "NF0012". The scan is
// rows × documents; batches are small enough that no index is built.
func (e *Engine) Reconcile(rows []models.StatementRow, docs []models.Document) []models.ReconciliationResult {
	results := make([]models.ReconciliationResult, 0, len(rows))
	for i, row := range rows {
		result := e.reconcileRow(row, docs)
		e.logger.Debug("Statement row reconciled",
			logging.Field{Key: logging.FieldRow, Value: i},
			logging.Field{Key: logging.FieldKey, Value: result.Key},
			logging.Field{Key: "found", Value: len(result.Found)},
			logging.Field{Key: "missing", Value: len(result.Missing)})
		results = append(results, result)
	}
	return results
}

func (e *Engine) reconcileRow(row models.StatementRow, docs []models.Document) models.ReconciliationResult {
	result := models.ReconciliationResult{
		Date:        row.Date,
		Description: row.Description,
		Amount:      row.Amount,
	}

	key, ok := e.extractor.Extract(row.Description)
	if !ok {
		result.Missing = models.RequiredCategories()
		return result
	}
	result.Key = key
	result.HasKey = true

	present := make(map[models.Category]bool)
	for _, doc := range docs {
		if !doc.MatchesKey(key) {
			continue
		}
		result.MatchedDocuments = append(result.MatchedDocuments, doc.Name)
		if doc.Category.IsRequired() {
			present[doc.Category] = true
		}
	}

	for _, category := range models.RequiredCategories() {
		if present[category] {
			result.Found = append(result.Found, category)
		} else {
			result.Missing = append(result.Missing, category)
		}
	}
	return result
}

// Summarize computes run statistics for results produced from docs.
func Summarize(results []models.ReconciliationResult, docs []models.Document) models.ReconciliationStats {
	var stats models.ReconciliationStats
	used := make(map[int]bool)
	for _, r := range results {
		stats.Add(r)
		if !r.HasKey {
			continue
		}
		for i, doc := range docs {
			if doc.MatchesKey(r.Key) {
				used[i] = true
			}
		}
	}
	stats.Documents = len(docs)
	stats.Orphans = len(docs) - len(used)
	return stats
}
