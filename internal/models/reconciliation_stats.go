package models

import (
	"fjacquet/statement-reconciler/internal/logging"
)

// ReconciliationStats summarizes one run.
type ReconciliationStats struct {
	Total     int // statement rows processed
	Complete  int // rows with every required category
	Partial   int // rows with some but not all categories
	Unmatched int // rows with a key but no supporting document
	NoKey     int // rows without an extractable key
	Documents int // documents supplied
	Orphans   int // documents that matched no row
}

// Add accounts for one result.
func (s *ReconciliationStats) Add(r ReconciliationResult) {
	s.Total++
	switch {
	case !r.HasKey:
		s.NoKey++
	case r.IsComplete():
		s.Complete++
	case len(r.Found) > 0:
		s.Partial++
	default:
		s.Unmatched++
	}
}

// CompletionRate is the share of complete rows as a percentage.
func (s ReconciliationStats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0.0
	}
	return float64(s.Complete) / float64(s.Total) * 100.0
}

// LogSummary logs the statistics at info level.
func (s ReconciliationStats) LogSummary(logger logging.Logger) {
	if logger == nil {
		return
	}

	logger.Info("Reconciliation summary",
		logging.Field{Key: "total_rows", Value: s.Total},
		logging.Field{Key: "complete", Value: s.Complete},
		logging.Field{Key: "partial", Value: s.Partial},
		logging.Field{Key: "unmatched", Value: s.Unmatched},
		logging.Field{Key: "no_key", Value: s.NoKey},
		logging.Field{Key: "documents", Value: s.Documents},
		logging.Field{Key: "orphan_documents", Value: s.Orphans},
		logging.Field{Key: "completion_rate", Value: s.CompletionRate()},
	)
}
