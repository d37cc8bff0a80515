package ingest

import (
	"sort"

	"github.com/lexiflow/docketload/internal/docket"
	"github.com/lexiflow/docketload/pkg/logger"
)

// RunReport aggregates one run's counts and collected errors. It is built
// from the in-memory record list only and has no side effects of its own.
type RunReport struct {
	CaseNumber string
	CaseID     string

	PartiesProcessed  int
	PartiesLinked     int
	AttorneysResolved int

	EntriesProcessed int
	EntriesLoaded    int
	EntriesSkipped   int

	TypeCounts  map[string]int
	filerCounts map[string]int
	MinDate     string
	MaxDate     string

	CacheStats CacheStats
	Errors     []*RecordError
}

// FilerCount is one filer with its entry count.
type FilerCount struct {
	Name  string
	Count int
}

// NewRunReport creates an empty report.
func NewRunReport() *RunReport {
	return &RunReport{
		TypeCounts:  make(map[string]int),
		filerCounts: make(map[string]int),
	}
}

// AddError records a non-fatal per-record failure.
func (r *RunReport) AddError(stage Stage, sequence int, source string, err error) {
	r.Errors = append(r.Errors, &RecordError{
		Stage:    stage,
		Sequence: sequence,
		Source:   source,
		Err:      err,
	})
}

// RecordEntry folds one normalized docket entry into the statistics.
func (r *RunReport) RecordEntry(entry docket.NormalizedEntry) {
	r.EntriesProcessed++
	r.TypeCounts[entry.Type]++
	if entry.FiledBy != nil {
		r.filerCounts[*entry.FiledBy]++
	}
	if entry.DateFiled != nil {
		d := *entry.DateFiled
		if r.MinDate == "" || d < r.MinDate {
			r.MinDate = d
		}
		if r.MaxDate == "" || d > r.MaxDate {
			r.MaxDate = d
		}
	}
}

// TopFilers returns the n most frequent filers, count descending with name
// as the tiebreaker.
func (r *RunReport) TopFilers(n int) []FilerCount {
	filers := make([]FilerCount, 0, len(r.filerCounts))
	for name, count := range r.filerCounts {
		filers = append(filers, FilerCount{Name: name, Count: count})
	}
	sort.Slice(filers, func(i, j int) bool {
		if filers[i].Count != filers[j].Count {
			return filers[i].Count > filers[j].Count
		}
		return filers[i].Name < filers[j].Name
	})
	if len(filers) > n {
		filers = filers[:n]
	}
	return filers
}

// Render writes the summary to the operator log.
func (r *RunReport) Render(log *logger.Logger, topFilers int) {
	log.Info("Run summary",
		"case_number", r.CaseNumber,
		"case_id", r.CaseID,
		"parties_processed", r.PartiesProcessed,
		"parties_linked", r.PartiesLinked,
		"attorneys_resolved", r.AttorneysResolved,
		"entries_processed", r.EntriesProcessed,
		"entries_loaded", r.EntriesLoaded,
		"entries_skipped", r.EntriesSkipped,
		"errors", len(r.Errors),
	)

	for docType, count := range r.TypeCounts {
		log.Info("Entry type", "type", docType, "count", count)
	}
	for _, filer := range r.TopFilers(topFilers) {
		log.Info("Top filer", "name", filer.Name, "count", filer.Count)
	}
	if r.MinDate != "" {
		log.Info("Date range", "from", r.MinDate, "to", r.MaxDate)
	}
	log.Debug("Resolution cache", "hits", r.CacheStats.Hits, "misses", r.CacheStats.Misses)

	for _, recErr := range r.Errors {
		log.Warn("Record error", "stage", string(recErr.Stage), "detail", recErr.Error())
	}
}
