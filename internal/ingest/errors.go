package ingest

import (
	"errors"
	"fmt"
)

// ErrCaseNotFound aborts the run: every downstream entity needs a case id.
var ErrCaseNotFound = errors.New("case not found")

// Stage identifies where in the pipeline a record failed.
type Stage string

const (
	StageExtraction    Stage = "extraction"
	StageNormalization Stage = "normalization"
	StageParty         Stage = "party"
	StageAttorney      Stage = "attorney"
	StageLink          Stage = "link"
	StageEntry         Stage = "entry"
)

// RecordError is a non-fatal per-record failure. The run continues past it;
// the loader accumulates these and surfaces them in the final report.
type RecordError struct {
	Stage    Stage
	Sequence int    // docket sequence number, 0 for party-level records
	Source   string // enough source text to identify the offending record
	Err      error
}

func (e *RecordError) Error() string {
	if e.Sequence > 0 {
		return fmt.Sprintf("%s: entry %d (%s): %v", e.Stage, e.Sequence, e.Source, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, e.Source, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
