package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lexiflow/docketload/internal/config"
	"github.com/lexiflow/docketload/internal/database"
	"github.com/lexiflow/docketload/internal/docket"
	"github.com/lexiflow/docketload/pkg/logger"
)

// Loader sequences all writes for one run inside a single transaction.
// Per-row failures are collected and the run continues; a connection failure
// or an unresolvable case rolls everything back.
type Loader struct {
	db         *gorm.DB
	cfg        *config.Config
	logger     *logger.Logger
	normalizer *docket.Normalizer
}

// NewLoader creates a new loader instance
func NewLoader(db *gorm.DB, cfg *config.Config, logger *logger.Logger, normalizer *docket.Normalizer) *Loader {
	return &Loader{
		db:         db,
		cfg:        cfg,
		logger:     logger,
		normalizer: normalizer,
	}
}

// errRegionSkipped marks a source region the extractor could not turn into
// a usable record.
var errRegionSkipped = errors.New("record region could not be extracted")

// Run loads the extracted document. caseNumber overrides the export's own
// summary when the document does not self-describe its case. The returned
// report is populated even when the run fails.
func (l *Loader) Run(doc *docket.Document, caseNumber string) (*RunReport, error) {
	report := NewRunReport()
	for _, region := range doc.Skipped {
		report.AddError(StageExtraction, 0, region, errRegionSkipped)
	}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		resolver := NewResolver(tx, NewResolutionCache(), l.cfg.EmailDomain, l.logger)
		linker := NewLinker(tx, l.logger)

		number := caseNumber
		if number == "" && doc.Summary != nil {
			number = doc.Summary.CaseNumber
		}
		if number == "" {
			return fmt.Errorf("%w: source has no case summary and no case number was given", ErrCaseNotFound)
		}
		report.CaseNumber = number

		caseID, err := resolver.ResolveCase(number, doc.Summary)
		if err != nil {
			return err
		}
		report.CaseID = caseID

		l.loadParties(resolver, linker, caseID, doc.Parties, report)
		l.loadEntries(tx, caseID, doc.Events, report)

		report.CacheStats = resolver.Stats()
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("run aborted: %w", err)
	}

	return report, nil
}

// loadParties resolves each party, its attorneys, and the case-party link.
// Failures skip the record and are collected.
func (l *Loader) loadParties(resolver *Resolver, linker *Linker, caseID string, parties []docket.PartyRecord, report *RunReport) {
	for _, party := range parties {
		report.PartiesProcessed++

		partyType := docket.PartyTypeFor(party.Name)
		partyID, err := resolver.ResolveParty(party.Name, partyType)
		if err != nil {
			report.AddError(StageParty, 0, party.Name, err)
			continue
		}

		counselNames := make([]string, 0, len(party.Attorneys))
		for _, attorney := range party.Attorneys {
			counselNames = append(counselNames, attorney.FullName())
			if _, err := resolver.ResolveAttorney(attorney, attorney.Office); err != nil {
				report.AddError(StageAttorney, 0, attorney.FullName(), err)
				continue
			}
			report.AttorneysResolved++
		}

		counselName := counselFor(partyType, counselNames)
		if err := linker.LinkCaseParty(caseID, partyID, party.Role, counselName); err != nil {
			report.AddError(StageLink, 0, party.Name, err)
			continue
		}
		report.PartiesLinked++
	}
}

// counselFor derives the counsel description: the joined attorney names, or
// "Pro Se" for an unrepresented individual, or nil.
func counselFor(partyType string, counselNames []string) *string {
	if len(counselNames) > 0 {
		joined := strings.Join(counselNames, ", ")
		return &joined
	}
	if partyType == docket.PartyIndividual {
		proSe := "Pro Se"
		return &proSe
	}
	return nil
}

// loadEntries normalizes and inserts the docket events in source order,
// assigning 1-based sequence numbers.
func (l *Loader) loadEntries(tx *gorm.DB, caseID string, events []docket.Event, report *RunReport) {
	for i, event := range events {
		sequence := i + 1

		entry, fieldErrs := l.normalizer.NormalizeEvent(sequence, event)
		for _, ferr := range fieldErrs {
			report.AddError(StageNormalization, sequence, sourceContext(event.Text), ferr)
		}
		report.RecordEntry(entry)

		if l.cfg.DuplicatePolicy == config.DuplicateSkip {
			var count int64
			err := tx.Model(&database.DocketEntry{}).
				Where("case_id = ? AND sequence_number = ?", caseID, sequence).
				Count(&count).Error
			if err != nil {
				report.AddError(StageEntry, sequence, sourceContext(event.Text), err)
				continue
			}
			if count > 0 {
				report.EntriesSkipped++
				continue
			}
		}

		row := database.DocketEntry{
			ID:             uuid.NewString(),
			CaseID:         caseID,
			SequenceNumber: entry.SequenceNumber,
			DateFiled:      entry.DateFiled,
			Type:           entry.Type,
			Title:          entry.Title,
			Description:    entry.Description,
			FiledBy:        entry.FiledBy,
			ECFNumber:      entry.ECFNumber,
			Sealed:         false,
			DocLink:        entry.DocLink,
		}
		if err := tx.Create(&row).Error; err != nil {
			report.AddError(StageEntry, sequence, sourceContext(event.Text), err)
			continue
		}
		report.EntriesLoaded++
	}
}

// Preview normalizes the document without touching the store, for dry runs.
func Preview(doc *docket.Document, normalizer *docket.Normalizer, caseNumber string) *RunReport {
	report := NewRunReport()
	for _, region := range doc.Skipped {
		report.AddError(StageExtraction, 0, region, errRegionSkipped)
	}
	report.CaseNumber = caseNumber
	if report.CaseNumber == "" && doc.Summary != nil {
		report.CaseNumber = doc.Summary.CaseNumber
	}

	for _, party := range doc.Parties {
		report.PartiesProcessed++
		report.AttorneysResolved += len(party.Attorneys)
	}
	for i, event := range doc.Events {
		entry, fieldErrs := normalizer.NormalizeEvent(i+1, event)
		for _, ferr := range fieldErrs {
			report.AddError(StageNormalization, i+1, sourceContext(event.Text), ferr)
		}
		report.RecordEntry(entry)
	}
	return report
}

// sourceContext trims raw record text to an identifiable prefix.
func sourceContext(text string) string {
	if len(text) > 80 {
		return text[:80]
	}
	return text
}
