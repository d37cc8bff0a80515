package ingest

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lexiflow/docketload/internal/docket"
)

// SQLGenerator is the alternative output mode: instead of writing to the
// store directly it emits an idempotent script of INSERT statements wrapped
// in a block that resolves the case id by natural key at execution time and
// raises when the case is absent. It shares the normalizers with the direct
// path, so both modes classify and truncate identically.
type SQLGenerator struct {
	normalizer *docket.Normalizer
}

// NewSQLGenerator creates a new generator instance
func NewSQLGenerator(normalizer *docket.Normalizer) *SQLGenerator {
	return &SQLGenerator{normalizer: normalizer}
}

// WriteScript emits the load script for the document's docket events and
// returns the same report the direct path would produce.
func (g *SQLGenerator) WriteScript(w io.Writer, doc *docket.Document, caseNumber string) (*RunReport, error) {
	report := NewRunReport()
	report.CaseNumber = caseNumber
	if report.CaseNumber == "" && doc.Summary != nil {
		report.CaseNumber = doc.Summary.CaseNumber
	}
	if report.CaseNumber == "" {
		return report, fmt.Errorf("%w: source has no case summary and no case number was given", ErrCaseNotFound)
	}

	entries := make([]docket.NormalizedEntry, 0, len(doc.Events))
	for i, event := range doc.Events {
		entry, fieldErrs := g.normalizer.NormalizeEvent(i+1, event)
		for _, ferr := range fieldErrs {
			report.AddError(StageNormalization, i+1, sourceContext(event.Text), ferr)
		}
		report.RecordEntry(entry)
		entries = append(entries, entry)
	}

	var b strings.Builder
	b.WriteString("-- Docket entries load script\n")
	fmt.Fprintf(&b, "-- Case: %s\n", report.CaseNumber)
	fmt.Fprintf(&b, "-- Entries: %d\n", len(entries))
	fmt.Fprintf(&b, "-- Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	b.WriteString("DO $$\n")
	b.WriteString("DECLARE\n")
	b.WriteString("    v_case_id UUID;\n")
	b.WriteString("BEGIN\n")
	fmt.Fprintf(&b, "    SELECT id INTO v_case_id FROM cases WHERE case_number = %s;\n\n", sqlQuote(report.CaseNumber))
	b.WriteString("    IF v_case_id IS NULL THEN\n")
	fmt.Fprintf(&b, "        RAISE EXCEPTION 'Case %s not found';\n", report.CaseNumber)
	b.WriteString("    END IF;\n\n")

	for _, entry := range entries {
		b.WriteString("    INSERT INTO docket_entries (id, case_id, sequence_number, date_filed, type, title, description, filed_by, is_sealed, ecf_number, created_at)\n")
		fmt.Fprintf(&b, "    VALUES (%s, v_case_id, %d, %s, %s, %s, %s, %s, FALSE, %s, CURRENT_TIMESTAMP);\n\n",
			sqlQuote(uuid.NewString()),
			entry.SequenceNumber,
			sqlQuoteNullable(entry.DateFiled),
			sqlQuote(entry.Type),
			sqlQuote(entry.Title),
			sqlQuote(entry.Description),
			sqlQuoteNullable(entry.FiledBy),
			sqlQuoteNullable(entry.ECFNumber),
		)
		report.EntriesLoaded++
	}

	fmt.Fprintf(&b, "    RAISE NOTICE 'Inserted %% docket entries', %d;\n", len(entries))
	b.WriteString("END $$;\n\n")

	b.WriteString("-- Verify insertion\n")
	b.WriteString("SELECT COUNT(*) AS total_entries, MIN(date_filed) AS earliest, MAX(date_filed) AS latest\n")
	b.WriteString("FROM docket_entries\n")
	fmt.Fprintf(&b, "WHERE case_id = (SELECT id FROM cases WHERE case_number = %s);\n", sqlQuote(report.CaseNumber))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return report, fmt.Errorf("failed to write script: %w", err)
	}
	return report, nil
}

// sqlQuote escapes a string as a SQL literal.
func sqlQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// sqlQuoteNullable renders a nullable field as a literal or NULL.
func sqlQuoteNullable(value *string) string {
	if value == nil {
		return "NULL"
	}
	return sqlQuote(*value)
}
