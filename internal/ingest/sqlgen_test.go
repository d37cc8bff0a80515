package ingest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiflow/docketload/internal/docket"
)

func TestWriteScript(t *testing.T) {
	gen := NewSQLGenerator(testNormalizer())

	doc := &docket.Document{
		Summary: &docket.CaseSummary{CaseNumber: "24-2160"},
		Events: []docket.Event{
			{DateFiled: "04/15/2024", Text: "MOTION to dismiss filed by ACME INC. [1001734848]"},
			{DateFiled: "05/01/2024", Text: "ORDER on plaintiff's motion"},
		},
	}

	var buf bytes.Buffer
	report, err := gen.WriteScript(&buf, doc, "")
	require.NoError(t, err)

	script := buf.String()

	// Case id resolved by natural key at execution time, fatal when absent.
	assert.Contains(t, script, "DO $$")
	assert.Contains(t, script, "SELECT id INTO v_case_id FROM cases WHERE case_number = '24-2160';")
	assert.Contains(t, script, "RAISE EXCEPTION 'Case 24-2160 not found';")

	assert.Equal(t, 2, strings.Count(script, "INSERT INTO docket_entries"))
	assert.Contains(t, script, "'Motion'")
	// Embedded single quotes are doubled.
	assert.Contains(t, script, "ORDER on plaintiff''s motion")

	// Same normalization as the direct path.
	assert.Equal(t, 2, report.EntriesLoaded)
	assert.Equal(t, 1, report.TypeCounts["Motion"])
	assert.Equal(t, 1, report.TypeCounts["Order"])
	assert.Equal(t, "2024-04-15", report.MinDate)
}

func TestWriteScriptNeedsCaseNumber(t *testing.T) {
	gen := NewSQLGenerator(testNormalizer())

	var buf bytes.Buffer
	_, err := gen.WriteScript(&buf, &docket.Document{}, "")
	require.ErrorIs(t, err, ErrCaseNotFound)
}

func TestWriteScriptExplicitCaseNumber(t *testing.T) {
	gen := NewSQLGenerator(testNormalizer())

	var buf bytes.Buffer
	report, err := gen.WriteScript(&buf, &docket.Document{
		Events: []docket.Event{{DateFiled: "04/15/2024", Text: "NOTICE of appearance"}},
	}, "25-0042")
	require.NoError(t, err)
	assert.Equal(t, "25-0042", report.CaseNumber)
	assert.Contains(t, buf.String(), "case_number = '25-0042'")
}
