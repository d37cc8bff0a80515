package docket

import (
	"strings"
)

// Markers recognized by the fallback scanner. The attribute layout inside
// each marker matches the strict parser's element names.
const (
	markerStub     = "<stub "
	markerParty    = "<party "
	markerAttorney = "<attorney "
	markerEvent    = "<docketText "
)

var entityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&#39;", "'",
	"&amp;", "&",
)

// parseScan extracts records by scanning for literal element markers and
// attr="value" pairs. It never fails: regions that do not match are skipped.
// Attribute scans are bounded to each element's own open tag so a missing
// attribute never picks up a later element's value.
func (e *Extractor) parseScan(data []byte) *Document {
	text := string(data)
	doc := &Document{}

	if section, ok := sectionAfter(text, markerStub); ok {
		tag := openTag(section)
		doc.Summary = &CaseSummary{
			CaseNumber:   scanAttr(tag, "caseNumber"),
			DateFiled:    scanAttr(tag, "dateFiled"),
			NatureOfSuit: scanAttr(tag, "natureOfSuit"),
			ShortTitle:   scanAttr(tag, "shortTitle"),
			OrigCourt:    scanAttr(tag, "origCourt"),
		}
	}

	partySections := strings.Split(text, markerParty)
	for _, section := range partySections[1:] {
		tag := openTag(section)
		party := PartyRecord{
			Name: scanAttr(tag, "info"),
			Role: scanAttr(tag, "type"),
		}
		if party.Name == "" {
			party.Name = scanAttr(tag, "name")
		}

		for _, attSection := range strings.Split(section, markerAttorney)[1:] {
			attTag := openTag(attSection)
			attorney := AttorneyRecord{
				FirstName:     scanAttr(attTag, "firstName"),
				MiddleName:    scanAttr(attTag, "middleName"),
				LastName:      scanAttr(attTag, "lastName"),
				Email:         scanAttr(attTag, "email"),
				BusinessPhone: scanAttr(attTag, "businessPhone"),
				PersonalPhone: scanAttr(attTag, "personalPhone"),
				Address1:      scanAttr(attTag, "address1"),
				City:          scanAttr(attTag, "city"),
				State:         scanAttr(attTag, "state"),
				Zip:           scanAttr(attTag, "zip"),
				Office:        scanAttr(attTag, "office"),
			}
			if attorney.FullName() != "" {
				party.Attorneys = append(party.Attorneys, attorney)
			}
		}

		doc.Parties = append(doc.Parties, party)
	}

	for _, section := range strings.Split(text, markerEvent)[1:] {
		tag := openTag(section)
		doc.Events = append(doc.Events, Event{
			DateFiled: scanAttr(tag, "dateFiled"),
			Text:      scanAttr(tag, "text"),
			DocLink:   scanAttr(tag, "docLink"),
		})
	}

	return doc
}

// openTag truncates a scanned region at the end of its element's open tag,
// the first '>' outside a quoted attribute value. Regions with no closing
// '>' are returned whole.
func openTag(section string) string {
	inQuote := false
	for i := 0; i < len(section); i++ {
		switch section[i] {
		case '"':
			inQuote = !inQuote
		case '>':
			if !inQuote {
				return section[:i]
			}
		}
	}
	return section
}

// sectionAfter returns the text following the first occurrence of marker.
func sectionAfter(text, marker string) (string, bool) {
	idx := strings.Index(text, marker)
	if idx == -1 {
		return "", false
	}
	return text[idx+len(marker):], true
}

// scanAttr extracts the value of attr="..." from a scanned region, with XML
// entities unescaped so both parse stages yield identical strings.
func scanAttr(section, name string) string {
	marker := name + `="`
	start := strings.Index(section, marker)
	if start == -1 {
		return ""
	}
	start += len(marker)
	end := strings.Index(section[start:], `"`)
	if end == -1 {
		return ""
	}
	return entityReplacer.Replace(section[start : start+end])
}
