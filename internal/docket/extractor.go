package docket

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/lexiflow/docketload/pkg/logger"
)

// Extractor pulls case, party, and docket-event records out of a raw export.
// It parses the document as XML first; court exports are frequently a single
// unbroken line with malformed nesting, so on a parse failure it falls back
// to scanning for literal element markers. Both paths produce the same
// record shapes.
type Extractor struct {
	logger *logger.Logger
}

// NewExtractor creates a new extractor instance
func NewExtractor(logger *logger.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract parses the export and returns its records in source order.
// Docket events with no text are dropped.
func (e *Extractor) Extract(data []byte) (*Document, error) {
	doc, err := e.parseStrict(data)
	if err != nil {
		e.logger.Warn("Structured parse failed, falling back to token scan", "error", err)
		doc = e.parseScan(data)
	}

	if doc.Summary == nil && len(doc.Parties) == 0 && len(doc.Events) == 0 {
		return nil, fmt.Errorf("document yielded no records")
	}

	// A party region without a name cannot be resolved downstream. Drop it
	// but keep its context so the run report can count the loss.
	keptParties := doc.Parties[:0]
	for _, party := range doc.Parties {
		if party.Name == "" {
			doc.Skipped = append(doc.Skipped,
				fmt.Sprintf("party role=%q attorneys=%d has no name", party.Role, len(party.Attorneys)))
			continue
		}
		keptParties = append(keptParties, party)
	}
	doc.Parties = keptParties
	if len(doc.Skipped) > 0 {
		e.logger.Warn("Skipped unextractable party regions", "count", len(doc.Skipped))
	}

	kept := doc.Events[:0]
	dropped := 0
	for _, ev := range doc.Events {
		if ev.Text == "" {
			dropped++
			continue
		}
		kept = append(kept, ev)
	}
	doc.Events = kept
	if dropped > 0 {
		e.logger.Debug("Dropped docket events with no text", "count", dropped)
	}

	return doc, nil
}

// parseStrict walks the document as well-formed XML.
func (e *Extractor) parseStrict(data []byte) (*Document, error) {
	doc := &Document{}
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var currentParty *PartyRecord

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xml parse error: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "stub":
				doc.Summary = &CaseSummary{
					CaseNumber:   attrValue(t, "caseNumber"),
					DateFiled:    attrValue(t, "dateFiled"),
					NatureOfSuit: attrValue(t, "natureOfSuit"),
					ShortTitle:   attrValue(t, "shortTitle"),
					OrigCourt:    attrValue(t, "origCourt"),
				}
			case "party":
				doc.Parties = append(doc.Parties, PartyRecord{
					Name: firstAttrValue(t, "info", "name"),
					Role: attrValue(t, "type"),
				})
				currentParty = &doc.Parties[len(doc.Parties)-1]
			case "attorney":
				if currentParty == nil {
					continue
				}
				currentParty.Attorneys = append(currentParty.Attorneys, AttorneyRecord{
					FirstName:     attrValue(t, "firstName"),
					MiddleName:    attrValue(t, "middleName"),
					LastName:      attrValue(t, "lastName"),
					Email:         attrValue(t, "email"),
					BusinessPhone: attrValue(t, "businessPhone"),
					PersonalPhone: attrValue(t, "personalPhone"),
					Address1:      attrValue(t, "address1"),
					City:          attrValue(t, "city"),
					State:         attrValue(t, "state"),
					Zip:           attrValue(t, "zip"),
					Office:        attrValue(t, "office"),
				})
			case "docketText":
				doc.Events = append(doc.Events, Event{
					DateFiled: attrValue(t, "dateFiled"),
					Text:      attrValue(t, "text"),
					DocLink:   attrValue(t, "docLink"),
				})
			}
		case xml.EndElement:
			if t.Name.Local == "party" {
				currentParty = nil
			}
		}
	}

	return doc, nil
}

// attrValue returns the named attribute of an element, or "".
func attrValue(el xml.StartElement, name string) string {
	for _, attr := range el.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// firstAttrValue returns the first of the named attributes that is present.
// Exports label the party name either info= or name= depending on vintage.
func firstAttrValue(el xml.StartElement, names ...string) string {
	for _, name := range names {
		if v := attrValue(el, name); v != "" {
			return v
		}
	}
	return ""
}
