package docket

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Party types inferred from name cues.
const (
	PartyIndividual  = "Individual"
	PartyCorporation = "Corporation"
)

// corporateCues mark a party name as a corporation when present.
var corporateCues = []string{"INC", "CLUB"}

var (
	reFiledBy       = regexp.MustCompile(`(?i)\bby\s+([^.]+?)(?:\.|$)`)
	reParenthetical = regexp.MustCompile(`\s*\([^)]*\)\s*`)
	reECF           = regexp.MustCompile(`\[(\d{10,})\]`)
	reECFToken      = regexp.MustCompile(`\[\d{10,}\]`)
	reCaseToken     = regexp.MustCompile(`\[\d{2}-\d{4}\]`)
)

// ParseDate converts MM/DD/YYYY to YYYY-MM-DD. Callers treat a failure as a
// null field, never as a fatal error.
func ParseDate(dateStr string) (string, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return "", fmt.Errorf("empty date")
	}
	t, err := time.Parse("01/02/2006", dateStr)
	if err != nil {
		return "", fmt.Errorf("unable to parse date %q: %w", dateStr, err)
	}
	return t.Format("2006-01-02"), nil
}

// ExtractFiledBy pulls the filer from a "by <name>" pattern, up to the first
// period, with parenthetical asides stripped. Returns "" when absent.
func ExtractFiledBy(text string, max int) string {
	match := reFiledBy.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	filedBy := strings.TrimSpace(match[1])
	filedBy = strings.TrimSpace(reParenthetical.ReplaceAllString(filedBy, " "))
	return truncateRunes(filedBy, max)
}

// ExtractECF returns the first bracketed run of ten or more digits, e.g.
// [1001734848], or "" when absent.
func ExtractECF(text string) string {
	match := reECF.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1]
}

// ShortenTitle strips bracketed case-number and ECF tokens, collapses
// whitespace, and truncates to max with an ellipsis marker.
func ShortenTitle(text string, max int) string {
	cleaned := reCaseToken.ReplaceAllString(text, "")
	cleaned = reECFToken.ReplaceAllString(cleaned, "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if len(cleaned) > max {
		return truncateRunes(cleaned, max-3) + "..."
	}
	return cleaned
}

// truncateRunes cuts s to at most max bytes without splitting a rune.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// PartyTypeFor infers Individual vs Corporation from substring cues in the
// party name.
func PartyTypeFor(name string) string {
	upper := strings.ToUpper(name)
	for _, cue := range corporateCues {
		if strings.Contains(upper, cue) {
			return PartyCorporation
		}
	}
	return PartyIndividual
}

// SynthesizeEmail derives a deterministic email for an attorney record that
// carries none, so repeated runs resolve to the same natural key.
func SynthesizeEmail(fullName, domain string) string {
	local := strings.ToLower(strings.Join(strings.Fields(fullName), "."))
	return local + "@" + domain
}

// NormalizedEntry is a docket event with all derived fields attached, ready
// for loading or script generation.
type NormalizedEntry struct {
	SequenceNumber int
	DateFiled      *string
	Type           string
	Title          string
	Description    string
	FiledBy        *string
	ECFNumber      *string
	DocLink        string
}

// Normalizer applies the field normalizers to extracted events with the
// configured truncation limits and classification rules.
type Normalizer struct {
	classifier *Classifier
	titleMax   int
	filerMax   int
}

// NewNormalizer creates a new normalizer instance
func NewNormalizer(classifier *Classifier, titleMax, filerMax int) *Normalizer {
	return &Normalizer{
		classifier: classifier,
		titleMax:   titleMax,
		filerMax:   filerMax,
	}
}

// NormalizeEvent derives the typed fields for one docket event. Field-level
// parse failures null the field and are returned for counting; the entry is
// kept either way.
func (n *Normalizer) NormalizeEvent(sequence int, ev Event) (NormalizedEntry, []error) {
	entry := NormalizedEntry{
		SequenceNumber: sequence,
		Type:           n.classifier.Classify(ev.Text),
		Title:          ShortenTitle(ev.Text, n.titleMax),
		Description:    ev.Text,
		DocLink:        ev.DocLink,
	}

	var errs []error
	if ev.DateFiled != "" {
		if parsed, err := ParseDate(ev.DateFiled); err != nil {
			errs = append(errs, err)
		} else {
			entry.DateFiled = &parsed
		}
	}
	if filedBy := ExtractFiledBy(ev.Text, n.filerMax); filedBy != "" {
		entry.FiledBy = &filedBy
	}
	if ecf := ExtractECF(ev.Text); ecf != "" {
		entry.ECFNumber = &ecf
	}

	return entry, errs
}
