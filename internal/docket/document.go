package docket

// CaseSummary is the case-level metadata carried by the export's stub
// element. It may be absent; the loader then needs an explicit case number.
type CaseSummary struct {
	CaseNumber   string
	DateFiled    string
	NatureOfSuit string
	ShortTitle   string
	OrigCourt    string
}

// AttorneyRecord is one attorney nested inside a party element.
type AttorneyRecord struct {
	FirstName     string
	MiddleName    string
	LastName      string
	Email         string
	BusinessPhone string
	PersonalPhone string
	Address1      string
	City          string
	State         string
	Zip           string
	Office        string
}

// FullName joins the non-empty name parts with spaces.
func (a AttorneyRecord) FullName() string {
	name := ""
	for _, part := range []string{a.FirstName, a.MiddleName, a.LastName} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}

// Phone returns the business phone, falling back to the personal one.
func (a AttorneyRecord) Phone() string {
	if a.BusinessPhone != "" {
		return a.BusinessPhone
	}
	return a.PersonalPhone
}

// PartyRecord is one party element with its nested attorneys.
type PartyRecord struct {
	Name      string
	Role      string
	Attorneys []AttorneyRecord
}

// Event is one docketText element.
type Event struct {
	DateFiled string
	Text      string
	DocLink   string
}

// Document is the extracted content of one docket export, in source order.
// Skipped holds context for regions that could not be extracted into a
// usable record; the loader counts them so no drop goes unreported.
type Document struct {
	Summary *CaseSummary
	Parties []PartyRecord
	Events  []Event
	Skipped []string
}
