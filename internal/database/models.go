package database

import (
	"time"
)

// Case is a docketed case, unique by its court-assigned case number.
// The pipeline creates cases and never updates them afterward.
type Case struct {
	ID           string  `json:"id" gorm:"primaryKey;size:36"`
	CaseNumber   string  `json:"case_number" gorm:"uniqueIndex;size:64;not null"`
	Title        string  `json:"title" gorm:"size:500"`
	Court        string  `json:"court" gorm:"size:255"`
	FilingDate   *string `json:"filing_date" gorm:"size:10"`
	NatureOfSuit string  `json:"nature_of_suit" gorm:"size:255"`
	Status       string  `json:"status" gorm:"size:64"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DocketEntry is one chronological event in a case's procedural history.
// SequenceNumber is 1-based source order; uniqueness within a case is
// enforced by the loader's duplicate-sequence policy, not by the schema,
// so the legacy insert-always policy stays expressible. Entries are
// append-only.
type DocketEntry struct {
	ID             string  `json:"id" gorm:"primaryKey;size:36"`
	CaseID         string  `json:"case_id" gorm:"size:36;not null;index:idx_docket_case_seq"`
	SequenceNumber int     `json:"sequence_number" gorm:"not null;index:idx_docket_case_seq"`
	DateFiled      *string `json:"date_filed" gorm:"size:10"`
	Type           string  `json:"type" gorm:"size:64"`
	Title          string  `json:"title" gorm:"size:1000"`
	Description    string  `json:"description" gorm:"type:text"`
	FiledBy        *string `json:"filed_by" gorm:"size:255"`
	ECFNumber      *string `json:"ecf_number" gorm:"column:ecf_number;size:32"`
	Sealed         bool    `json:"is_sealed" gorm:"column:is_sealed"`
	DocLink        string  `json:"doc_link" gorm:"size:500"`
	CreatedAt      time.Time
}

// Party is a litigant, unique by exact name.
type Party struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	Name      string `json:"name" gorm:"uniqueIndex;size:500;not null"`
	Type      string `json:"type" gorm:"size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CaseParty links a party to a case. It is the only record the pipeline
// mutates in place: role and counsel name take the latest run's values.
type CaseParty struct {
	CaseID      string  `json:"case_id" gorm:"primaryKey;size:36"`
	PartyID     string  `json:"party_id" gorm:"primaryKey;size:36"`
	Role        string  `json:"role" gorm:"size:255"`
	CounselName *string `json:"counsel_name" gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// User is an attorney account, unique by email. Attorneys loaded from a
// docket export carry a sentinel password hash and are never updated on
// re-insert.
type User struct {
	ID           string `json:"id" gorm:"primaryKey;size:36"`
	Email        string `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `json:"-" gorm:"size:255"`
	FirstName    string `json:"first_name" gorm:"size:100"`
	LastName     string `json:"last_name" gorm:"size:100"`
	Role         string `json:"role" gorm:"size:32"`
	Phone        string `json:"phone" gorm:"size:32"`
	Organization string `json:"organization" gorm:"size:255"`
	Active       bool   `json:"is_active" gorm:"column:is_active"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Case) TableName() string {
	return "cases"
}

func (DocketEntry) TableName() string {
	return "docket_entries"
}

func (Party) TableName() string {
	return "parties"
}

func (CaseParty) TableName() string {
	return "case_parties"
}

func (User) TableName() string {
	return "users"
}
