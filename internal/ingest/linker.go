package ingest

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lexiflow/docketload/internal/database"
	"github.com/lexiflow/docketload/pkg/logger"
)

// Linker upserts case↔party associations. role and counsel_name take the
// latest run's values on conflict.
type Linker struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewLinker creates a new linker instance
func NewLinker(db *gorm.DB, logger *logger.Logger) *Linker {
	return &Linker{db: db, logger: logger}
}

// LinkCaseParty upserts the (caseID, partyID) association. A missing case id
// is a logged skip, not an error.
func (l *Linker) LinkCaseParty(caseID, partyID, role string, counselName *string) error {
	if caseID == "" {
		l.logger.Warn("Skipping case-party link, no case resolved", "party_id", partyID)
		return nil
	}

	link := database.CaseParty{
		CaseID:      caseID,
		PartyID:     partyID,
		Role:        role,
		CounselName: counselName,
	}
	err := l.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "case_id"}, {Name: "party_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "counsel_name", "updated_at"}),
	}).Create(&link).Error
	if err != nil {
		return fmt.Errorf("failed to link party %s to case %s: %w", partyID, caseID, err)
	}
	return nil
}
