package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lexiflow/docketload/internal/database"
	"github.com/lexiflow/docketload/internal/docket"
	"github.com/lexiflow/docketload/pkg/logger"
)

// Resolver finds or creates entities by natural key. Resolution is a read
// followed by a conditional write, not a compare-and-swap: concurrent runs
// against the same store can race on creation. Single-writer only.
type Resolver struct {
	db          *gorm.DB
	cache       ResolutionCache
	emailDomain string
	logger      *logger.Logger
}

// NewResolver creates a new resolver instance
func NewResolver(db *gorm.DB, cache ResolutionCache, emailDomain string, logger *logger.Logger) *Resolver {
	return &Resolver{
		db:          db,
		cache:       cache,
		emailDomain: emailDomain,
		logger:      logger,
	}
}

// ResolveCase returns the id for a case number, creating the case from the
// export's summary when one is available. With no summary an unknown case is
// ErrCaseNotFound, which is fatal to the run.
func (r *Resolver) ResolveCase(caseNumber string, summary *docket.CaseSummary) (string, error) {
	key := CacheKey("case", caseNumber)
	if id, ok := r.cache.Get(key); ok {
		return id, nil
	}

	var existing database.Case
	err := r.db.Where("case_number = ?", caseNumber).First(&existing).Error
	if err == nil {
		r.cache.Set(key, existing.ID)
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to look up case %s: %w", caseNumber, err)
	}

	if summary == nil {
		return "", fmt.Errorf("%w: %s", ErrCaseNotFound, caseNumber)
	}

	created := database.Case{
		ID:           uuid.NewString(),
		CaseNumber:   caseNumber,
		Title:        summary.ShortTitle,
		Court:        summary.OrigCourt,
		NatureOfSuit: summary.NatureOfSuit,
		Status:       "Active",
	}
	if summary.DateFiled != "" {
		if parsed, perr := docket.ParseDate(summary.DateFiled); perr != nil {
			r.logger.Warn("Unparseable case filing date", "case_number", caseNumber, "error", perr)
		} else {
			created.FilingDate = &parsed
		}
	}
	if err := r.db.Create(&created).Error; err != nil {
		return "", fmt.Errorf("failed to create case %s: %w", caseNumber, err)
	}

	r.logger.Info("Created case", "case_number", caseNumber, "id", created.ID)
	r.cache.Set(key, created.ID)
	return created.ID, nil
}

// ResolveParty returns the id for a party name, creating the party with the
// supplied type guess when absent. An existing party's type is never
// overwritten.
func (r *Resolver) ResolveParty(name, typeGuess string) (string, error) {
	key := CacheKey("party", name)
	if id, ok := r.cache.Get(key); ok {
		return id, nil
	}

	var existing database.Party
	err := r.db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		r.cache.Set(key, existing.ID)
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to look up party %q: %w", name, err)
	}

	created := database.Party{
		ID:   uuid.NewString(),
		Name: name,
		Type: typeGuess,
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&created)
	if result.Error != nil {
		return "", fmt.Errorf("failed to create party %q: %w", name, result.Error)
	}
	if result.RowsAffected == 0 {
		// Lost the insert to a conflicting row; re-read it.
		if err := r.db.Where("name = ?", name).First(&existing).Error; err != nil {
			return "", fmt.Errorf("failed to re-read party %q: %w", name, err)
		}
		r.cache.Set(key, existing.ID)
		return existing.ID, nil
	}

	r.logger.Info("Created party", "name", name, "type", typeGuess)
	r.cache.Set(key, created.ID)
	return created.ID, nil
}

// ResolveAttorney returns the user id for an attorney record, keyed by its
// real email or a deterministic synthesized one. Creation is an idempotent
// no-op on conflict.
func (r *Resolver) ResolveAttorney(record docket.AttorneyRecord, firm string) (string, error) {
	email := strings.TrimSpace(record.Email)
	if email == "" {
		email = docket.SynthesizeEmail(record.FullName(), r.emailDomain)
	}

	key := CacheKey("attorney", email)
	if id, ok := r.cache.Get(key); ok {
		return id, nil
	}

	var existing database.User
	err := r.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		r.cache.Set(key, existing.ID)
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to look up attorney %s: %w", email, err)
	}

	organization := firm
	if organization == "" {
		organization = record.Office
	}
	created := database.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: "EXTERNAL_ATTORNEY",
		FirstName:    record.FirstName,
		LastName:     record.LastName,
		Role:         "attorney",
		Phone:        record.Phone(),
		Organization: organization,
		Active:       true,
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&created)
	if result.Error != nil {
		return "", fmt.Errorf("failed to create attorney %s: %w", email, result.Error)
	}
	if result.RowsAffected == 0 {
		if err := r.db.Where("email = ?", email).First(&existing).Error; err != nil {
			return "", fmt.Errorf("failed to re-read attorney %s: %w", email, err)
		}
		r.cache.Set(key, existing.ID)
		return existing.ID, nil
	}

	r.logger.Info("Created attorney", "name", record.FullName(), "email", email)
	r.cache.Set(key, created.ID)
	return created.ID, nil
}

// Stats returns the run cache's hit/miss counters.
func (r *Resolver) Stats() CacheStats {
	return r.cache.Stats()
}
