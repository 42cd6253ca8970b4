package mapping

import (
	"database/sql"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/rendaplus/rendaplus_backend/internal/models"
)

// ToModelAccount converts a domain Account to a model Account.
// The password hash is set separately by the repository; it never rides on
// the domain type.
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		AccountID:     d.AccountID,
		Name:          d.Name,
		Email:         d.Email,
		Balance:       d.Balance,
		ReferralCode:  d.ReferralCode,
		ReferralCount: d.ReferralCount,
		IsAdmin:       d.IsAdmin,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.PlanID != nil && *d.PlanID != "" {
		m.PlanID = sql.NullString{String: *d.PlanID, Valid: true}
	}
	if d.ReferrerID != nil && *d.ReferrerID != "" {
		m.ReferrerID = sql.NullString{String: *d.ReferrerID, Valid: true}
	}
	if d.DeletedAt != nil {
		m.DeletedAt = sql.NullTime{Time: *d.DeletedAt, Valid: true}
	}
	return m
}

// ToDomainAccount converts a model Account to a domain Account.
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		AccountID:     m.AccountID,
		Name:          m.Name,
		Email:         m.Email,
		Balance:       m.Balance,
		ReferralCode:  m.ReferralCode,
		ReferralCount: m.ReferralCount,
		IsAdmin:       m.IsAdmin,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.PlanID.Valid {
		planID := m.PlanID.String
		d.PlanID = &planID
	}
	if m.ReferrerID.Valid {
		referrerID := m.ReferrerID.String
		d.ReferrerID = &referrerID
	}
	if m.DeletedAt.Valid {
		deletedAt := m.DeletedAt.Time
		d.DeletedAt = &deletedAt
	}
	return d
}

// ToDomainAccountSlice converts a slice of model Accounts to domain Accounts.
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
