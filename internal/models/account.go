package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a platform member as stored in the accounts table.
// Includes the credential fields that must never leave the persistence layer.
type Account struct {
	AccountID     string          `db:"account_id"`
	Name          string          `db:"name"`
	Email         string          `db:"email"`
	PasswordHash  string          `db:"password_hash"`
	Balance       decimal.Decimal `db:"balance"`
	PlanID        sql.NullString  `db:"plan_id"`
	ReferrerID    sql.NullString  `db:"referrer_id"`
	ReferralCode  string          `db:"referral_code"`
	ReferralCount int             `db:"referral_count"`
	IsAdmin       bool            `db:"is_admin"`
	IsActive      bool            `db:"is_active"`
	AuditFields
	DeletedAt sql.NullTime `db:"deleted_at"`

	// Refresh token rotation state
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}

// AuditFields holds standard audit columns shared by all tables.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}
