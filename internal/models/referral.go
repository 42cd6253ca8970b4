package models

import "github.com/shopspring/decimal"

// ReferralConfig represents a row in the referral_config table.
type ReferralConfig struct {
	Level      int             `db:"level"`
	Percentage decimal.Decimal `db:"percentage"`
	AuditFields
}
