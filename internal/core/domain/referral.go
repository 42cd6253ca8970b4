package domain

import "github.com/shopspring/decimal"

// MaxReferralDepth bounds the referral network walk. Commission is paid two
// levels deep: direct referrals and their referrals.
const MaxReferralDepth = 2

// ReferralConfig maps a referral level to the commission percentage paid on
// that level's approved volume. Percentage is expressed in percent units
// (5 means 5%). A level without a stored config earns zero.
type ReferralConfig struct {
	Level      int             `json:"level"` // 1..MaxReferralDepth
	Percentage decimal.Decimal `json:"percentage"`
	AuditFields
}

// NetworkEntry is one referred account's contribution to a network report.
type NetworkEntry struct {
	AccountID  string          `json:"accountID"`
	Name       string          `json:"name"`
	Volume     decimal.Decimal `json:"volume"`     // Sum of approved commissionable amounts
	Commission decimal.Decimal `json:"commission"` // Volume * level percentage / 100
}

// NetworkReport is the full two-level commission view for one root account.
// It is computed wholesale from persisted state; a report is never partial.
type NetworkReport struct {
	Level1      []NetworkEntry  `json:"level1"`
	Level1Total decimal.Decimal `json:"level1Total"`
	Level2      []NetworkEntry  `json:"level2"`
	Level2Total decimal.Decimal `json:"level2Total"`
}
