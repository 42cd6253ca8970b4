package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a registered platform member within the core domain.
// This is the primary representation used by services. The account carries
// both the member identity and the investment state (balance, enrolled plan,
// referral linkage). The password hash never leaves the models layer.
type Account struct {
	AccountID     string          `json:"accountID"` // Primary Key (UUID)
	Name          string          `json:"name"`
	Email         string          `json:"email"` // Unique login identifier
	Balance       decimal.Decimal `json:"balance"`
	PlanID        *string         `json:"planID,omitempty"`     // Nullable FK -> plans.plan_id
	ReferrerID    *string         `json:"referrerID,omitempty"` // Nullable FK -> accounts.account_id; fixed at registration
	ReferralCode  string          `json:"referralCode"`         // Unique code handed out to recruit referrals
	ReferralCount int             `json:"referralCount"`
	IsAdmin       bool            `json:"isAdmin"`
	IsActive      bool            `json:"isActive"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// HasPlan reports whether the account is enrolled in an investment plan.
func (a Account) HasPlan() bool {
	return a.PlanID != nil && *a.PlanID != ""
}
