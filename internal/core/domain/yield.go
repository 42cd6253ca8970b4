package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YieldSourceAccrual tags yield records written by the accrual engine.
const YieldSourceAccrual = "ACCRUAL"

// YieldRecord is an append-only record of yield applied to one account during
// one accrual cycle. AccrualDate is the UTC calendar day the cycle ran;
// the store enforces uniqueness of (account, accrual date) so a repeated
// cycle within the same day cannot double-accrue.
type YieldRecord struct {
	YieldID     string          `json:"yieldID"` // Primary Key (UUID)
	AccountID   string          `json:"accountID"`
	Amount      decimal.Decimal `json:"amount"` // Strictly positive
	Source      string          `json:"source"`
	AccrualDate time.Time       `json:"accrualDate"` // Date component only, UTC
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// AccrualSummary reports the outcome of one accrual cycle. Failed holds the
// account IDs whose plan lookup or persistence failed; their failure never
// blocks the rest of the cycle.
type AccrualSummary struct {
	Processed int      `json:"processed"`
	Skipped   int      `json:"skipped"`
	Failed    []string `json:"failed"`
}
