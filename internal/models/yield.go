package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// YieldRecord represents a row in the yield_records table.
// UNIQUE(account_id, accrual_date) guards against double accrual per day.
type YieldRecord struct {
	YieldID     string          `db:"yield_id"`
	AccountID   string          `db:"account_id"`
	Amount      decimal.Decimal `db:"amount"`
	Source      string          `db:"source"`
	AccrualDate time.Time       `db:"accrual_date"`
	CreatedAt   time.Time       `db:"created_at"`
	CreatedBy   string          `db:"created_by"`
}
