package domain

import "github.com/shopspring/decimal"

// Plan represents an investment tier with a daily yield rate.
// DailyRate is a signed fraction multiplied directly against the balance
// during an accrual cycle; a zero or negative rate makes the plan inert
// (no yield record is produced, no balance change happens).
type Plan struct {
	PlanID    string          `json:"planID"` // Primary Key (UUID)
	Name      string          `json:"name"`
	DailyRate decimal.Decimal `json:"dailyRate"`
	IsActive  bool            `json:"isActive"`
	AuditFields
}
