package models

import "github.com/shopspring/decimal"

// Plan represents an investment tier row.
type Plan struct {
	PlanID    string          `db:"plan_id"`
	Name      string          `db:"name"`
	DailyRate decimal.Decimal `db:"daily_rate"`
	IsActive  bool            `db:"is_active"`
	AuditFields
}
