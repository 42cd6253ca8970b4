package models

import "github.com/shopspring/decimal"

// TransactionType mirrors domain.TransactionType for DB storage.
type TransactionType string

// TransactionStatus mirrors domain.TransactionStatus for DB storage.
type TransactionStatus string

// Transaction represents a row in the transactions table.
type Transaction struct {
	TransactionID string            `db:"transaction_id"`
	AccountID     string            `db:"account_id"`
	Type          TransactionType   `db:"type"`
	Amount        decimal.Decimal   `db:"amount"`
	Status        TransactionStatus `db:"status"`
	Notes         string            `db:"notes"`
	AuditFields
}
