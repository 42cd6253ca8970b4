package domain

import "github.com/shopspring/decimal"

// TransactionType is the canonical enumeration of money movements.
type TransactionType string

const (
	Deposit  TransactionType = "DEPOSIT"
	Withdraw TransactionType = "WITHDRAW"
	Yield    TransactionType = "YIELD" // Recorded by administrators for out-of-band yield credits
)

// TransactionStatus tracks the review lifecycle of a transaction request.
// PENDING transitions to APPROVED or REJECTED exactly once; both are terminal.
type TransactionStatus string

const (
	StatusPending  TransactionStatus = "PENDING"
	StatusApproved TransactionStatus = "APPROVED"
	StatusRejected TransactionStatus = "REJECTED"
)

// commissionableTypes lists the transaction types whose approved volume counts
// toward a referrer's commission base. Withdrawals never do.
var commissionableTypes = map[TransactionType]bool{
	Deposit: true,
	Yield:   true,
}

// Transaction represents a single deposit, withdrawal or yield credit request
// against one account. Only APPROVED transactions affect balances and
// commission bases.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	AccountID     string            `json:"accountID"`     // FK -> accounts.account_id (Not Null)
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"` // Positive value
	Status        TransactionStatus `json:"status"`
	Notes         string            `json:"notes"` // Nullable
	AuditFields
}

// IsCommissionable reports whether this transaction's approved amount counts
// toward the owner's referrer commission volume.
func (t Transaction) IsCommissionable() bool {
	return t.Status == StatusApproved && commissionableTypes[t.Type]
}

// IsTerminal reports whether the transaction status admits no further transitions.
func (t Transaction) IsTerminal() bool {
	return t.Status == StatusApproved || t.Status == StatusRejected
}

// CommissionableTypes returns the canonical commissionable type set, in a
// stable order suitable for SQL IN clauses.
func CommissionableTypes() []TransactionType {
	return []TransactionType{Deposit, Yield}
}
