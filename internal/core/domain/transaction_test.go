package domain_test

import (
	"testing"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsCommissionable(t *testing.T) {
	cases := []struct {
		name   string
		txn    domain.Transaction
		expect bool
	}{
		{"approved deposit counts", domain.Transaction{Type: domain.Deposit, Status: domain.StatusApproved}, true},
		{"approved yield counts", domain.Transaction{Type: domain.Yield, Status: domain.StatusApproved}, true},
		{"approved withdrawal never counts", domain.Transaction{Type: domain.Withdraw, Status: domain.StatusApproved}, false},
		{"pending deposit does not count", domain.Transaction{Type: domain.Deposit, Status: domain.StatusPending}, false},
		{"rejected deposit does not count", domain.Transaction{Type: domain.Deposit, Status: domain.StatusRejected}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, tc.txn.IsCommissionable())
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, domain.Transaction{Status: domain.StatusPending}.IsTerminal())
	assert.True(t, domain.Transaction{Status: domain.StatusApproved}.IsTerminal())
	assert.True(t, domain.Transaction{Status: domain.StatusRejected}.IsTerminal())
}

func TestCommissionableTypes(t *testing.T) {
	types := domain.CommissionableTypes()

	assert.Equal(t, []domain.TransactionType{domain.Deposit, domain.Yield}, types)
	assert.NotContains(t, types, domain.Withdraw)
}
