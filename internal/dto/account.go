package dto

import (
	"time"

	"github.com/rendaplus/rendaplus_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterAccountRequest defines the data needed to register a new account.
// ReferralCode is the code of the recruiting account, resolved to the referrer
// at registration time only.
type RegisterAccountRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	ReferralCode string `json:"referralCode"` // Optional
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Balance       decimal.Decimal `json:"balance"`
	PlanID        *string         `json:"planID,omitempty"`
	ReferralCode  string          `json:"referralCode"`
	ReferralCount int             `json:"referralCount"`
	IsAdmin       bool            `json:"isAdmin"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// EnrollPlanRequest defines the payload for enrolling into an investment plan.
type EnrollPlanRequest struct {
	PlanID string `json:"planID" binding:"required"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		Email:         acc.Email,
		Balance:       acc.Balance,
		PlanID:        acc.PlanID,
		ReferralCode:  acc.ReferralCode,
		ReferralCount: acc.ReferralCount,
		IsAdmin:       acc.IsAdmin,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
