package dto

import "github.com/yigit/skillswap/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents an account registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Bio      string `json:"bio" binding:"max=500"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn" example:"604800"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token   TokenResponse   `json:"token"`
	Account *models.Account `json:"user"`
}

// AccountSummary is the public card of an account embedded in other responses
type AccountSummary struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	AverageRating float64 `json:"averageRating"`
	Coins         int     `json:"coins"`
	Highlighted   bool    `json:"isHighlighted"`
}

// NewAccountSummary builds the public card of an account
func NewAccountSummary(a *models.Account) *AccountSummary {
	if a == nil {
		return nil
	}
	return &AccountSummary{
		ID:            a.ID,
		Name:          a.Name,
		AverageRating: a.AverageRating,
		Coins:         a.Coins,
		Highlighted:   a.Highlighted,
	}
}

// LedgerAudit reports whether the balance reconciles with the transaction history
type LedgerAudit struct {
	AccountID    int64 `json:"userId"`
	Balance      int   `json:"balance"`
	OpeningGrant int   `json:"openingGrant"`
	Earned       int   `json:"earned"`
	Spent        int   `json:"spent"`
	Consistent   bool  `json:"consistent"`
}

// RecommendationResponse is one ranked mentor suggestion
type RecommendationResponse struct {
	Mentor        *AccountSummary `json:"mentor"`
	Score         int             `json:"score"`
	MatchedSkills []string        `json:"matchedSkills"`
}

// LedgerResponse is an account's audit with its history, newest entry first
type LedgerResponse struct {
	Audit        *LedgerAudit          `json:"audit"`
	Transactions []*models.Transaction `json:"transactions"`
}
