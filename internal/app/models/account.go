package models

import (
	"time"
)

// Account is a registered platform user and the owner of a coin balance.
// Coins only change through the ledger.
type Account struct {
	ID            int64     `json:"id" db:"id" example:"1"`
	Name          string    `json:"name" db:"name" example:"Ada Lovelace"`
	Email         string    `json:"email" db:"email" example:"ada@example.com"`
	PasswordHash  string    `json:"-" db:"password_hash"`
	Bio           string    `json:"bio" db:"bio"`
	Coins         int       `json:"coins" db:"coins" example:"10"`
	OpeningCoins  int       `json:"-" db:"opening_coins"`
	AverageRating float64   `json:"averageRating" db:"average_rating" example:"4.5"`
	RatingCount   int       `json:"totalRatingsCount" db:"rating_count" example:"2"`
	Highlighted   bool      `json:"isHighlighted" db:"highlighted"`
	LastActiveAt  time.Time `json:"lastActiveAt" db:"last_active_at"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	// Related entities, loaded on demand
	SkillsOffered []*Skill `json:"skillsOffered,omitempty"`
	SkillsWanted  []*Skill `json:"skillsWanted,omitempty"`
}

// AddRating folds one more rating into the running average
func (a *Account) AddRating(rating int) {
	a.AverageRating = (a.AverageRating*float64(a.RatingCount) + float64(rating)) / float64(a.RatingCount+1)
	a.RatingCount++
}

// Transaction is one append-only ledger entry. Amount is always positive; Direction gives the sign.
type Transaction struct {
	ID          int64                `json:"id" db:"id"`
	AccountID   int64                `json:"userId" db:"account_id"`
	Direction   TransactionDirection `json:"type" db:"direction"`
	Amount      int                  `json:"amount" db:"amount"`
	Description string               `json:"description" db:"description"`
	CreatedAt   time.Time            `json:"createdAt" db:"created_at"`
}

// Signed returns the balance delta of the entry
func (t *Transaction) Signed() int {
	if t.Direction == TransactionSpend {
		return -t.Amount
	}
	return t.Amount
}

// Redemption records a reward bought with coins
type Redemption struct {
	ID                int64     `json:"id" db:"id"`
	AccountID         int64     `json:"userId" db:"account_id"`
	RewardID          int       `json:"rewardId" db:"reward_id"`
	RewardName        string    `json:"rewardName" db:"reward_name"`
	CoinsUsed         int       `json:"coinsUsed" db:"coins_used"`
	IllustrativeValue string    `json:"illustrativeValue" db:"illustrative_value"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
}
