package dto

import "github.com/yigit/skillswap/internal/app/models"

// ShareExperienceRequest shares a new experience. An empty type is classified automatically.
type ShareExperienceRequest struct {
	Title       string                `json:"title" binding:"required,max=200"`
	Type        models.ExperienceType `json:"type" binding:"omitempty,experiencetype"`
	Description string                `json:"description" binding:"required"`
	Guidelines  string                `json:"guidelines"`
}

// ClassifyRequest is free text to classify
type ClassifyRequest struct {
	Text string `json:"text"`
}

// ClassifyResponse is the classifier output
type ClassifyResponse struct {
	Type models.ExperienceType `json:"type" example:"Hackathon"`
}

// ReactRequest likes or dislikes an experience
type ReactRequest struct {
	Reaction models.Reaction `json:"reaction" binding:"required,oneof=like dislike"`
}

// RegisterStartupRequest registers a startup
type RegisterStartupRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	IdeaOrProblem  string `json:"ideaOrProblem" binding:"required"`
	Implementation string `json:"implementation"`
	GithubLink     string `json:"githubLink" binding:"omitempty,url"`
}

// SponsorRequest transfers coins to a startup
type SponsorRequest struct {
	Amount int `json:"amount" binding:"required,gt=0"`
}

// RateRequest rates a startup
type RateRequest struct {
	Stars int `json:"stars" binding:"required,min=1,max=5"`
}

// RedeemRequest redeems a catalog reward
type RedeemRequest struct {
	RewardID int `json:"rewardId" binding:"required,gt=0"`
}

// RedeemResponse is the outcome of a redemption
type RedeemResponse struct {
	Redemption *models.Redemption `json:"redemption"`
	Balance    int                `json:"balance"`
}

// SponsorResponse returns the sponsored startup and the sponsor's remaining balance
type SponsorResponse struct {
	Startup *models.Startup `json:"startup"`
	Balance int             `json:"balance"`
}
