package models

import "time"

// ExperienceType is the classifier output and the experience board filter
type ExperienceType string

const (
	ExperienceJobInterview ExperienceType = "Job Interview"
	ExperienceHackathon    ExperienceType = "Hackathon"
	ExperienceInternship   ExperienceType = "Internship"
	ExperienceOther        ExperienceType = "Other"
)

// Valid reports whether t is one of the four experience types
func (t ExperienceType) Valid() bool {
	switch t {
	case ExperienceJobInterview, ExperienceHackathon, ExperienceInternship, ExperienceOther:
		return true
	}
	return false
}

// Reaction is a like or dislike an account leaves on an experience
type Reaction string

const (
	ReactionLike    Reaction = "like"
	ReactionDislike Reaction = "dislike"
)

// Experience is a shared real-world story (interview, hackathon, internship)
type Experience struct {
	ID          int64          `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Type        ExperienceType `json:"type" db:"type"`
	Description string         `json:"description" db:"description"`
	Guidelines  string         `json:"guidelines" db:"guidelines"`
	CreatedBy   int64          `json:"createdBy" db:"created_by"`
	Likes       int            `json:"likes" db:"likes"`
	Dislikes    int            `json:"dislikes" db:"dislikes"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
}

// Startup is a student venture that accounts can sponsor with coins and rate
type Startup struct {
	ID                  int64     `json:"id" db:"id"`
	Name                string    `json:"name" db:"name"`
	IdeaOrProblem       string    `json:"ideaOrProblem" db:"idea_or_problem"`
	Implementation      string    `json:"implementation" db:"implementation"`
	GithubLink          string    `json:"githubLink" db:"github_link"`
	CreatedBy           int64     `json:"createdBy" db:"created_by"`
	TotalSponsoredCoins int       `json:"totalSponsoredCoins" db:"total_sponsored_coins"`
	AverageRating       float64   `json:"averageRating" db:"average_rating"`
	RatingCount         int       `json:"ratingCount" db:"rating_count"`
	CreatedAt           time.Time `json:"createdAt" db:"created_at"`
}
