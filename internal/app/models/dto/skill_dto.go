package dto

import "github.com/yigit/skillswap/internal/app/models"

// CreateSkillRequest represents a skill posting
type CreateSkillRequest struct {
	Name     string                `json:"skillName" binding:"required,max=100"`
	Level    models.SkillLevel     `json:"level" binding:"omitempty,skilllevel"`
	Category models.SkillCategory  `json:"category" binding:"omitempty,skillcategory"`
	Type     models.SkillDirection `json:"type" binding:"required,skilldirection"`
}

// SkillSearchRequest holds the optional search filters
type SkillSearchRequest struct {
	Name     string `form:"skillName"`
	Category string `form:"category"`
}

// SkillSearchResult is an offered skill joined with its owner
type SkillSearchResult struct {
	*models.Skill
	Owner *AccountSummary `json:"user"`
}
