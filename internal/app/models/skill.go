package models

import "time"

// Skill is a catalog posting linked to its owning account
type Skill struct {
	ID        int64          `json:"id" db:"id"`
	Name      string         `json:"skillName" db:"name"`
	Level     SkillLevel     `json:"level" db:"level"`
	Category  SkillCategory  `json:"category" db:"category"`
	OwnerID   int64          `json:"userId" db:"owner_id"`
	Direction SkillDirection `json:"type" db:"direction"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
}
