// Package classifier tags free-text experiences with a category.
package classifier

import (
	"strings"

	"github.com/yigit/skillswap/internal/app/models"
)

// Rule pairs a category with the keywords that select it
type Rule struct {
	Type     models.ExperienceType
	Keywords []string
}

// Rules are tried in order; the first rule with a matching keyword wins.
// Keyword lists overlap (a hackathon is often a "team project" at a "company"),
// so the order matters.
var Rules = []Rule{
	{
		Type: models.ExperienceJobInterview,
		Keywords: []string{
			"interview", "hr round", "technical round", "coding round",
			"hiring", "recruiter", "job offer", "salary discussion",
		},
	},
	{
		Type: models.ExperienceHackathon,
		Keywords: []string{
			"hackathon", "48 hours", "24 hours", "devpost", "team project",
			"competition", "prize", "winner", "building", "project",
		},
	},
	{
		Type: models.ExperienceInternship,
		Keywords: []string{
			"intern", "stipend", "company", "corporate", "onboarding",
			"training", "manager", "full-time", "placement",
		},
	},
}

// Classify returns the first matching category for text, or Other
func Classify(text string) models.ExperienceType {
	return ClassifyWith(Rules, text)
}

// ClassifyWith runs Classify against a custom rule list
func ClassifyWith(rules []Rule, text string) models.ExperienceType {
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return models.ExperienceOther
	}
	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Type
			}
		}
	}
	return models.ExperienceOther
}
