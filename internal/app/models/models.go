package models

// SkillLevel is the proficiency a skill is offered or wanted at
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
)

// Valid reports whether l is a known level
func (l SkillLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// SkillCategory groups skills for catalog search
type SkillCategory string

const (
	CategoryWeb    SkillCategory = "Web"
	CategoryML     SkillCategory = "ML"
	CategoryDesign SkillCategory = "Design"
	CategoryDSA    SkillCategory = "DSA"
	CategoryOther  SkillCategory = "Other"
)

// Valid reports whether c is a known category
func (c SkillCategory) Valid() bool {
	switch c {
	case CategoryWeb, CategoryML, CategoryDesign, CategoryDSA, CategoryOther:
		return true
	}
	return false
}

// SkillDirection says whether the owner teaches or wants to learn a skill
type SkillDirection string

const (
	DirectionOffered SkillDirection = "offered"
	DirectionWanted  SkillDirection = "wanted"
)

// Valid reports whether d is offered or wanted
func (d SkillDirection) Valid() bool {
	return d == DirectionOffered || d == DirectionWanted
}

// TransactionDirection is the sign of a ledger entry
type TransactionDirection string

const (
	TransactionEarn  TransactionDirection = "earn"
	TransactionSpend TransactionDirection = "spend"
)
