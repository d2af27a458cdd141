package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/repositories"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
)

// categoryAll is the search value meaning "any category"
const categoryAll = "All"

// SkillService defines the interface for skill catalog operations
type SkillService interface {
	Publish(ctx context.Context, ownerID int64, req *dto.CreateSkillRequest) (*models.Skill, error)
	Search(ctx context.Context, req *dto.SkillSearchRequest) ([]*dto.SkillSearchResult, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Skill, error)
}

// skillServiceImpl implements SkillService
type skillServiceImpl struct {
	skillRepo   repositories.SkillRepository
	accountRepo repositories.AccountRepository
	logger      zerolog.Logger
}

// NewSkillService creates a new SkillService
func NewSkillService(
	skillRepo repositories.SkillRepository,
	accountRepo repositories.AccountRepository,
	logger zerolog.Logger,
) SkillService {
	return &skillServiceImpl{
		skillRepo:   skillRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// Publish adds a skill to the owner's profile. Level defaults to Beginner and category to Other.
func (s *skillServiceImpl) Publish(ctx context.Context, ownerID int64, req *dto.CreateSkillRequest) (*models.Skill, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("skill name cannot be empty")
	}

	level := req.Level
	if level == "" {
		level = models.LevelBeginner
	}
	if !level.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid level %q", level))
	}

	category := req.Category
	if category == "" {
		category = models.CategoryOther
	}
	if !category.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid category %q", category))
	}

	if !req.Type.Valid() {
		return nil, apperrors.NewValidationError("type must be offered or wanted")
	}

	skill := &models.Skill{
		Name:      name,
		Level:     level,
		Category:  category,
		OwnerID:   ownerID,
		Direction: req.Type,
	}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating skill: %w", err)
	}

	s.logger.Info().
		Int64("skillID", skill.ID).
		Int64("ownerID", ownerID).
		Str("direction", string(skill.Direction)).
		Msg("Skill published")

	return skill, nil
}

// Search finds offered skills by case-insensitive name substring and category.
// Empty filters and the category "All" match everything.
func (s *skillServiceImpl) Search(ctx context.Context, req *dto.SkillSearchRequest) ([]*dto.SkillSearchResult, error) {
	filter := repositories.SkillFilter{
		NameContains: strings.TrimSpace(req.Name),
		Direction:    models.DirectionOffered,
	}
	if c := strings.TrimSpace(req.Category); c != "" && !strings.EqualFold(c, categoryAll) {
		filter.Category = models.SkillCategory(c)
	}

	skills, err := s.skillRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error searching skills: %w", err)
	}

	owners := make(map[int64]*dto.AccountSummary)
	results := make([]*dto.SkillSearchResult, 0, len(skills))
	for _, skill := range skills {
		owner, ok := owners[skill.OwnerID]
		if !ok {
			account, err := s.accountRepo.GetByID(ctx, skill.OwnerID)
			if err != nil {
				s.logger.Warn().Err(err).Int64("skillID", skill.ID).Msg("Skipping skill with missing owner")
				continue
			}
			owner = dto.NewAccountSummary(account)
			owners[skill.OwnerID] = owner
		}
		results = append(results, &dto.SkillSearchResult{Skill: skill, Owner: owner})
	}

	return results, nil
}

// ListByOwner returns every skill an account posted
func (s *skillServiceImpl) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Skill, error) {
	if _, err := s.accountRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	skills, err := s.skillRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error finding skills: %w", err)
	}
	return skills, nil
}
