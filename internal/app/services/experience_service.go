package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/skillswap/internal/app/classifier"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/repositories"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
)

// ExperienceService defines the interface for the experience board
type ExperienceService interface {
	Share(ctx context.Context, actorID int64, req *dto.ShareExperienceRequest) (*models.Experience, error)
	List(ctx context.Context, expType string) ([]*models.Experience, error)
	Get(ctx context.Context, id int64) (*models.Experience, error)
	React(ctx context.Context, actorID, experienceID int64, reaction models.Reaction) (*models.Experience, error)
	Classify(text string) models.ExperienceType
}

// experienceServiceImpl implements ExperienceService
type experienceServiceImpl struct {
	tx             repositories.TxManager
	experienceRepo repositories.ExperienceRepository
	logger         zerolog.Logger
}

// NewExperienceService creates a new ExperienceService
func NewExperienceService(repos *repositories.Repositories, logger zerolog.Logger) ExperienceService {
	return &experienceServiceImpl{
		tx:             repos.Tx,
		experienceRepo: repos.Experiences,
		logger:         logger,
	}
}

// Share stores an experience. Without a type it is classified from the title and description.
func (s *experienceServiceImpl) Share(ctx context.Context, actorID int64, req *dto.ShareExperienceRequest) (*models.Experience, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description are required")
	}

	expType := req.Type
	if expType == "" {
		expType = classifier.Classify(title + " " + description)
	} else if !expType.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid experience type %q", expType))
	}

	exp := &models.Experience{
		Title:       title,
		Type:        expType,
		Description: description,
		Guidelines:  strings.TrimSpace(req.Guidelines),
		CreatedBy:   actorID,
	}
	if err := s.experienceRepo.Create(ctx, exp); err != nil {
		return nil, fmt.Errorf("error sharing experience: %w", err)
	}

	s.logger.Info().
		Int64("experienceID", exp.ID).
		Str("type", string(exp.Type)).
		Bool("classified", req.Type == "").
		Msg("Experience shared")
	return exp, nil
}

// List returns experiences newest first. An empty type or "All" lists every type.
func (s *experienceServiceImpl) List(ctx context.Context, expType string) ([]*models.Experience, error) {
	filter := models.ExperienceType(strings.TrimSpace(expType))
	if strings.EqualFold(string(filter), categoryAll) {
		filter = ""
	}
	if filter != "" && !filter.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid experience type %q", expType))
	}
	return s.experienceRepo.List(ctx, filter)
}

// Get returns one experience with its reaction counts
func (s *experienceServiceImpl) Get(ctx context.Context, id int64) (*models.Experience, error) {
	return s.experienceRepo.GetByID(ctx, id)
}

// React toggles the actor's reaction. A like replaces a dislike and vice versa;
// repeating the current reaction removes it.
func (s *experienceServiceImpl) React(ctx context.Context, actorID, experienceID int64, reaction models.Reaction) (*models.Experience, error) {
	if reaction != models.ReactionLike && reaction != models.ReactionDislike {
		return nil, apperrors.NewValidationError("reaction must be like or dislike")
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.experienceRepo.GetByID(ctx, experienceID); err != nil {
			return err
		}
		current, err := s.experienceRepo.GetReaction(ctx, experienceID, actorID)
		if err != nil {
			return err
		}
		next := reaction
		if current == reaction {
			next = ""
		}
		return s.experienceRepo.SetReaction(ctx, experienceID, actorID, next)
	})
	if err != nil {
		return nil, err
	}
	return s.experienceRepo.GetByID(ctx, experienceID)
}

// Classify tags free text with an experience type
func (s *experienceServiceImpl) Classify(text string) models.ExperienceType {
	return classifier.Classify(text)
}
