package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/repositories"
)

// LeaderboardSize is how many accounts the leaderboard shows
const LeaderboardSize = 10

// UserService defines the interface for account profile operations
type UserService interface {
	GetProfile(ctx context.Context, id int64) (*models.Account, error)
	List(ctx context.Context) ([]*models.Account, error)
	Leaderboard(ctx context.Context) ([]*models.Account, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	accountRepo repositories.AccountRepository
	skillRepo   repositories.SkillRepository
	logger      zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	accountRepo repositories.AccountRepository,
	skillRepo repositories.SkillRepository,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		accountRepo: accountRepo,
		skillRepo:   skillRepo,
		logger:      logger,
	}
}

// GetProfile retrieves an account with its offered and wanted skills
func (s *userServiceImpl) GetProfile(ctx context.Context, id int64) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	skills, err := s.skillRepo.ListByOwner(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error finding skills: %w", err)
	}

	account.SkillsOffered = []*models.Skill{}
	account.SkillsWanted = []*models.Skill{}
	for _, skill := range skills {
		if skill.Direction == models.DirectionOffered {
			account.SkillsOffered = append(account.SkillsOffered, skill)
		} else {
			account.SkillsWanted = append(account.SkillsWanted, skill)
		}
	}

	return account, nil
}

// List returns every account
func (s *userServiceImpl) List(ctx context.Context) ([]*models.Account, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}
	return accounts, nil
}

// Leaderboard returns the richest accounts
func (s *userServiceImpl) Leaderboard(ctx context.Context) ([]*models.Account, error) {
	accounts, err := s.accountRepo.TopByCoins(ctx, LeaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("error building leaderboard: %w", err)
	}
	return accounts, nil
}
