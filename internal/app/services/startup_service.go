package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/repositories"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
)

// StartupService defines the interface for the startup registry
type StartupService interface {
	Register(ctx context.Context, actorID int64, req *dto.RegisterStartupRequest) (*models.Startup, error)
	List(ctx context.Context, limit int) ([]*models.Startup, error)
	Get(ctx context.Context, id int64) (*models.Startup, error)
	Sponsor(ctx context.Context, actorID, startupID int64, amount int) (*models.Startup, int, error)
	Rate(ctx context.Context, actorID, startupID int64, stars int) (*models.Startup, error)
}

// startupServiceImpl implements StartupService
type startupServiceImpl struct {
	tx          repositories.TxManager
	startupRepo repositories.StartupRepository
	ledger      LedgerService
	logger      zerolog.Logger
}

// NewStartupService creates a new StartupService
func NewStartupService(repos *repositories.Repositories, ledger LedgerService, logger zerolog.Logger) StartupService {
	return &startupServiceImpl{
		tx:          repos.Tx,
		startupRepo: repos.Startups,
		ledger:      ledger,
		logger:      logger,
	}
}

// Register adds a startup to the registry
func (s *startupServiceImpl) Register(ctx context.Context, actorID int64, req *dto.RegisterStartupRequest) (*models.Startup, error) {
	name := strings.TrimSpace(req.Name)
	idea := strings.TrimSpace(req.IdeaOrProblem)
	if name == "" || idea == "" {
		return nil, apperrors.NewValidationError("name and idea are required")
	}

	startup := &models.Startup{
		Name:           name,
		IdeaOrProblem:  idea,
		Implementation: strings.TrimSpace(req.Implementation),
		GithubLink:     strings.TrimSpace(req.GithubLink),
		CreatedBy:      actorID,
	}
	if err := s.startupRepo.Create(ctx, startup); err != nil {
		return nil, fmt.Errorf("error registering startup: %w", err)
	}

	s.logger.Info().Int64("startupID", startup.ID).Int64("creatorID", actorID).Msg("Startup registered")
	return startup, nil
}

// List returns startups by sponsored coins, then average rating. A limit <= 0 returns all.
func (s *startupServiceImpl) List(ctx context.Context, limit int) ([]*models.Startup, error) {
	return s.startupRepo.List(ctx, limit)
}

// Get returns one startup
func (s *startupServiceImpl) Get(ctx context.Context, id int64) (*models.Startup, error) {
	return s.startupRepo.GetByID(ctx, id)
}

// Sponsor moves coins from the actor to the startup total in one unit of work.
// It returns the updated startup and the actor's new balance.
func (s *startupServiceImpl) Sponsor(ctx context.Context, actorID, startupID int64, amount int) (*models.Startup, int, error) {
	if amount <= 0 {
		return nil, 0, apperrors.ErrInvalidAmount
	}
	startup, err := s.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		return nil, 0, err
	}

	var balance int
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		balance, err = s.ledger.Debit(ctx, actorID, amount, "Sponsored startup: "+startup.Name)
		if err != nil {
			return err
		}
		return s.startupRepo.AddSponsorship(ctx, startupID, amount)
	})
	if err != nil {
		return nil, 0, err
	}

	s.logger.Info().Int64("startupID", startupID).Int64("sponsorID", actorID).Int("amount", amount).Msg("Startup sponsored")

	startup, err = s.startupRepo.GetByID(ctx, startupID)
	if err != nil {
		return nil, 0, err
	}
	return startup, balance, nil
}

// Rate records the actor's stars for a startup, replacing an earlier rating
func (s *startupServiceImpl) Rate(ctx context.Context, actorID, startupID int64, stars int) (*models.Startup, error) {
	if stars < 1 || stars > 5 {
		return nil, apperrors.NewValidationError("stars must be between 1 and 5")
	}
	if err := s.startupRepo.UpsertRating(ctx, startupID, actorID, stars); err != nil {
		return nil, err
	}
	return s.startupRepo.GetByID(ctx, startupID)
}
