package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/repositories"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
	"github.com/yigit/skillswap/internal/pkg/email"
)

// RedeemService exchanges coins for catalog rewards
type RedeemService interface {
	Options() []models.RewardOption
	Redeem(ctx context.Context, accountID int64, rewardID int) (*dto.RedeemResponse, error)
	History(ctx context.Context, accountID int64) ([]*models.Redemption, error)
}

// redeemServiceImpl implements RedeemService
type redeemServiceImpl struct {
	tx             repositories.TxManager
	accountRepo    repositories.AccountRepository
	redemptionRepo repositories.RedemptionRepository
	ledger         LedgerService
	emailService   email.EmailService
	logger         zerolog.Logger
}

// NewRedeemService creates a new RedeemService
func NewRedeemService(
	repos *repositories.Repositories,
	ledger LedgerService,
	emailService email.EmailService,
	logger zerolog.Logger,
) RedeemService {
	return &redeemServiceImpl{
		tx:             repos.Tx,
		accountRepo:    repos.Accounts,
		redemptionRepo: repos.Redemptions,
		ledger:         ledger,
		emailService:   emailService,
		logger:         logger,
	}
}

// Options returns the reward catalog
func (s *redeemServiceImpl) Options() []models.RewardOption {
	return models.RewardCatalog
}

// Redeem debits the reward cost and records the redemption in one unit of work
func (s *redeemServiceImpl) Redeem(ctx context.Context, accountID int64, rewardID int) (*dto.RedeemResponse, error) {
	reward, ok := models.FindReward(rewardID)
	if !ok {
		return nil, apperrors.ErrRewardNotFound
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	redemption := &models.Redemption{
		AccountID:         accountID,
		RewardID:          reward.ID,
		RewardName:        reward.Name,
		CoinsUsed:         reward.CoinsRequired,
		IllustrativeValue: reward.IllustrativeValue,
	}

	var balance int
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		balance, err = s.ledger.Debit(ctx, accountID, reward.CoinsRequired, "Redeemed: "+reward.Name)
		if err != nil {
			return err
		}
		if err := s.redemptionRepo.Create(ctx, redemption); err != nil {
			return fmt.Errorf("error recording redemption: %w", err)
		}
		if reward.HighlightsProfile {
			return s.accountRepo.SetHighlighted(ctx, accountID, true)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("accountID", accountID).
		Int("rewardID", reward.ID).
		Int("coinsUsed", reward.CoinsRequired).
		Msg("Reward redeemed")

	if err := s.emailService.SendRedemptionEmail(account.Email, account.Name, reward.Name, reward.CoinsRequired); err != nil {
		s.logger.Warn().Err(err).Int64("accountID", accountID).Msg("Failed to send redemption email")
	}

	return &dto.RedeemResponse{Redemption: redemption, Balance: balance}, nil
}

// History returns the account's redemptions, newest first
func (s *redeemServiceImpl) History(ctx context.Context, accountID int64) ([]*models.Redemption, error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.redemptionRepo.ListByAccount(ctx, accountID)
}
