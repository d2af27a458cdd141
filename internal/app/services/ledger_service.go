package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/repositories"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
	"github.com/yigit/skillswap/internal/pkg/metrics"
)

// LedgerService is the only way coins move. Every balance change writes exactly one
// transaction in the same unit of work.
type LedgerService interface {
	Credit(ctx context.Context, accountID int64, amount int, reason string) (int, error)
	Debit(ctx context.Context, accountID int64, amount int, reason string) (int, error)
	History(ctx context.Context, accountID int64) ([]*models.Transaction, error)
	Audit(ctx context.Context, accountID int64) (*dto.LedgerAudit, error)
}

// ledgerServiceImpl implements LedgerService
type ledgerServiceImpl struct {
	tx          repositories.TxManager
	accountRepo repositories.AccountRepository
	txRepo      repositories.TransactionRepository
	metrics     *metrics.Manager
	logger      zerolog.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	repos *repositories.Repositories,
	metricsManager *metrics.Manager,
	logger zerolog.Logger,
) LedgerService {
	return &ledgerServiceImpl{
		tx:          repos.Tx,
		accountRepo: repos.Accounts,
		txRepo:      repos.Transactions,
		metrics:     metricsManager,
		logger:      logger,
	}
}

// Credit adds amount to the balance and records an earn entry
func (s *ledgerServiceImpl) Credit(ctx context.Context, accountID int64, amount int, reason string) (int, error) {
	return s.apply(ctx, accountID, amount, models.TransactionEarn, reason)
}

// Debit removes amount from the balance and records a spend entry.
// It fails with ErrInsufficientFunds and changes nothing when the balance is too low.
func (s *ledgerServiceImpl) Debit(ctx context.Context, accountID int64, amount int, reason string) (int, error) {
	return s.apply(ctx, accountID, amount, models.TransactionSpend, reason)
}

func (s *ledgerServiceImpl) apply(ctx context.Context, accountID int64, amount int, direction models.TransactionDirection, reason string) (int, error) {
	if amount <= 0 {
		return 0, apperrors.ErrInvalidAmount
	}

	delta := amount
	if direction == models.TransactionSpend {
		delta = -amount
	}

	var balance int
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		balance, err = s.accountRepo.ApplyDelta(ctx, accountID, delta)
		if err != nil {
			return err
		}

		entry := &models.Transaction{
			AccountID:   accountID,
			Direction:   direction,
			Amount:      amount,
			Description: reason,
		}
		if err := s.txRepo.Create(ctx, entry); err != nil {
			return fmt.Errorf("error recording transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientFunds) {
			s.metrics.RecordInsufficientFunds()
			s.logger.Info().
				Int64("accountID", accountID).
				Int("amount", amount).
				Str("reason", reason).
				Msg("Debit refused: insufficient coins")
		}
		return 0, err
	}

	s.metrics.RecordLedgerEntry(string(direction), amount)
	s.logger.Debug().
		Int64("accountID", accountID).
		Str("direction", string(direction)).
		Int("amount", amount).
		Int("balance", balance).
		Str("reason", reason).
		Msg("Ledger entry recorded")

	return balance, nil
}

// History returns the account's ledger entries, newest first
func (s *ledgerServiceImpl) History(ctx context.Context, accountID int64) ([]*models.Transaction, error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.txRepo.ListByAccount(ctx, accountID)
}

// Audit reconciles the stored balance against the opening grant and the transaction history
func (s *ledgerServiceImpl) Audit(ctx context.Context, accountID int64) (*dto.LedgerAudit, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	entries, err := s.txRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}

	audit := &dto.LedgerAudit{
		AccountID:    accountID,
		Balance:      account.Coins,
		OpeningGrant: account.OpeningCoins,
	}
	for _, entry := range entries {
		switch entry.Direction {
		case models.TransactionEarn:
			audit.Earned += entry.Amount
		case models.TransactionSpend:
			audit.Spent += entry.Amount
		}
	}
	audit.Consistent = audit.OpeningGrant+audit.Earned-audit.Spent == audit.Balance

	if !audit.Consistent {
		s.logger.Error().
			Int64("accountID", accountID).
			Int("balance", audit.Balance).
			Int("expected", audit.OpeningGrant+audit.Earned-audit.Spent).
			Msg("Ledger out of balance")
	}

	return audit, nil
}
