package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/db"
	"github.com/yigit/skillswap/internal/pkg/logger"
)

// PostgresTransactionRepository stores ledger entries
type PostgresTransactionRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewTransactionRepository creates a new PostgresTransactionRepository
func NewTransactionRepository(database *db.PostgresDB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{
		db: database,
		sb: statementBuilder(),
	}
}

// Create appends a ledger entry
func (r *PostgresTransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	sql, args, err := r.sb.Insert("transactions").
		Columns("account_id", "direction", "amount", "description").
		Values(tx.AccountID, tx.Direction, tx.Amount, tx.Description).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create transaction SQL")
		return fmt.Errorf("failed to build create transaction query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&tx.ID, &tx.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("accountID", tx.AccountID).Msg("Error executing create transaction query")
		return fmt.Errorf("error creating transaction: %w", err)
	}
	return nil
}

// ListByAccount returns the account's ledger, newest first
func (r *PostgresTransactionRepository) ListByAccount(ctx context.Context, accountID int64) ([]*models.Transaction, error) {
	sql, args, err := r.sb.Select("id", "account_id", "direction", "amount", "description", "created_at").
		From("transactions").
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list transactions SQL")
		return nil, fmt.Errorf("failed to build list transactions query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("accountID", accountID).Msg("Error executing list transactions query")
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]*models.Transaction, 0)
	for rows.Next() {
		tx := &models.Transaction{}
		if err := rows.Scan(&tx.ID, &tx.AccountID, &tx.Direction, &tx.Amount, &tx.Description, &tx.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning transaction row")
			return nil, fmt.Errorf("error scanning transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

// PostgresRedemptionRepository stores reward redemptions
type PostgresRedemptionRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewRedemptionRepository creates a new PostgresRedemptionRepository
func NewRedemptionRepository(database *db.PostgresDB) *PostgresRedemptionRepository {
	return &PostgresRedemptionRepository{
		db: database,
		sb: statementBuilder(),
	}
}

// Create records a redemption
func (r *PostgresRedemptionRepository) Create(ctx context.Context, redemption *models.Redemption) error {
	sql, args, err := r.sb.Insert("redemptions").
		Columns("account_id", "reward_id", "reward_name", "coins_used", "illustrative_value").
		Values(redemption.AccountID, redemption.RewardID, redemption.RewardName,
			redemption.CoinsUsed, redemption.IllustrativeValue).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create redemption SQL")
		return fmt.Errorf("failed to build create redemption query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&redemption.ID, &redemption.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("accountID", redemption.AccountID).Msg("Error executing create redemption query")
		return fmt.Errorf("error creating redemption: %w", err)
	}
	return nil
}

// ListByAccount returns the account's redemptions, newest first
func (r *PostgresRedemptionRepository) ListByAccount(ctx context.Context, accountID int64) ([]*models.Redemption, error) {
	sql, args, err := r.sb.Select("id", "account_id", "reward_id", "reward_name", "coins_used", "illustrative_value", "created_at").
		From("redemptions").
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list redemptions SQL")
		return nil, fmt.Errorf("failed to build list redemptions query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list redemptions query")
		return nil, fmt.Errorf("error listing redemptions: %w", err)
	}
	defer rows.Close()

	redemptions := make([]*models.Redemption, 0)
	for rows.Next() {
		rd := &models.Redemption{}
		if err := rows.Scan(&rd.ID, &rd.AccountID, &rd.RewardID, &rd.RewardName,
			&rd.CoinsUsed, &rd.IllustrativeValue, &rd.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning redemption row")
			return nil, fmt.Errorf("error scanning redemption: %w", err)
		}
		redemptions = append(redemptions, rd)
	}
	return redemptions, rows.Err()
}
