package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/db"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
	"github.com/yigit/skillswap/internal/pkg/dberrors"
	"github.com/yigit/skillswap/internal/pkg/logger"
)

var accountColumns = []string{
	"id", "name", "email", "password_hash", "bio", "coins", "opening_coins",
	"average_rating", "rating_count", "highlighted", "last_active_at", "created_at",
}

// PostgresAccountRepository handles account database operations
type PostgresAccountRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewAccountRepository creates a new PostgresAccountRepository
func NewAccountRepository(database *db.PostgresDB) *PostgresAccountRepository {
	return &PostgresAccountRepository{
		db: database,
		sb: statementBuilder(),
	}
}

func scanAccount(row pgx.Row) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Bio, &a.Coins, &a.OpeningCoins,
		&a.AverageRating, &a.RatingCount, &a.Highlighted, &a.LastActiveAt, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new account and fills in its generated fields
func (r *PostgresAccountRepository) Create(ctx context.Context, account *models.Account) error {
	sql, args, err := r.sb.Insert("accounts").
		Columns("name", "email", "password_hash", "bio", "coins", "opening_coins", "last_active_at").
		Values(account.Name, account.Email, account.PasswordHash, account.Bio,
			account.Coins, account.OpeningCoins, account.LastActiveAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create account SQL")
		return fmt.Errorf("failed to build create account query: %w", err)
	}

	err = r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "accounts_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("email", account.Email).Msg("Error executing create account query")
		return fmt.Errorf("error creating account: %w", err)
	}
	return nil
}

func (r *PostgresAccountRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Account, error) {
	sql, args, err := r.sb.Select(accountColumns...).
		From("accounts").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get account SQL")
		return nil, fmt.Errorf("failed to build get account query: %w", err)
	}

	account, err := scanAccount(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		logger.Error().Err(err).Msg("Error scanning account row")
		return nil, fmt.Errorf("error getting account: %w", err)
	}
	return account, nil
}

// GetByID retrieves an account by ID
func (r *PostgresAccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves an account by its normalized email
func (r *PostgresAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *PostgresAccountRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Account, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list accounts SQL")
		return nil, fmt.Errorf("failed to build list accounts query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list accounts query")
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]*models.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning account row")
			return nil, fmt.Errorf("error scanning account: %w", err)
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

// List returns every account ordered by ID
func (r *PostgresAccountRepository) List(ctx context.Context) ([]*models.Account, error) {
	return r.list(ctx, r.sb.Select(accountColumns...).From("accounts").OrderBy("id"))
}

// TopByCoins returns the richest accounts, ties broken by ID
func (r *PostgresAccountRepository) TopByCoins(ctx context.Context, limit int) ([]*models.Account, error) {
	return r.list(ctx, r.sb.Select(accountColumns...).
		From("accounts").
		OrderBy("coins DESC", "id").
		Limit(uint64(limit)))
}

func (r *PostgresAccountRepository) update(ctx context.Context, id int64, values map[string]interface{}) error {
	sql, args, err := r.sb.Update("accounts").
		SetMap(values).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update account SQL")
		return fmt.Errorf("failed to build update account query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("accountID", id).Msg("Error executing update account query")
		return fmt.Errorf("error updating account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// TouchLastActive records recent activity
func (r *PostgresAccountRepository) TouchLastActive(ctx context.Context, id int64, at time.Time) error {
	return r.update(ctx, id, map[string]interface{}{"last_active_at": at})
}

// AddRating folds the rating into the average in one UPDATE so concurrent reviews of
// the same mentor cannot overwrite each other.
func (r *PostgresAccountRepository) AddRating(ctx context.Context, id int64, rating int) (float64, error) {
	sql, args, err := r.sb.Update("accounts").
		Set("average_rating", squirrel.Expr("(average_rating * rating_count + ?) / (rating_count + 1)", rating)).
		Set("rating_count", squirrel.Expr("rating_count + 1")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING average_rating").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building add rating SQL")
		return 0, fmt.Errorf("failed to build add rating query: %w", err)
	}

	var average float64
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&average); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrAccountNotFound
		}
		logger.Error().Err(err).Int64("accountID", id).Msg("Error executing add rating query")
		return 0, fmt.Errorf("error adding rating: %w", err)
	}
	return average, nil
}

// SetHighlighted toggles the profile highlight flag
func (r *PostgresAccountRepository) SetHighlighted(ctx context.Context, id int64, highlighted bool) error {
	return r.update(ctx, id, map[string]interface{}{"highlighted": highlighted})
}

// ApplyDelta changes the balance with a single conditional UPDATE so concurrent
// debits can never take it below zero.
func (r *PostgresAccountRepository) ApplyDelta(ctx context.Context, id int64, delta int) (int, error) {
	query := r.sb.Update("accounts").
		Set("coins", squirrel.Expr("coins + ?", delta)).
		Where(squirrel.Eq{"id": id})
	if delta < 0 {
		query = query.Where(squirrel.GtOrEq{"coins": -delta})
	}

	sql, args, err := query.Suffix("RETURNING coins").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building apply delta SQL")
		return 0, fmt.Errorf("failed to build apply delta query: %w", err)
	}

	var balance int
	err = r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Int64("accountID", id).Int("delta", delta).Msg("Error executing apply delta query")
		return 0, fmt.Errorf("error applying balance delta: %w", err)
	}

	// No row came back: either the account is missing or the floor check failed.
	if _, err := r.GetByID(ctx, id); err != nil {
		return 0, err
	}
	return 0, apperrors.ErrInsufficientFunds
}
