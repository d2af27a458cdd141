package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/db"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
	"github.com/yigit/skillswap/internal/pkg/dberrors"
	"github.com/yigit/skillswap/internal/pkg/logger"
)

var startupColumns = []string{
	"s.id", "s.name", "s.idea_or_problem", "s.implementation", "s.github_link", "s.created_by",
	"s.total_sponsored_coins",
	"COALESCE((SELECT AVG(sr.stars) FROM startup_ratings sr WHERE sr.startup_id = s.id), 0)",
	"(SELECT COUNT(*) FROM startup_ratings sr WHERE sr.startup_id = s.id)",
	"s.created_at",
}

// PostgresStartupRepository handles startup database operations
type PostgresStartupRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewStartupRepository creates a new PostgresStartupRepository
func NewStartupRepository(database *db.PostgresDB) *PostgresStartupRepository {
	return &PostgresStartupRepository{
		db: database,
		sb: statementBuilder(),
	}
}

func scanStartup(row pgx.Row) (*models.Startup, error) {
	s := &models.Startup{}
	if err := row.Scan(&s.ID, &s.Name, &s.IdeaOrProblem, &s.Implementation, &s.GithubLink, &s.CreatedBy,
		&s.TotalSponsoredCoins, &s.AverageRating, &s.RatingCount, &s.CreatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

// Create registers a startup
func (r *PostgresStartupRepository) Create(ctx context.Context, startup *models.Startup) error {
	sql, args, err := r.sb.Insert("startups").
		Columns("name", "idea_or_problem", "implementation", "github_link", "created_by").
		Values(startup.Name, startup.IdeaOrProblem, startup.Implementation, startup.GithubLink, startup.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create startup SQL")
		return fmt.Errorf("failed to build create startup query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&startup.ID, &startup.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("createdBy", startup.CreatedBy).Msg("Error executing create startup query")
		return fmt.Errorf("error creating startup: %w", err)
	}
	return nil
}

// GetByID retrieves a startup with its rating aggregate
func (r *PostgresStartupRepository) GetByID(ctx context.Context, id int64) (*models.Startup, error) {
	sql, args, err := r.sb.Select(startupColumns...).
		From("startups s").
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get startup SQL")
		return nil, fmt.Errorf("failed to build get startup query: %w", err)
	}

	startup, err := scanStartup(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStartupNotFound
		}
		logger.Error().Err(err).Int64("startupID", id).Msg("Error scanning startup row")
		return nil, fmt.Errorf("error getting startup: %w", err)
	}
	return startup, nil
}

// List returns startups ranked by sponsored coins, then average rating
func (r *PostgresStartupRepository) List(ctx context.Context, limit int) ([]*models.Startup, error) {
	query := r.sb.Select(startupColumns...).
		From("startups s").
		OrderBy("7 DESC", "8 DESC", "s.id")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list startups SQL")
		return nil, fmt.Errorf("failed to build list startups query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list startups query")
		return nil, fmt.Errorf("error listing startups: %w", err)
	}
	defer rows.Close()

	startups := make([]*models.Startup, 0)
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning startup row")
			return nil, fmt.Errorf("error scanning startup: %w", err)
		}
		startups = append(startups, s)
	}
	return startups, rows.Err()
}

// AddSponsorship adds coins to the startup's sponsored total
func (r *PostgresStartupRepository) AddSponsorship(ctx context.Context, startupID int64, amount int) error {
	sql, args, err := r.sb.Update("startups").
		Set("total_sponsored_coins", squirrel.Expr("total_sponsored_coins + ?", amount)).
		Where(squirrel.Eq{"id": startupID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building add sponsorship SQL")
		return fmt.Errorf("failed to build add sponsorship query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("startupID", startupID).Msg("Error executing add sponsorship query")
		return fmt.Errorf("error adding sponsorship: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStartupNotFound
	}
	return nil
}

// UpsertRating records one rating per account
func (r *PostgresStartupRepository) UpsertRating(ctx context.Context, startupID, accountID int64, stars int) error {
	sql, args, err := r.sb.Insert("startup_ratings").
		Columns("startup_id", "account_id", "stars").
		Values(startupID, accountID, stars).
		Suffix("ON CONFLICT (startup_id, account_id) DO UPDATE SET stars = EXCLUDED.stars, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert rating SQL")
		return fmt.Errorf("failed to build upsert rating query: %w", err)
	}

	if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrStartupNotFound
		}
		logger.Error().Err(err).Int64("startupID", startupID).Int64("accountID", accountID).Msg("Error executing upsert rating query")
		return fmt.Errorf("error rating startup: %w", err)
	}
	return nil
}
