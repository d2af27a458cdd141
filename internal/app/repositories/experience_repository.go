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
	"github.com/yigit/skillswap/internal/pkg/logger"
)

// Reaction counts are derived from the reaction set on every read
var experienceColumns = []string{
	"e.id", "e.title", "e.type", "e.description", "e.guidelines", "e.created_by",
	"(SELECT COUNT(*) FROM experience_reactions r WHERE r.experience_id = e.id AND r.reaction = 'like')",
	"(SELECT COUNT(*) FROM experience_reactions r WHERE r.experience_id = e.id AND r.reaction = 'dislike')",
	"e.created_at",
}

// PostgresExperienceRepository handles experience board database operations
type PostgresExperienceRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewExperienceRepository creates a new PostgresExperienceRepository
func NewExperienceRepository(database *db.PostgresDB) *PostgresExperienceRepository {
	return &PostgresExperienceRepository{
		db: database,
		sb: statementBuilder(),
	}
}

func scanExperience(row pgx.Row) (*models.Experience, error) {
	e := &models.Experience{}
	if err := row.Scan(&e.ID, &e.Title, &e.Type, &e.Description, &e.Guidelines, &e.CreatedBy,
		&e.Likes, &e.Dislikes, &e.CreatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

// Create stores a shared experience
func (r *PostgresExperienceRepository) Create(ctx context.Context, exp *models.Experience) error {
	sql, args, err := r.sb.Insert("experiences").
		Columns("title", "type", "description", "guidelines", "created_by").
		Values(exp.Title, exp.Type, exp.Description, exp.Guidelines, exp.CreatedBy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create experience SQL")
		return fmt.Errorf("failed to build create experience query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&exp.ID, &exp.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("createdBy", exp.CreatedBy).Msg("Error executing create experience query")
		return fmt.Errorf("error creating experience: %w", err)
	}
	return nil
}

// GetByID retrieves an experience with its reaction counts
func (r *PostgresExperienceRepository) GetByID(ctx context.Context, id int64) (*models.Experience, error) {
	sql, args, err := r.sb.Select(experienceColumns...).
		From("experiences e").
		Where(squirrel.Eq{"e.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get experience SQL")
		return nil, fmt.Errorf("failed to build get experience query: %w", err)
	}

	exp, err := scanExperience(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExperienceNotFound
		}
		logger.Error().Err(err).Int64("experienceID", id).Msg("Error scanning experience row")
		return nil, fmt.Errorf("error getting experience: %w", err)
	}
	return exp, nil
}

// List returns experiences newest first, optionally of one type
func (r *PostgresExperienceRepository) List(ctx context.Context, expType models.ExperienceType) ([]*models.Experience, error) {
	query := r.sb.Select(experienceColumns...).From("experiences e")
	if expType != "" {
		query = query.Where(squirrel.Eq{"e.type": expType})
	}

	sql, args, err := query.OrderBy("e.created_at DESC", "e.id DESC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list experiences SQL")
		return nil, fmt.Errorf("failed to build list experiences query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list experiences query")
		return nil, fmt.Errorf("error listing experiences: %w", err)
	}
	defer rows.Close()

	list := make([]*models.Experience, 0)
	for rows.Next() {
		exp, err := scanExperience(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning experience row")
			return nil, fmt.Errorf("error scanning experience: %w", err)
		}
		list = append(list, exp)
	}
	return list, rows.Err()
}

// GetReaction returns the account's reaction, or "" when it has none
func (r *PostgresExperienceRepository) GetReaction(ctx context.Context, experienceID, accountID int64) (models.Reaction, error) {
	sql, args, err := r.sb.Select("reaction").
		From("experience_reactions").
		Where(squirrel.Eq{"experience_id": experienceID, "account_id": accountID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get reaction SQL")
		return "", fmt.Errorf("failed to build get reaction query: %w", err)
	}

	var reaction models.Reaction
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&reaction); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		logger.Error().Err(err).Int64("experienceID", experienceID).Msg("Error scanning reaction row")
		return "", fmt.Errorf("error getting reaction: %w", err)
	}
	return reaction, nil
}

// SetReaction upserts the account's reaction, or deletes it when reaction is empty
func (r *PostgresExperienceRepository) SetReaction(ctx context.Context, experienceID, accountID int64, reaction models.Reaction) error {
	var (
		sql  string
		args []interface{}
		err  error
	)
	if reaction == "" {
		sql, args, err = r.sb.Delete("experience_reactions").
			Where(squirrel.Eq{"experience_id": experienceID, "account_id": accountID}).
			ToSql()
	} else {
		sql, args, err = r.sb.Insert("experience_reactions").
			Columns("experience_id", "account_id", "reaction").
			Values(experienceID, accountID, reaction).
			Suffix("ON CONFLICT (experience_id, account_id) DO UPDATE SET reaction = EXCLUDED.reaction").
			ToSql()
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error building set reaction SQL")
		return fmt.Errorf("failed to build set reaction query: %w", err)
	}

	if _, err := r.db.Conn(ctx).Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("experienceID", experienceID).Int64("accountID", accountID).Msg("Error executing set reaction query")
		return fmt.Errorf("error setting reaction: %w", err)
	}
	return nil
}
