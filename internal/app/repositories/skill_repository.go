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

var skillColumns = []string{"id", "name", "level", "category", "owner_id", "direction", "created_at"}

// PostgresSkillRepository handles skill catalog database operations
type PostgresSkillRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewSkillRepository creates a new PostgresSkillRepository
func NewSkillRepository(database *db.PostgresDB) *PostgresSkillRepository {
	return &PostgresSkillRepository{
		db: database,
		sb: statementBuilder(),
	}
}

func scanSkill(row pgx.Row) (*models.Skill, error) {
	s := &models.Skill{}
	if err := row.Scan(&s.ID, &s.Name, &s.Level, &s.Category, &s.OwnerID, &s.Direction, &s.CreatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a skill posting
func (r *PostgresSkillRepository) Create(ctx context.Context, skill *models.Skill) error {
	sql, args, err := r.sb.Insert("skills").
		Columns("owner_id", "name", "level", "category", "direction").
		Values(skill.OwnerID, skill.Name, skill.Level, skill.Category, skill.Direction).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create skill SQL")
		return fmt.Errorf("failed to build create skill query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&skill.ID, &skill.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("ownerID", skill.OwnerID).Msg("Error executing create skill query")
		return fmt.Errorf("error creating skill: %w", err)
	}
	return nil
}

// GetByID retrieves a skill by ID
func (r *PostgresSkillRepository) GetByID(ctx context.Context, id int64) (*models.Skill, error) {
	sql, args, err := r.sb.Select(skillColumns...).
		From("skills").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get skill SQL")
		return nil, fmt.Errorf("failed to build get skill query: %w", err)
	}

	skill, err := scanSkill(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSkillNotFound
		}
		logger.Error().Err(err).Int64("skillID", id).Msg("Error scanning skill row")
		return nil, fmt.Errorf("error getting skill: %w", err)
	}
	return skill, nil
}

// ListByOwner returns every skill an account posted
func (r *PostgresSkillRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Skill, error) {
	return r.list(ctx, r.sb.Select(skillColumns...).
		From("skills").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id"))
}

// Search filters skills by case-insensitive name substring, category and direction
func (r *PostgresSkillRepository) Search(ctx context.Context, filter SkillFilter) ([]*models.Skill, error) {
	query := r.sb.Select(skillColumns...).From("skills")

	if filter.NameContains != "" {
		query = query.Where(squirrel.ILike{"name": "%" + filter.NameContains + "%"})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Direction != "" {
		query = query.Where(squirrel.Eq{"direction": filter.Direction})
	}

	return r.list(ctx, query.OrderBy("created_at DESC", "id DESC"))
}

func (r *PostgresSkillRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Skill, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list skills SQL")
		return nil, fmt.Errorf("failed to build list skills query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list skills query")
		return nil, fmt.Errorf("error listing skills: %w", err)
	}
	defer rows.Close()

	skills := make([]*models.Skill, 0)
	for rows.Next() {
		skill, err := scanSkill(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning skill row")
			return nil, fmt.Errorf("error scanning skill: %w", err)
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}
