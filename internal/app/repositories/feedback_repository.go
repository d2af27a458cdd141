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

var feedbackColumns = []string{"id", "request_id", "learner_id", "mentor_id", "rating", "comment", "created_at"}

// PostgresFeedbackRepository handles feedback database operations
type PostgresFeedbackRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewFeedbackRepository creates a new PostgresFeedbackRepository
func NewFeedbackRepository(database *db.PostgresDB) *PostgresFeedbackRepository {
	return &PostgresFeedbackRepository{
		db: database,
		sb: statementBuilder(),
	}
}

func scanFeedback(row pgx.Row) (*models.Feedback, error) {
	f := &models.Feedback{}
	if err := row.Scan(&f.ID, &f.RequestID, &f.LearnerID, &f.MentorID, &f.Rating, &f.Comment, &f.CreatedAt); err != nil {
		return nil, err
	}
	return f, nil
}

// Create stores feedback. A second row for the same request is rejected by the unique constraint.
func (r *PostgresFeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	sql, args, err := r.sb.Insert("feedback").
		Columns("request_id", "learner_id", "mentor_id", "rating", "comment").
		Values(feedback.RequestID, feedback.LearnerID, feedback.MentorID, feedback.Rating, feedback.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create feedback SQL")
		return fmt.Errorf("failed to build create feedback query: %w", err)
	}

	err = r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&feedback.ID, &feedback.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "feedback_request_id_key") {
			return apperrors.ErrAlreadyReviewed
		}
		logger.Error().Err(err).Int64("requestID", feedback.RequestID).Msg("Error executing create feedback query")
		return fmt.Errorf("error creating feedback: %w", err)
	}
	return nil
}

// GetByRequest retrieves the feedback left on a request
func (r *PostgresFeedbackRepository) GetByRequest(ctx context.Context, requestID int64) (*models.Feedback, error) {
	sql, args, err := r.sb.Select(feedbackColumns...).
		From("feedback").
		Where(squirrel.Eq{"request_id": requestID}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get feedback SQL")
		return nil, fmt.Errorf("failed to build get feedback query: %w", err)
	}

	feedback, err := scanFeedback(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFeedbackNotFound
		}
		logger.Error().Err(err).Int64("requestID", requestID).Msg("Error scanning feedback row")
		return nil, fmt.Errorf("error getting feedback: %w", err)
	}
	return feedback, nil
}

// ListByMentor returns the mentor's reviews, newest first
func (r *PostgresFeedbackRepository) ListByMentor(ctx context.Context, mentorID int64) ([]*models.Feedback, error) {
	sql, args, err := r.sb.Select(feedbackColumns...).
		From("feedback").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list feedback SQL")
		return nil, fmt.Errorf("failed to build list feedback query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("mentorID", mentorID).Msg("Error executing list feedback query")
		return nil, fmt.Errorf("error listing feedback: %w", err)
	}
	defer rows.Close()

	list := make([]*models.Feedback, 0)
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning feedback row")
			return nil, fmt.Errorf("error scanning feedback: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}
