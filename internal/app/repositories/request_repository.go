package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/db"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
	"github.com/yigit/skillswap/internal/pkg/logger"
)

var requestColumns = []string{
	"id", "learner_id", "mentor_id", "skill_id", "status", "message", "session_notes",
	"quiz", "quiz_score", "created_at", "accepted_at", "completed_at",
}

// PostgresRequestRepository handles mentorship request database operations
type PostgresRequestRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewRequestRepository creates a new PostgresRequestRepository
func NewRequestRepository(database *db.PostgresDB) *PostgresRequestRepository {
	return &PostgresRequestRepository{
		db: database,
		sb: statementBuilder(),
	}
}

func encodeQuiz(quiz *models.Quiz) ([]byte, error) {
	if quiz == nil {
		return nil, nil
	}
	return json.Marshal(quiz)
}

func scanRequest(row pgx.Row) (*models.MentorshipRequest, error) {
	req := &models.MentorshipRequest{}
	var quiz []byte
	err := row.Scan(
		&req.ID, &req.LearnerID, &req.MentorID, &req.SkillID, &req.Status, &req.Message,
		&req.SessionNotes, &quiz, &req.QuizScore, &req.CreatedAt, &req.AcceptedAt, &req.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(quiz) > 0 {
		req.Quiz = &models.Quiz{}
		if err := json.Unmarshal(quiz, req.Quiz); err != nil {
			return nil, fmt.Errorf("error decoding quiz: %w", err)
		}
	}
	return req, nil
}

// Create inserts a new request in its initial status
func (r *PostgresRequestRepository) Create(ctx context.Context, req *models.MentorshipRequest) error {
	sql, args, err := r.sb.Insert("mentorship_requests").
		Columns("learner_id", "mentor_id", "skill_id", "status", "message").
		Values(req.LearnerID, req.MentorID, req.SkillID, req.Status, req.Message).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create request SQL")
		return fmt.Errorf("failed to build create request query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&req.ID, &req.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("learnerID", req.LearnerID).Msg("Error executing create request query")
		return fmt.Errorf("error creating request: %w", err)
	}
	return nil
}

// GetByID retrieves a request by ID
func (r *PostgresRequestRepository) GetByID(ctx context.Context, id int64) (*models.MentorshipRequest, error) {
	sql, args, err := r.sb.Select(requestColumns...).
		From("mentorship_requests").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get request SQL")
		return nil, fmt.Errorf("failed to build get request query: %w", err)
	}

	req, err := scanRequest(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		logger.Error().Err(err).Int64("requestID", id).Msg("Error scanning request row")
		return nil, fmt.Errorf("error getting request: %w", err)
	}
	return req, nil
}

// Update writes the mutable fields, guarded by the expected current status
func (r *PostgresRequestRepository) Update(ctx context.Context, req *models.MentorshipRequest, expected models.RequestStatus) error {
	quiz, err := encodeQuiz(req.Quiz)
	if err != nil {
		return fmt.Errorf("error encoding quiz: %w", err)
	}

	sql, args, err := r.sb.Update("mentorship_requests").
		SetMap(map[string]interface{}{
			"status":        req.Status,
			"session_notes": req.SessionNotes,
			"quiz":          quiz,
			"quiz_score":    req.QuizScore,
			"accepted_at":   req.AcceptedAt,
			"completed_at":  req.CompletedAt,
		}).
		Where(squirrel.Eq{"id": req.ID, "status": expected}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update request SQL")
		return fmt.Errorf("failed to build update request query: %w", err)
	}

	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("requestID", req.ID).Msg("Error executing update request query")
		return fmt.Errorf("error updating request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, req.ID); err != nil {
			return err
		}
		return fmt.Errorf("%w: request is no longer %s", apperrors.ErrInvalidTransition, expected)
	}
	return nil
}

// ListByLearner returns the learner's outgoing requests, newest first
func (r *PostgresRequestRepository) ListByLearner(ctx context.Context, learnerID int64) ([]*models.MentorshipRequest, error) {
	return r.list(ctx, squirrel.Eq{"learner_id": learnerID})
}

// ListByMentor returns the mentor's incoming requests, newest first
func (r *PostgresRequestRepository) ListByMentor(ctx context.Context, mentorID int64) ([]*models.MentorshipRequest, error) {
	return r.list(ctx, squirrel.Eq{"mentor_id": mentorID})
}

func (r *PostgresRequestRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]*models.MentorshipRequest, error) {
	sql, args, err := r.sb.Select(requestColumns...).
		From("mentorship_requests").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list requests SQL")
		return nil, fmt.Errorf("failed to build list requests query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list requests query")
		return nil, fmt.Errorf("error listing requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*models.MentorshipRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning request row")
			return nil, fmt.Errorf("error scanning request: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// PostgresMessageRepository stores the messages posted on a request
type PostgresMessageRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewMessageRepository creates a new PostgresMessageRepository
func NewMessageRepository(database *db.PostgresDB) *PostgresMessageRepository {
	return &PostgresMessageRepository{
		db: database,
		sb: statementBuilder(),
	}
}

// Create stores a message
func (r *PostgresMessageRepository) Create(ctx context.Context, msg *models.Message) error {
	sql, args, err := r.sb.Insert("request_messages").
		Columns("request_id", "sender_id", "body").
		Values(msg.RequestID, msg.SenderID, msg.Body).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create message SQL")
		return fmt.Errorf("failed to build create message query: %w", err)
	}

	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&msg.ID, &msg.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("requestID", msg.RequestID).Msg("Error executing create message query")
		return fmt.Errorf("error creating message: %w", err)
	}
	return nil
}

// ListByRequest returns the request's messages, oldest first
func (r *PostgresMessageRepository) ListByRequest(ctx context.Context, requestID int64) ([]*models.Message, error) {
	sql, args, err := r.sb.Select("id", "request_id", "sender_id", "body", "created_at").
		From("request_messages").
		Where(squirrel.Eq{"request_id": requestID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list messages SQL")
		return nil, fmt.Errorf("failed to build list messages query: %w", err)
	}

	rows, err := r.db.Conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list messages query")
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*models.Message, 0)
	for rows.Next() {
		m := &models.Message{}
		if err := rows.Scan(&m.ID, &m.RequestID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning message row")
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
