package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/skillswap/internal/app/auth"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/repositories"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
	"github.com/yigit/skillswap/internal/pkg/metrics"
)

// FeedbackService defines the interface for mentor reviews
type FeedbackService interface {
	Submit(ctx context.Context, learnerID int64, req *dto.SubmitFeedbackRequest) (*models.Feedback, error)
	ListForMentor(ctx context.Context, mentorID int64) (*dto.MentorFeedbackResponse, error)
	GetForRequest(ctx context.Context, requestID int64) (*models.Feedback, error)
}

// feedbackServiceImpl implements FeedbackService
type feedbackServiceImpl struct {
	tx           repositories.TxManager
	feedbackRepo repositories.FeedbackRepository
	requestRepo  repositories.RequestRepository
	accountRepo  repositories.AccountRepository
	metrics      *metrics.Manager
	logger       zerolog.Logger
}

// NewFeedbackService creates a new FeedbackService
func NewFeedbackService(repos *repositories.Repositories, metricsManager *metrics.Manager, logger zerolog.Logger) FeedbackService {
	return &feedbackServiceImpl{
		tx:           repos.Tx,
		feedbackRepo: repos.Feedback,
		requestRepo:  repos.Requests,
		accountRepo:  repos.Accounts,
		metrics:      metricsManager,
		logger:       logger,
	}
}

// Submit records the learner's one review of a completed request, updates the mentor's
// rating and moves the request to feedback_submitted.
func (s *feedbackServiceImpl) Submit(ctx context.Context, learnerID int64, req *dto.SubmitFeedbackRequest) (*models.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}

	request, err := s.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireLearner(request, learnerID); err != nil {
		return nil, err
	}

	switch request.Status {
	case models.StatusFeedbackSubmitted:
		return nil, apperrors.ErrAlreadyReviewed
	case models.StatusCompleted:
	default:
		return nil, apperrors.ErrNotYetCompleted
	}

	if _, err := s.feedbackRepo.GetByRequest(ctx, request.ID); err == nil {
		return nil, apperrors.ErrAlreadyReviewed
	} else if !errors.Is(err, apperrors.ErrFeedbackNotFound) {
		return nil, fmt.Errorf("error checking feedback: %w", err)
	}

	feedback := &models.Feedback{
		RequestID: request.ID,
		LearnerID: request.LearnerID,
		MentorID:  request.MentorID,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
			return err
		}

		if _, err := s.accountRepo.AddRating(ctx, request.MentorID, feedback.Rating); err != nil {
			return err
		}

		request.Status = models.StatusFeedbackSubmitted
		return s.requestRepo.Update(ctx, request, models.StatusCompleted)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidTransition) {
			return nil, apperrors.ErrAlreadyReviewed
		}
		return nil, err
	}

	s.metrics.RecordTransition(string(models.StatusFeedbackSubmitted))
	s.logger.Info().
		Int64("requestID", request.ID).
		Int64("mentorID", request.MentorID).
		Int("rating", feedback.Rating).
		Msg("Feedback submitted")

	return feedback, nil
}

// ListForMentor returns a mentor's reviews, newest first, with the stored aggregate
func (s *feedbackServiceImpl) ListForMentor(ctx context.Context, mentorID int64) (*dto.MentorFeedbackResponse, error) {
	mentor, err := s.accountRepo.GetByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrMentorNotFound
		}
		return nil, err
	}

	list, err := s.feedbackRepo.ListByMentor(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("error listing feedback: %w", err)
	}

	return &dto.MentorFeedbackResponse{
		Feedback:      list,
		Count:         len(list),
		AverageRating: mentor.AverageRating,
	}, nil
}

// GetForRequest returns the review left on a request
func (s *feedbackServiceImpl) GetForRequest(ctx context.Context, requestID int64) (*models.Feedback, error) {
	if _, err := s.requestRepo.GetByID(ctx, requestID); err != nil {
		return nil, err
	}
	return s.feedbackRepo.GetByRequest(ctx, requestID)
}
