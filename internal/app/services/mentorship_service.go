package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yigit/skillswap/internal/app/auth"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/app/repositories"
	"github.com/yigit/skillswap/internal/config"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
	"github.com/yigit/skillswap/internal/pkg/metrics"
)

const (
	maxQuizQuestions = 5
	minQuizOptions   = 2
)

// MentorshipService drives a request through pending, accepted, completed and feedback_submitted
type MentorshipService interface {
	Create(ctx context.Context, learnerID int64, req *dto.CreateRequestRequest) (*models.MentorshipRequest, error)
	Get(ctx context.Context, actorID, requestID int64) (*models.MentorshipRequest, error)
	ListForAccount(ctx context.Context, actorID, accountID int64) (*dto.RequestListResponse, error)
	Accept(ctx context.Context, actorID, requestID int64) (*models.MentorshipRequest, error)
	Complete(ctx context.Context, actorID, requestID int64) (*models.MentorshipRequest, error)
	AttachQuiz(ctx context.Context, actorID, requestID int64, quiz *models.Quiz) (*models.MentorshipRequest, error)
	SubmitQuiz(ctx context.Context, actorID, requestID int64, answers []int) (*dto.QuizResult, error)
	UpdateNotes(ctx context.Context, actorID, requestID int64, notes string) (*models.MentorshipRequest, error)
	PostMessage(ctx context.Context, actorID, requestID int64, body string) (*models.Message, error)
	ListMessages(ctx context.Context, actorID, requestID int64) ([]*models.Message, error)
}

// mentorshipServiceImpl implements MentorshipService
type mentorshipServiceImpl struct {
	tx          repositories.TxManager
	requestRepo repositories.RequestRepository
	messageRepo repositories.MessageRepository
	accountRepo repositories.AccountRepository
	skillRepo   repositories.SkillRepository
	ledger      LedgerService
	policy      config.LedgerConfig
	metrics     *metrics.Manager
	logger      zerolog.Logger
	now         func() time.Time
}

// NewMentorshipService creates a new MentorshipService
func NewMentorshipService(
	repos *repositories.Repositories,
	ledger LedgerService,
	policy config.LedgerConfig,
	metricsManager *metrics.Manager,
	logger zerolog.Logger,
) MentorshipService {
	return &mentorshipServiceImpl{
		tx:          repos.Tx,
		requestRepo: repos.Requests,
		messageRepo: repos.Messages,
		accountRepo: repos.Accounts,
		skillRepo:   repos.Skills,
		ledger:      ledger,
		policy:      policy,
		metrics:     metricsManager,
		logger:      logger,
		now:         time.Now,
	}
}

// Create opens a pending request and charges the learner the request fee in the same unit of work
func (s *mentorshipServiceImpl) Create(ctx context.Context, learnerID int64, req *dto.CreateRequestRequest) (*models.MentorshipRequest, error) {
	if req.MentorID == learnerID {
		return nil, apperrors.NewValidationError("you cannot request mentorship from yourself")
	}

	if _, err := s.accountRepo.GetByID(ctx, learnerID); err != nil {
		return nil, err
	}
	mentor, err := s.accountRepo.GetByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAccountNotFound) {
			return nil, apperrors.ErrMentorNotFound
		}
		return nil, fmt.Errorf("error finding mentor: %w", err)
	}
	if _, err := s.skillRepo.GetByID(ctx, req.SkillID); err != nil {
		return nil, err
	}

	request := &models.MentorshipRequest{
		LearnerID: learnerID,
		MentorID:  mentor.ID,
		SkillID:   req.SkillID,
		Status:    models.StatusPending,
		Message:   strings.TrimSpace(req.Message),
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.ledger.Debit(ctx, learnerID, s.policy.RequestFee, "Sent mentorship request to "+mentor.Name); err != nil {
			return err
		}
		return s.requestRepo.Create(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordTransition(string(models.StatusPending))
	s.logger.Info().
		Int64("requestID", request.ID).
		Int64("learnerID", learnerID).
		Int64("mentorID", mentor.ID).
		Msg("Mentorship request created")

	return request, nil
}

// load fetches a request and checks the actor may see it
func (s *mentorshipServiceImpl) load(ctx context.Context, actorID, requestID int64) (*models.MentorshipRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireParticipant(request, actorID); err != nil {
		return nil, err
	}
	return request, nil
}

// Get returns one request to either participant
func (s *mentorshipServiceImpl) Get(ctx context.Context, actorID, requestID int64) (*models.MentorshipRequest, error) {
	return s.load(ctx, actorID, requestID)
}

// ListForAccount returns the requests an account sent (outgoing) and received (incoming), newest first
func (s *mentorshipServiceImpl) ListForAccount(ctx context.Context, actorID, accountID int64) (*dto.RequestListResponse, error) {
	if actorID != accountID {
		return nil, apperrors.NewForbiddenError("you can only list your own requests")
	}

	resp := &dto.RequestListResponse{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.requestRepo.ListByLearner(gctx, accountID)
		resp.Outgoing = list
		return err
	})
	g.Go(func() error {
		list, err := s.requestRepo.ListByMentor(gctx, accountID)
		resp.Incoming = list
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("error listing requests: %w", err)
	}
	return resp, nil
}

// Accept moves a pending request to accepted. Only the mentor may accept.
func (s *mentorshipServiceImpl) Accept(ctx context.Context, actorID, requestID int64) (*models.MentorshipRequest, error) {
	request, err := s.load(ctx, actorID, requestID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireMentor(request, actorID); err != nil {
		return nil, err
	}
	if !request.Status.CanTransition(models.StatusAccepted) {
		return nil, apperrors.ErrInvalidTransition
	}

	acceptedAt := s.now()
	request.Status = models.StatusAccepted
	request.AcceptedAt = &acceptedAt
	if err := s.requestRepo.Update(ctx, request, models.StatusPending); err != nil {
		return nil, err
	}

	s.metrics.RecordTransition(string(models.StatusAccepted))
	s.logger.Info().Int64("requestID", requestID).Int64("mentorID", actorID).Msg("Mentorship request accepted")
	return request, nil
}

// Complete finishes an accepted request directly and pays both participants
func (s *mentorshipServiceImpl) Complete(ctx context.Context, actorID, requestID int64) (*models.MentorshipRequest, error) {
	request, err := s.load(ctx, actorID, requestID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireMentor(request, actorID); err != nil {
		return nil, err
	}
	if !request.Status.CanTransition(models.StatusCompleted) {
		return nil, apperrors.ErrInvalidTransition
	}

	if err := s.complete(ctx, request, "Completed mentorship"); err != nil {
		return nil, err
	}
	return request, nil
}

// complete flips an accepted request to completed and credits the rewards in one unit of work.
// The status compare-and-set guarantees the rewards are paid at most once.
func (s *mentorshipServiceImpl) complete(ctx context.Context, request *models.MentorshipRequest, how string) error {
	completedAt := s.now()
	request.Status = models.StatusCompleted
	request.CompletedAt = &completedAt

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requestRepo.Update(ctx, request, models.StatusAccepted); err != nil {
			return err
		}
		if err := s.reward(ctx, request.MentorID, s.policy.MentorReward, "Session expert reward ("+how+")"); err != nil {
			return err
		}
		return s.reward(ctx, request.LearnerID, s.policy.LearnerReward, "Learning reward ("+how+")")
	})
	if err != nil {
		request.Status = models.StatusAccepted
		request.CompletedAt = nil
		return err
	}

	s.metrics.RecordTransition(string(models.StatusCompleted))
	s.logger.Info().
		Int64("requestID", request.ID).
		Int64("mentorID", request.MentorID).
		Int64("learnerID", request.LearnerID).
		Str("path", how).
		Msg("Mentorship completed")
	return nil
}

// reward credits a completion reward. A zero reward writes no entry.
func (s *mentorshipServiceImpl) reward(ctx context.Context, accountID int64, amount int, reason string) error {
	if amount == 0 {
		return nil
	}
	_, err := s.ledger.Credit(ctx, accountID, amount, reason)
	return err
}

// AttachQuiz replaces the quiz on an accepted request. Only the mentor may attach one.
func (s *mentorshipServiceImpl) AttachQuiz(ctx context.Context, actorID, requestID int64, quiz *models.Quiz) (*models.MentorshipRequest, error) {
	if err := validateQuiz(quiz); err != nil {
		return nil, err
	}

	request, err := s.load(ctx, actorID, requestID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireMentor(request, actorID); err != nil {
		return nil, err
	}
	if request.Status != models.StatusAccepted {
		return nil, apperrors.ErrInvalidState
	}

	quiz.Enabled = true
	request.Quiz = quiz
	request.QuizScore = nil
	if err := s.requestRepo.Update(ctx, request, models.StatusAccepted); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("requestID", requestID).Int("questions", len(quiz.Questions)).Msg("Quiz attached")
	return request, nil
}

func validateQuiz(quiz *models.Quiz) error {
	if quiz == nil || len(quiz.Questions) == 0 {
		return apperrors.NewValidationError("a quiz needs at least one question")
	}
	if len(quiz.Questions) > maxQuizQuestions {
		return apperrors.NewValidationError(fmt.Sprintf("a quiz can have at most %d questions", maxQuizQuestions))
	}
	for i, q := range quiz.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return apperrors.NewValidationError(fmt.Sprintf("question %d has no text", i+1))
		}
		if len(q.Options) < minQuizOptions {
			return apperrors.NewValidationError(fmt.Sprintf("question %d needs at least %d options", i+1, minQuizOptions))
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return apperrors.NewValidationError(fmt.Sprintf("question %d has an invalid correct answer", i+1))
		}
	}
	return nil
}

// Passed reports whether score out of total meets the pass percentage
func Passed(score, total, passPercent int) bool {
	if total <= 0 {
		return false
	}
	return score*100 >= passPercent*total
}

// SubmitQuiz grades the learner's answers. A pass completes the request with the usual rewards;
// a fail keeps it accepted so the learner can try again.
func (s *mentorshipServiceImpl) SubmitQuiz(ctx context.Context, actorID, requestID int64, answers []int) (*dto.QuizResult, error) {
	request, err := s.load(ctx, actorID, requestID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireLearner(request, actorID); err != nil {
		return nil, err
	}
	if request.Status != models.StatusAccepted {
		return nil, apperrors.ErrInvalidTransition
	}
	if request.Quiz == nil || !request.Quiz.Enabled {
		return nil, apperrors.ErrQuizNotEnabled
	}

	total := len(request.Quiz.Questions)
	if len(answers) != total {
		return nil, apperrors.NewValidationError(fmt.Sprintf("expected %d answers, got %d", total, len(answers)))
	}

	score := request.Quiz.Grade(answers)
	passed := Passed(score, total, s.policy.QuizPassPercent)
	request.QuizScore = &score
	s.metrics.RecordQuiz(passed)

	if passed {
		if err := s.complete(ctx, request, "Quiz passed"); err != nil {
			return nil, err
		}
	} else if err := s.requestRepo.Update(ctx, request, models.StatusAccepted); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("requestID", requestID).
		Int("score", score).
		Int("total", total).
		Bool("passed", passed).
		Msg("Quiz submitted")

	return &dto.QuizResult{Score: score, Total: total, Passed: passed, Request: request}, nil
}

// UpdateNotes replaces the session notes. Only the mentor may write notes, only while accepted.
func (s *mentorshipServiceImpl) UpdateNotes(ctx context.Context, actorID, requestID int64, notes string) (*models.MentorshipRequest, error) {
	request, err := s.load(ctx, actorID, requestID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireMentor(request, actorID); err != nil {
		return nil, err
	}
	if request.Status != models.StatusAccepted {
		return nil, apperrors.ErrInvalidState
	}

	request.SessionNotes = notes
	if err := s.requestRepo.Update(ctx, request, models.StatusAccepted); err != nil {
		return nil, err
	}
	return request, nil
}

// PostMessage adds a message to an accepted request
func (s *mentorshipServiceImpl) PostMessage(ctx context.Context, actorID, requestID int64, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("message cannot be empty")
	}

	request, err := s.load(ctx, actorID, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != models.StatusAccepted {
		return nil, apperrors.ErrInvalidState
	}

	msg := &models.Message{RequestID: requestID, SenderID: actorID, Body: body}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("error saving message: %w", err)
	}
	return msg, nil
}

// ListMessages returns the request's messages, oldest first
func (s *mentorshipServiceImpl) ListMessages(ctx context.Context, actorID, requestID int64) ([]*models.Message, error) {
	if _, err := s.load(ctx, actorID, requestID); err != nil {
		return nil, err
	}
	return s.messageRepo.ListByRequest(ctx, requestID)
}
