package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/repositories"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
)

var (
	_ repositories.RequestRepository  = (*requestRepo)(nil)
	_ repositories.FeedbackRepository = (*feedbackRepo)(nil)
	_ repositories.MessageRepository  = (*messageRepo)(nil)
)

// cloneRequest copies the quiz so stored requests never share memory with callers
func cloneRequest(req models.MentorshipRequest) models.MentorshipRequest {
	if req.Quiz != nil {
		quiz := models.Quiz{Enabled: req.Quiz.Enabled, Questions: make([]models.QuizQuestion, len(req.Quiz.Questions))}
		for i, q := range req.Quiz.Questions {
			q.Options = append([]string(nil), q.Options...)
			quiz.Questions[i] = q
		}
		req.Quiz = &quiz
	}
	if req.QuizScore != nil {
		score := *req.QuizScore
		req.QuizScore = &score
	}
	return req
}

type requestRepo struct{ s *Store }

func (r *requestRepo) Create(ctx context.Context, req *models.MentorshipRequest) error {
	return r.s.write(ctx, func(t *tables) error {
		req.ID = t.nextID("requests")
		req.CreatedAt = r.s.now()
		t.requests[req.ID] = cloneRequest(*req)
		return nil
	})
}

func (r *requestRepo) GetByID(_ context.Context, id int64) (*models.MentorshipRequest, error) {
	var (
		req models.MentorshipRequest
		ok  bool
	)
	r.s.read(func(t *tables) { req, ok = t.requests[id] })
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	req = cloneRequest(req)
	return &req, nil
}

func (r *requestRepo) Update(ctx context.Context, req *models.MentorshipRequest, expected models.RequestStatus) error {
	return r.s.write(ctx, func(t *tables) error {
		current, ok := t.requests[req.ID]
		if !ok {
			return apperrors.ErrRequestNotFound
		}
		if current.Status != expected {
			return fmt.Errorf("%w: request is no longer %s", apperrors.ErrInvalidTransition, expected)
		}
		current.Status = req.Status
		current.SessionNotes = req.SessionNotes
		current.Quiz = req.Quiz
		current.QuizScore = req.QuizScore
		current.AcceptedAt = req.AcceptedAt
		current.CompletedAt = req.CompletedAt
		t.requests[req.ID] = cloneRequest(current)
		return nil
	})
}

func (r *requestRepo) ListByLearner(_ context.Context, learnerID int64) ([]*models.MentorshipRequest, error) {
	return r.list(func(req *models.MentorshipRequest) bool { return req.LearnerID == learnerID }), nil
}

func (r *requestRepo) ListByMentor(_ context.Context, mentorID int64) ([]*models.MentorshipRequest, error) {
	return r.list(func(req *models.MentorshipRequest) bool { return req.MentorID == mentorID }), nil
}

func (r *requestRepo) list(keep func(req *models.MentorshipRequest) bool) []*models.MentorshipRequest {
	list := make([]*models.MentorshipRequest, 0)
	r.s.read(func(t *tables) {
		for _, req := range t.requests {
			req := cloneRequest(req)
			if keep(&req) {
				list = append(list, &req)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list
}

type feedbackRepo struct{ s *Store }

func (r *feedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.s.write(ctx, func(t *tables) error {
		for _, f := range t.feedback {
			if f.RequestID == feedback.RequestID {
				return apperrors.ErrAlreadyReviewed
			}
		}
		feedback.ID = t.nextID("feedback")
		feedback.CreatedAt = r.s.now()
		t.feedback[feedback.ID] = *feedback
		return nil
	})
}

func (r *feedbackRepo) GetByRequest(_ context.Context, requestID int64) (*models.Feedback, error) {
	var found *models.Feedback
	r.s.read(func(t *tables) {
		for _, f := range t.feedback {
			if f.RequestID == requestID {
				f := f
				found = &f
				return
			}
		}
	})
	if found == nil {
		return nil, apperrors.ErrFeedbackNotFound
	}
	return found, nil
}

func (r *feedbackRepo) ListByMentor(_ context.Context, mentorID int64) ([]*models.Feedback, error) {
	list := make([]*models.Feedback, 0)
	r.s.read(func(t *tables) {
		for _, f := range t.feedback {
			if f.MentorID == mentorID {
				f := f
				list = append(list, &f)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

type messageRepo struct{ s *Store }

func (r *messageRepo) Create(ctx context.Context, msg *models.Message) error {
	return r.s.write(ctx, func(t *tables) error {
		msg.ID = t.nextID("messages")
		msg.CreatedAt = r.s.now()
		t.messages[msg.ID] = *msg
		return nil
	})
}

func (r *messageRepo) ListByRequest(_ context.Context, requestID int64) ([]*models.Message, error) {
	list := make([]*models.Message, 0)
	r.s.read(func(t *tables) {
		for _, m := range t.messages {
			if m.RequestID == requestID {
				m := m
				list = append(list, &m)
			}
		}
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
