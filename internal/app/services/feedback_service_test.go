package services

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
)

// completedRequest runs a request from creation to completion or fails the test
func (e *testEnv) completedRequest(t *testing.T, learnerID, mentorID, skillID int64) *models.MentorshipRequest {
	t.Helper()
	req, err := e.mentorship.Create(e.ctx, learnerID, &dto.CreateRequestRequest{MentorID: mentorID, SkillID: skillID})
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if _, err := e.mentorship.Accept(e.ctx, mentorID, req.ID); err != nil {
		t.Fatalf("accept request: %v", err)
	}
	done, err := e.mentorship.Complete(e.ctx, mentorID, req.ID)
	if err != nil {
		t.Fatalf("complete request: %v", err)
	}
	return done
}

func TestFeedbackService(t *testing.T) {
	Convey("Given a mentor with a skill", t, func() {
		env := newTestEnv(t)
		learner := env.register(t, "Ada", "ada@example.com")
		mentor := env.register(t, "Bob", "bob@example.com")
		skill := env.publish(t, mentor.ID, "Go", models.DirectionOffered)

		Convey("feedback on an unfinished request is refused", func() {
			req, err := env.mentorship.Create(env.ctx, learner.ID, &dto.CreateRequestRequest{MentorID: mentor.ID, SkillID: skill.ID})
			So(err, ShouldBeNil)

			_, err = env.feedback.Submit(env.ctx, learner.ID, &dto.SubmitFeedbackRequest{RequestID: req.ID, Rating: 5})
			So(errors.Is(err, apperrors.ErrNotYetCompleted), ShouldBeTrue)
		})

		Convey("a completed request takes exactly one review from its learner", func() {
			req := env.completedRequest(t, learner.ID, mentor.ID, skill.ID)

			_, err := env.feedback.Submit(env.ctx, mentor.ID, &dto.SubmitFeedbackRequest{RequestID: req.ID, Rating: 5})
			So(errors.Is(err, apperrors.ErrPermissionDenied), ShouldBeTrue)

			_, err = env.feedback.Submit(env.ctx, learner.ID, &dto.SubmitFeedbackRequest{RequestID: req.ID, Rating: 6})
			So(errors.Is(err, apperrors.ErrValidationFailed), ShouldBeTrue)

			fb, err := env.feedback.Submit(env.ctx, learner.ID, &dto.SubmitFeedbackRequest{RequestID: req.ID, Rating: 4, Comment: " great "})
			So(err, ShouldBeNil)
			So(fb.MentorID, ShouldEqual, mentor.ID)
			So(fb.Comment, ShouldEqual, "great")

			stored, _ := env.mentorship.Get(env.ctx, learner.ID, req.ID)
			So(stored.Status, ShouldEqual, models.StatusFeedbackSubmitted)

			_, err = env.feedback.Submit(env.ctx, learner.ID, &dto.SubmitFeedbackRequest{RequestID: req.ID, Rating: 1})
			So(errors.Is(err, apperrors.ErrAlreadyReviewed), ShouldBeTrue)

			got, err := env.feedback.GetForRequest(env.ctx, req.ID)
			So(err, ShouldBeNil)
			So(got.Rating, ShouldEqual, 4)
		})

		Convey("the mentor's average folds in each rating", func() {
			first := env.completedRequest(t, learner.ID, mentor.ID, skill.ID)
			second := env.completedRequest(t, learner.ID, mentor.ID, skill.ID)

			_, err := env.feedback.Submit(env.ctx, learner.ID, &dto.SubmitFeedbackRequest{RequestID: first.ID, Rating: 5})
			So(err, ShouldBeNil)
			_, err = env.feedback.Submit(env.ctx, learner.ID, &dto.SubmitFeedbackRequest{RequestID: second.ID, Rating: 2})
			So(err, ShouldBeNil)

			summary, err := env.feedback.ListForMentor(env.ctx, mentor.ID)
			So(err, ShouldBeNil)
			So(summary.Count, ShouldEqual, 2)
			So(summary.AverageRating, ShouldAlmostEqual, 3.5)

			profile, _ := env.users.GetProfile(env.ctx, mentor.ID)
			So(profile.RatingCount, ShouldEqual, 2)
		})

		Convey("requests without feedback report not found", func() {
			req := env.completedRequest(t, learner.ID, mentor.ID, skill.ID)
			_, err := env.feedback.GetForRequest(env.ctx, req.ID)
			So(errors.Is(err, apperrors.ErrFeedbackNotFound), ShouldBeTrue)

			_, err = env.feedback.ListForMentor(env.ctx, 999)
			So(errors.Is(err, apperrors.ErrMentorNotFound), ShouldBeTrue)
		})
	})
}
