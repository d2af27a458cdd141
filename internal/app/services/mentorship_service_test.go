package services

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
)

func sampleQuiz(n int) *models.Quiz {
	quiz := &models.Quiz{}
	for i := 0; i < n; i++ {
		quiz.Questions = append(quiz.Questions, models.QuizQuestion{
			Text:          "question",
			Options:       []string{"a", "b", "c"},
			CorrectAnswer: 1,
		})
	}
	return quiz
}

func TestMentorshipLifecycle(t *testing.T) {
	Convey("Given a learner and a mentor offering a skill", t, func() {
		env := newTestEnv(t)
		learner := env.register(t, "Ada", "ada@example.com")
		mentor := env.register(t, "Bob", "bob@example.com")
		skill := env.publish(t, mentor.ID, "Go", models.DirectionOffered)

		create := func() *models.MentorshipRequest {
			req, err := env.mentorship.Create(env.ctx, learner.ID, &dto.CreateRequestRequest{
				MentorID: mentor.ID, SkillID: skill.ID, Message: "teach me",
			})
			So(err, ShouldBeNil)
			return req
		}

		Convey("creating a request charges the fee once", func() {
			req := create()
			So(req.Status, ShouldEqual, models.StatusPending)
			So(env.balance(t, learner.ID), ShouldEqual, 10-env.policy.RequestFee)

			list, err := env.mentorship.ListForAccount(env.ctx, learner.ID, learner.ID)
			So(err, ShouldBeNil)
			So(list.Outgoing, ShouldHaveLength, 1)
			So(list.Incoming, ShouldBeEmpty)

			incoming, _ := env.mentorship.ListForAccount(env.ctx, mentor.ID, mentor.ID)
			So(incoming.Incoming, ShouldHaveLength, 1)
		})

		Convey("requests are refused without enough coins and leave no trace", func() {
			_, err := env.ledger.Debit(env.ctx, learner.ID, 9, "spent elsewhere")
			So(err, ShouldBeNil)

			_, err = env.mentorship.Create(env.ctx, learner.ID, &dto.CreateRequestRequest{MentorID: mentor.ID, SkillID: skill.ID})
			So(errors.Is(err, apperrors.ErrInsufficientFunds), ShouldBeTrue)
			So(env.balance(t, learner.ID), ShouldEqual, 1)

			list, _ := env.mentorship.ListForAccount(env.ctx, learner.ID, learner.ID)
			So(list.Outgoing, ShouldBeEmpty)
			So(env.consistent(t, learner.ID), ShouldBeTrue)
		})

		Convey("missing mentors, skills and self requests are rejected", func() {
			_, err := env.mentorship.Create(env.ctx, learner.ID, &dto.CreateRequestRequest{MentorID: 999, SkillID: skill.ID})
			So(errors.Is(err, apperrors.ErrMentorNotFound), ShouldBeTrue)

			_, err = env.mentorship.Create(env.ctx, learner.ID, &dto.CreateRequestRequest{MentorID: mentor.ID, SkillID: 999})
			So(errors.Is(err, apperrors.ErrSkillNotFound), ShouldBeTrue)

			_, err = env.mentorship.Create(env.ctx, learner.ID, &dto.CreateRequestRequest{MentorID: learner.ID, SkillID: skill.ID})
			So(errors.Is(err, apperrors.ErrValidationFailed), ShouldBeTrue)

			So(env.balance(t, learner.ID), ShouldEqual, 10)
		})

		Convey("only the mentor may accept, and only once", func() {
			req := create()

			_, err := env.mentorship.Accept(env.ctx, learner.ID, req.ID)
			So(errors.Is(err, apperrors.ErrPermissionDenied), ShouldBeTrue)

			accepted, err := env.mentorship.Accept(env.ctx, mentor.ID, req.ID)
			So(err, ShouldBeNil)
			So(accepted.Status, ShouldEqual, models.StatusAccepted)
			So(accepted.AcceptedAt, ShouldNotBeNil)

			_, err = env.mentorship.Accept(env.ctx, mentor.ID, req.ID)
			So(errors.Is(err, apperrors.ErrInvalidTransition), ShouldBeTrue)
		})

		Convey("a pending request cannot be completed or annotated", func() {
			req := create()

			_, err := env.mentorship.Complete(env.ctx, mentor.ID, req.ID)
			So(errors.Is(err, apperrors.ErrInvalidTransition), ShouldBeTrue)

			_, err = env.mentorship.UpdateNotes(env.ctx, mentor.ID, req.ID, "notes")
			So(errors.Is(err, apperrors.ErrInvalidState), ShouldBeTrue)

			_, err = env.mentorship.PostMessage(env.ctx, learner.ID, req.ID, "hello")
			So(errors.Is(err, apperrors.ErrInvalidState), ShouldBeTrue)
		})

		Convey("strangers cannot see a request", func() {
			req := create()
			eve := env.register(t, "Eve", "eve@example.com")

			_, err := env.mentorship.Get(env.ctx, eve.ID, req.ID)
			So(errors.Is(err, apperrors.ErrNotParticipant), ShouldBeTrue)

			_, err = env.mentorship.ListForAccount(env.ctx, eve.ID, learner.ID)
			So(errors.Is(err, apperrors.ErrPermissionDenied), ShouldBeTrue)
		})

		Convey("once accepted", func() {
			req := create()
			_, err := env.mentorship.Accept(env.ctx, mentor.ID, req.ID)
			So(err, ShouldBeNil)

			Convey("participants exchange messages and the mentor keeps notes", func() {
				_, err := env.mentorship.PostMessage(env.ctx, learner.ID, req.ID, "when do we start?")
				So(err, ShouldBeNil)
				_, err = env.mentorship.PostMessage(env.ctx, mentor.ID, req.ID, "tomorrow")
				So(err, ShouldBeNil)

				msgs, err := env.mentorship.ListMessages(env.ctx, learner.ID, req.ID)
				So(err, ShouldBeNil)
				So(msgs, ShouldHaveLength, 2)
				So(msgs[0].Body, ShouldEqual, "when do we start?")

				updated, err := env.mentorship.UpdateNotes(env.ctx, mentor.ID, req.ID, "covered goroutines")
				So(err, ShouldBeNil)
				So(updated.SessionNotes, ShouldEqual, "covered goroutines")

				_, err = env.mentorship.UpdateNotes(env.ctx, learner.ID, req.ID, "mine")
				So(errors.Is(err, apperrors.ErrPermissionDenied), ShouldBeTrue)
			})

			Convey("direct completion pays both sides exactly once", func() {
				_, err := env.mentorship.Complete(env.ctx, learner.ID, req.ID)
				So(errors.Is(err, apperrors.ErrPermissionDenied), ShouldBeTrue)

				done, err := env.mentorship.Complete(env.ctx, mentor.ID, req.ID)
				So(err, ShouldBeNil)
				So(done.Status, ShouldEqual, models.StatusCompleted)
				So(done.CompletedAt, ShouldNotBeNil)

				So(env.balance(t, mentor.ID), ShouldEqual, 10+env.policy.MentorReward)
				So(env.balance(t, learner.ID), ShouldEqual, 10-env.policy.RequestFee+env.policy.LearnerReward)

				_, err = env.mentorship.Complete(env.ctx, mentor.ID, req.ID)
				So(errors.Is(err, apperrors.ErrInvalidTransition), ShouldBeTrue)
				So(env.balance(t, mentor.ID), ShouldEqual, 10+env.policy.MentorReward)

				mentorHistory, _ := env.ledger.History(env.ctx, mentor.ID)
				So(mentorHistory, ShouldHaveLength, 1)
				So(env.consistent(t, mentor.ID), ShouldBeTrue)
				So(env.consistent(t, learner.ID), ShouldBeTrue)
			})

			Convey("the quiz path", func() {
				_, err := env.mentorship.AttachQuiz(env.ctx, learner.ID, req.ID, sampleQuiz(5))
				So(errors.Is(err, apperrors.ErrPermissionDenied), ShouldBeTrue)

				_, err = env.mentorship.SubmitQuiz(env.ctx, learner.ID, req.ID, []int{1})
				So(errors.Is(err, apperrors.ErrQuizNotEnabled), ShouldBeTrue)

				withQuiz, err := env.mentorship.AttachQuiz(env.ctx, mentor.ID, req.ID, sampleQuiz(5))
				So(err, ShouldBeNil)
				So(withQuiz.Quiz.Enabled, ShouldBeTrue)

				Convey("answer counts must match", func() {
					_, err := env.mentorship.SubmitQuiz(env.ctx, learner.ID, req.ID, []int{1, 1})
					So(errors.Is(err, apperrors.ErrValidationFailed), ShouldBeTrue)
				})

				Convey("a failing score keeps the request accepted", func() {
					result, err := env.mentorship.SubmitQuiz(env.ctx, learner.ID, req.ID, []int{1, 1, 1, 0, 0})
					So(err, ShouldBeNil)
					So(result.Score, ShouldEqual, 3)
					So(result.Passed, ShouldBeFalse)
					So(result.Request.Status, ShouldEqual, models.StatusAccepted)

					stored, _ := env.mentorship.Get(env.ctx, learner.ID, req.ID)
					So(*stored.QuizScore, ShouldEqual, 3)
					So(env.balance(t, mentor.ID), ShouldEqual, 10)

					Convey("and a retry at the threshold completes it", func() {
						result, err := env.mentorship.SubmitQuiz(env.ctx, learner.ID, req.ID, []int{1, 1, 1, 1, 0})
						So(err, ShouldBeNil)
						So(result.Passed, ShouldBeTrue)
						So(result.Request.Status, ShouldEqual, models.StatusCompleted)
						So(env.balance(t, mentor.ID), ShouldEqual, 10+env.policy.MentorReward)
						So(env.balance(t, learner.ID), ShouldEqual, 10-env.policy.RequestFee+env.policy.LearnerReward)

						_, err = env.mentorship.SubmitQuiz(env.ctx, learner.ID, req.ID, []int{1, 1, 1, 1, 1})
						So(errors.Is(err, apperrors.ErrInvalidTransition), ShouldBeTrue)
					})
				})
			})

			Convey("malformed quizzes are rejected", func() {
				_, err := env.mentorship.AttachQuiz(env.ctx, mentor.ID, req.ID, sampleQuiz(6))
				So(errors.Is(err, apperrors.ErrValidationFailed), ShouldBeTrue)

				bad := sampleQuiz(1)
				bad.Questions[0].Options = []string{"only"}
				_, err = env.mentorship.AttachQuiz(env.ctx, mentor.ID, req.ID, bad)
				So(errors.Is(err, apperrors.ErrValidationFailed), ShouldBeTrue)

				bad = sampleQuiz(1)
				bad.Questions[0].CorrectAnswer = 3
				_, err = env.mentorship.AttachQuiz(env.ctx, mentor.ID, req.ID, bad)
				So(errors.Is(err, apperrors.ErrValidationFailed), ShouldBeTrue)
			})
		})
	})
}

func TestPassed(t *testing.T) {
	Convey("The pass rule compares percentages without rounding", t, func() {
		So(Passed(4, 5, 80), ShouldBeTrue)
		So(Passed(3, 5, 80), ShouldBeFalse)
		So(Passed(2, 3, 66), ShouldBeTrue)
		So(Passed(2, 3, 80), ShouldBeFalse)
		So(Passed(0, 0, 80), ShouldBeFalse)
	})
}
