package services

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
)

func TestAuthService(t *testing.T) {
	Convey("Given a registered account", t, func() {
		env := newTestEnv(t)
		ada := env.register(t, "Ada", "Ada@Example.com")

		Convey("registration grants the opening coins and stores a lower-cased email", func() {
			So(ada.Email, ShouldEqual, "ada@example.com")
			So(ada.Coins, ShouldEqual, env.policy.OpeningGrant)
			So(ada.PasswordHash, ShouldNotEqual, "secret123")

			history, _ := env.ledger.History(env.ctx, ada.ID)
			So(history, ShouldBeEmpty)
			So(env.consistent(t, ada.ID), ShouldBeTrue)
		})

		Convey("emails are unique regardless of case", func() {
			_, err := env.auth.Register(env.ctx, &dto.RegisterRequest{Name: "Copy", Email: "ADA@example.com", Password: "secret123"})
			So(errors.Is(err, apperrors.ErrEmailAlreadyExists), ShouldBeTrue)
		})

		Convey("short passwords are rejected", func() {
			_, err := env.auth.Register(env.ctx, &dto.RegisterRequest{Name: "Bob", Email: "bob@example.com", Password: "123"})
			So(errors.Is(err, apperrors.ErrValidationFailed), ShouldBeTrue)
		})

		Convey("login checks the password", func() {
			_, err := env.auth.Login(env.ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "wrong"})
			So(errors.Is(err, apperrors.ErrInvalidCredentials), ShouldBeTrue)

			_, err = env.auth.Login(env.ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
			So(errors.Is(err, apperrors.ErrInvalidCredentials), ShouldBeTrue)

			resp, err := env.auth.Login(env.ctx, &dto.LoginRequest{Email: "ADA@example.com", Password: "secret123"})
			So(err, ShouldBeNil)
			So(resp.Token.TokenType, ShouldEqual, "Bearer")
			So(resp.Token.AccessToken, ShouldNotBeEmpty)

			claims, err := env.auth.Authenticate(env.ctx, resp.Token.AccessToken)
			So(err, ShouldBeNil)
			So(claims.UserID, ShouldEqual, ada.ID)
		})

		Convey("garbage tokens do not authenticate", func() {
			_, err := env.auth.Authenticate(env.ctx, "not-a-token")
			So(errors.Is(err, apperrors.ErrUnauthorized), ShouldBeTrue)
		})
	})
}

func TestUserAndSkillServices(t *testing.T) {
	Convey("Given accounts with skills", t, func() {
		env := newTestEnv(t)
		ada := env.register(t, "Ada", "ada@example.com")
		bob := env.register(t, "Bob", "bob@example.com")
		env.publish(t, ada.ID, "Golang", models.DirectionOffered)
		env.publish(t, ada.ID, "Figma", models.DirectionWanted)
		env.publish(t, bob.ID, "Go testing", models.DirectionOffered)

		Convey("profiles split offered and wanted skills", func() {
			profile, err := env.users.GetProfile(env.ctx, ada.ID)
			So(err, ShouldBeNil)
			So(profile.SkillsOffered, ShouldHaveLength, 1)
			So(profile.SkillsWanted, ShouldHaveLength, 1)
			So(profile.SkillsOffered[0].Level, ShouldEqual, models.LevelBeginner)
			So(profile.SkillsOffered[0].Category, ShouldEqual, models.CategoryOther)

			_, err = env.users.GetProfile(env.ctx, 999)
			So(errors.Is(err, apperrors.ErrAccountNotFound), ShouldBeTrue)
		})

		Convey("search matches offered skills only, case-insensitively", func() {
			results, err := env.skills.Search(env.ctx, &dto.SkillSearchRequest{Name: "GO", Category: "All"})
			So(err, ShouldBeNil)
			So(results, ShouldHaveLength, 2)
			So(results[0].Owner, ShouldNotBeNil)

			results, _ = env.skills.Search(env.ctx, &dto.SkillSearchRequest{Name: "figma"})
			So(results, ShouldBeEmpty)

			results, _ = env.skills.Search(env.ctx, &dto.SkillSearchRequest{Category: "Web"})
			So(results, ShouldBeEmpty)
		})

		Convey("skills need a valid direction", func() {
			_, err := env.skills.Publish(env.ctx, ada.ID, &dto.CreateSkillRequest{Name: "Rust", Type: "maybe"})
			So(errors.Is(err, apperrors.ErrValidationFailed), ShouldBeTrue)
		})

		Convey("the leaderboard ranks by coins", func() {
			_, err := env.ledger.Credit(env.ctx, bob.ID, 5, "bonus")
			So(err, ShouldBeNil)

			board, err := env.users.Leaderboard(env.ctx)
			So(err, ShouldBeNil)
			So(board, ShouldHaveLength, 2)
			So(board[0].ID, ShouldEqual, bob.ID)
		})
	})
}

func TestRecommendationService(t *testing.T) {
	Convey("Given a learner who wants Go", t, func() {
		env := newTestEnv(t)
		learner := env.register(t, "Ada", "ada@example.com")
		gopher := env.register(t, "Bob", "bob@example.com")
		pythonista := env.register(t, "Cy", "cy@example.com")
		env.register(t, "Dee", "dee@example.com")

		env.publish(t, learner.ID, "Go", models.DirectionWanted)
		env.publish(t, learner.ID, "Go", models.DirectionOffered)
		env.publish(t, gopher.ID, "go", models.DirectionOffered)
		env.publish(t, pythonista.ID, "Python", models.DirectionOffered)

		recs, err := env.recs.Recommend(env.ctx, learner.ID)
		So(err, ShouldBeNil)

		Convey("mentors with matching skills rank first and the learner is excluded", func() {
			So(recs, ShouldHaveLength, 2)
			So(recs[0].Mentor.ID, ShouldEqual, gopher.ID)
			So(recs[0].MatchedSkills, ShouldResemble, []string{"go"})
			So(recs[1].Mentor.ID, ShouldEqual, pythonista.ID)
			So(recs[1].MatchedSkills, ShouldBeEmpty)
			So(recs[0].Score, ShouldBeGreaterThan, recs[1].Score)
		})

		Convey("unknown learners are not found", func() {
			_, err := env.recs.Recommend(env.ctx, 999)
			So(errors.Is(err, apperrors.ErrAccountNotFound), ShouldBeTrue)
		})
	})
}

func TestRedeemService(t *testing.T) {
	Convey("Given an account with coins", t, func() {
		env := newTestEnv(t)
		ada := env.register(t, "Ada", "ada@example.com")

		Convey("the catalog lists every reward", func() {
			So(env.redeem.Options(), ShouldHaveLength, len(models.RewardCatalog))
		})

		Convey("redeeming the profile highlight debits and flags the account", func() {
			_, err := env.ledger.Credit(env.ctx, ada.ID, 45, "top up")
			So(err, ShouldBeNil)

			resp, err := env.redeem.Redeem(env.ctx, ada.ID, 3)
			So(err, ShouldBeNil)
			So(resp.Balance, ShouldEqual, 5)
			So(resp.Redemption.CoinsUsed, ShouldEqual, 50)

			account, _ := env.users.GetProfile(env.ctx, ada.ID)
			So(account.Highlighted, ShouldBeTrue)

			history, err := env.redeem.History(env.ctx, ada.ID)
			So(err, ShouldBeNil)
			So(history, ShouldHaveLength, 1)
			So(env.consistent(t, ada.ID), ShouldBeTrue)
		})

		Convey("an unaffordable reward changes nothing", func() {
			_, err := env.redeem.Redeem(env.ctx, ada.ID, 1)
			So(errors.Is(err, apperrors.ErrInsufficientFunds), ShouldBeTrue)
			So(env.balance(t, ada.ID), ShouldEqual, 10)

			history, _ := env.redeem.History(env.ctx, ada.ID)
			So(history, ShouldBeEmpty)
		})

		Convey("unknown rewards are not found", func() {
			_, err := env.redeem.Redeem(env.ctx, ada.ID, 99)
			So(errors.Is(err, apperrors.ErrRewardNotFound), ShouldBeTrue)
		})
	})
}
