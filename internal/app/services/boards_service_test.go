package services

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/app/models/dto"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
)

func TestCommunityService(t *testing.T) {
	Convey("Given an account that can afford a community", t, func() {
		env := newTestEnv(t)
		owner := env.register(t, "Ada", "ada@example.com")
		other := env.register(t, "Bob", "bob@example.com")
		_, err := env.ledger.Credit(env.ctx, owner.ID, 30, "top up")
		So(err, ShouldBeNil)

		newCommunity := &dto.CreateCommunityRequest{Name: "Gophers", Category: "Web Development", Description: "all things Go"}

		Convey("creating a community charges the cost and enrols the creator", func() {
			community, err := env.communities.Create(env.ctx, owner.ID, newCommunity)
			So(err, ShouldBeNil)
			So(community.CreationCost, ShouldEqual, env.policy.CommunityCreationCost)
			So(community.Members, ShouldHaveLength, 1)
			So(community.Members[0].AccountID, ShouldEqual, owner.ID)
			So(env.balance(t, owner.ID), ShouldEqual, 40-env.policy.CommunityCreationCost)
			So(env.consistent(t, owner.ID), ShouldBeTrue)

			Convey("a duplicate name is refused without a second charge", func() {
				_, err := env.communities.Create(env.ctx, owner.ID, newCommunity)
				So(errors.Is(err, apperrors.ErrCommunityAlreadyExists), ShouldBeTrue)
				So(env.balance(t, owner.ID), ShouldEqual, 40-env.policy.CommunityCreationCost)
				So(env.consistent(t, owner.ID), ShouldBeTrue)
			})

			Convey("non-members cannot post until they join", func() {
				_, err := env.communities.CreatePost(env.ctx, other.ID, community.ID, "hi")
				So(errors.Is(err, apperrors.ErrNotMember), ShouldBeTrue)

				joined, err := env.communities.Join(env.ctx, other.ID, community.ID)
				So(err, ShouldBeNil)
				So(joined.Members, ShouldHaveLength, 2)

				_, err = env.communities.Join(env.ctx, other.ID, community.ID)
				So(errors.Is(err, apperrors.ErrAlreadyMember), ShouldBeTrue)

				post, err := env.communities.CreatePost(env.ctx, other.ID, community.ID, "hi")
				So(err, ShouldBeNil)

				_, err = env.communities.AddComment(env.ctx, owner.ID, community.ID, post.ID, "welcome")
				So(err, ShouldBeNil)

				got, err := env.communities.Get(env.ctx, community.ID)
				So(err, ShouldBeNil)
				So(got.Posts, ShouldHaveLength, 1)
				So(got.Posts[0].Comments, ShouldHaveLength, 1)
				So(got.Posts[0].Comments[0].Content, ShouldEqual, "welcome")
			})

			Convey("comments must target a post of the same community", func() {
				_, err := env.communities.AddComment(env.ctx, owner.ID, community.ID, 999, "lost")
				So(errors.Is(err, apperrors.ErrPostNotFound), ShouldBeTrue)
			})

			Convey("only the creator sets the challenge", func() {
				challenge := &dto.SetChallengeRequest{Title: "Build a CLI", Description: "one week"}

				_, err := env.communities.SetChallenge(env.ctx, other.ID, community.ID, challenge)
				So(errors.Is(err, apperrors.ErrNotCreator), ShouldBeTrue)

				updated, err := env.communities.SetChallenge(env.ctx, owner.ID, community.ID, challenge)
				So(err, ShouldBeNil)
				So(updated.Challenge, ShouldNotBeNil)
				So(updated.Challenge.Title, ShouldEqual, "Build a CLI")
			})

			Convey("listing can filter by creator", func() {
				all, err := env.communities.List(env.ctx, nil)
				So(err, ShouldBeNil)
				So(all, ShouldHaveLength, 1)

				none, err := env.communities.List(env.ctx, &dto.CommunityFilterRequest{CreatedBy: &other.ID})
				So(err, ShouldBeNil)
				So(none, ShouldBeEmpty)
			})
		})

		Convey("an account without enough coins cannot create one", func() {
			_, err := env.communities.Create(env.ctx, other.ID, newCommunity)
			So(errors.Is(err, apperrors.ErrInsufficientFunds), ShouldBeTrue)
			So(env.balance(t, other.ID), ShouldEqual, 10)

			all, _ := env.communities.List(env.ctx, nil)
			So(all, ShouldBeEmpty)
		})

		Convey("unknown categories are rejected", func() {
			_, err := env.communities.Create(env.ctx, owner.ID, &dto.CreateCommunityRequest{Name: "X", Category: "Cooking"})
			So(errors.Is(err, apperrors.ErrValidationFailed), ShouldBeTrue)
		})
	})
}

func TestExperienceService(t *testing.T) {
	Convey("Given two accounts", t, func() {
		env := newTestEnv(t)
		ada := env.register(t, "Ada", "ada@example.com")
		bob := env.register(t, "Bob", "bob@example.com")

		Convey("an untyped experience is classified from its text", func() {
			exp, err := env.experiences.Share(env.ctx, ada.ID, &dto.ShareExperienceRequest{
				Title:       "My first hackathon",
				Description: "48 hours of building",
			})
			So(err, ShouldBeNil)
			So(exp.Type, ShouldEqual, models.ExperienceHackathon)

			typed, err := env.experiences.Share(env.ctx, ada.ID, &dto.ShareExperienceRequest{
				Title:       "Summer",
				Type:        models.ExperienceInternship,
				Description: "notes",
			})
			So(err, ShouldBeNil)
			So(typed.Type, ShouldEqual, models.ExperienceInternship)

			hackathons, err := env.experiences.List(env.ctx, "Hackathon")
			So(err, ShouldBeNil)
			So(hackathons, ShouldHaveLength, 1)

			all, err := env.experiences.List(env.ctx, "All")
			So(err, ShouldBeNil)
			So(all, ShouldHaveLength, 2)

			_, err = env.experiences.List(env.ctx, "Cooking")
			So(errors.Is(err, apperrors.ErrValidationFailed), ShouldBeTrue)
		})

		Convey("reactions toggle and switch", func() {
			exp, err := env.experiences.Share(env.ctx, ada.ID, &dto.ShareExperienceRequest{Title: "Interview", Description: "went well"})
			So(err, ShouldBeNil)

			got, err := env.experiences.React(env.ctx, bob.ID, exp.ID, models.ReactionLike)
			So(err, ShouldBeNil)
			So(got.Likes, ShouldEqual, 1)

			got, _ = env.experiences.React(env.ctx, bob.ID, exp.ID, models.ReactionDislike)
			So(got.Likes, ShouldEqual, 0)
			So(got.Dislikes, ShouldEqual, 1)

			got, _ = env.experiences.React(env.ctx, bob.ID, exp.ID, models.ReactionDislike)
			So(got.Dislikes, ShouldEqual, 0)

			_, err = env.experiences.React(env.ctx, bob.ID, 999, models.ReactionLike)
			So(errors.Is(err, apperrors.ErrExperienceNotFound), ShouldBeTrue)
		})
	})
}

func TestStartupService(t *testing.T) {
	Convey("Given a registered startup", t, func() {
		env := newTestEnv(t)
		founder := env.register(t, "Ada", "ada@example.com")
		backer := env.register(t, "Bob", "bob@example.com")

		startup, err := env.startups.Register(env.ctx, founder.ID, &dto.RegisterStartupRequest{Name: "Gopherly", IdeaOrProblem: "tutoring"})
		So(err, ShouldBeNil)

		Convey("sponsoring moves coins from the sponsor to the startup total", func() {
			updated, balance, err := env.startups.Sponsor(env.ctx, backer.ID, startup.ID, 4)
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, 6)
			So(updated.TotalSponsoredCoins, ShouldEqual, 4)
			So(env.consistent(t, backer.ID), ShouldBeTrue)

			_, _, err = env.startups.Sponsor(env.ctx, backer.ID, startup.ID, 7)
			So(errors.Is(err, apperrors.ErrInsufficientFunds), ShouldBeTrue)

			again, _ := env.startups.Get(env.ctx, startup.ID)
			So(again.TotalSponsoredCoins, ShouldEqual, 4)

			_, _, err = env.startups.Sponsor(env.ctx, backer.ID, startup.ID, 0)
			So(errors.Is(err, apperrors.ErrInvalidAmount), ShouldBeTrue)
		})

		Convey("ratings are one per account and averaged", func() {
			_, err := env.startups.Rate(env.ctx, backer.ID, startup.ID, 2)
			So(err, ShouldBeNil)
			rated, err := env.startups.Rate(env.ctx, backer.ID, startup.ID, 4)
			So(err, ShouldBeNil)
			So(rated.RatingCount, ShouldEqual, 1)
			So(rated.AverageRating, ShouldEqual, 4)

			rated, _ = env.startups.Rate(env.ctx, founder.ID, startup.ID, 5)
			So(rated.RatingCount, ShouldEqual, 2)
			So(rated.AverageRating, ShouldEqual, 4.5)

			_, err = env.startups.Rate(env.ctx, backer.ID, 999, 3)
			So(errors.Is(err, apperrors.ErrStartupNotFound), ShouldBeTrue)
		})

		Convey("listing puts the best sponsored first", func() {
			second, _ := env.startups.Register(env.ctx, founder.ID, &dto.RegisterStartupRequest{Name: "Second", IdeaOrProblem: "x"})
			_, _, err := env.startups.Sponsor(env.ctx, backer.ID, second.ID, 3)
			So(err, ShouldBeNil)

			list, err := env.startups.List(env.ctx, 0)
			So(err, ShouldBeNil)
			So(list, ShouldHaveLength, 2)
			So(list[0].ID, ShouldEqual, second.ID)

			limited, _ := env.startups.List(env.ctx, 1)
			So(limited, ShouldHaveLength, 1)
		})
	})
}
