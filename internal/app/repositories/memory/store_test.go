package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given a fresh in-memory store", t, func() {
		repos := NewRepositories()
		alice := &models.Account{Name: "Alice", Email: "alice@example.com", Coins: 10, OpeningCoins: 10}
		So(repos.Accounts.Create(ctx, alice), ShouldBeNil)

		Convey("emails are unique regardless of case", func() {
			err := repos.Accounts.Create(ctx, &models.Account{Name: "Other", Email: "ALICE@example.com"})
			So(errors.Is(err, apperrors.ErrEmailAlreadyExists), ShouldBeTrue)
		})

		Convey("ApplyDelta refuses to go below zero and changes nothing", func() {
			_, err := repos.Accounts.ApplyDelta(ctx, alice.ID, -11)
			So(errors.Is(err, apperrors.ErrInsufficientFunds), ShouldBeTrue)

			got, err := repos.Accounts.GetByID(ctx, alice.ID)
			So(err, ShouldBeNil)
			So(got.Coins, ShouldEqual, 10)
		})

		Convey("concurrent debits never overdraw", func() {
			var wg sync.WaitGroup
			var mu sync.Mutex
			succeeded := 0
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := repos.Accounts.ApplyDelta(ctx, alice.ID, -1); err == nil {
						mu.Lock()
						succeeded++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			got, _ := repos.Accounts.GetByID(ctx, alice.ID)
			So(succeeded, ShouldEqual, 10)
			So(got.Coins, ShouldEqual, 0)
		})

		Convey("concurrent ratings are all counted", func() {
			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				rating := 1 + i%5
				wg.Add(1)
				go func() {
					defer wg.Done()
					_, _ = repos.Accounts.AddRating(ctx, alice.ID, rating)
				}()
			}
			wg.Wait()

			got, _ := repos.Accounts.GetByID(ctx, alice.ID)
			So(got.RatingCount, ShouldEqual, 10)
			So(got.AverageRating, ShouldAlmostEqual, 3.0)

			_, err := repos.Accounts.AddRating(ctx, 999, 5)
			So(errors.Is(err, apperrors.ErrAccountNotFound), ShouldBeTrue)
		})

		Convey("a failed unit of work rolls every write back", func() {
			boom := errors.New("boom")
			err := repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
				if _, err := repos.Accounts.ApplyDelta(ctx, alice.ID, -2); err != nil {
					return err
				}
				if err := repos.Transactions.Create(ctx, &models.Transaction{
					AccountID: alice.ID, Direction: models.TransactionSpend, Amount: 2,
				}); err != nil {
					return err
				}
				return boom
			})
			So(err, ShouldEqual, boom)

			got, _ := repos.Accounts.GetByID(ctx, alice.ID)
			So(got.Coins, ShouldEqual, 10)
			txs, _ := repos.Transactions.ListByAccount(ctx, alice.ID)
			So(txs, ShouldBeEmpty)
		})

		Convey("request updates are guarded by the expected status", func() {
			req := &models.MentorshipRequest{LearnerID: alice.ID, MentorID: 99, SkillID: 1, Status: models.StatusPending}
			So(repos.Requests.Create(ctx, req), ShouldBeNil)

			req.Status = models.StatusAccepted
			So(repos.Requests.Update(ctx, req, models.StatusPending), ShouldBeNil)

			err := repos.Requests.Update(ctx, req, models.StatusPending)
			So(errors.Is(err, apperrors.ErrInvalidTransition), ShouldBeTrue)
		})

		Convey("reactions are a set per account", func() {
			exp := &models.Experience{Title: "t", Type: models.ExperienceOther, Description: "d", CreatedBy: alice.ID}
			So(repos.Experiences.Create(ctx, exp), ShouldBeNil)

			So(repos.Experiences.SetReaction(ctx, exp.ID, alice.ID, models.ReactionLike), ShouldBeNil)
			So(repos.Experiences.SetReaction(ctx, exp.ID, alice.ID, models.ReactionDislike), ShouldBeNil)

			got, _ := repos.Experiences.GetByID(ctx, exp.ID)
			So(got.Likes, ShouldEqual, 0)
			So(got.Dislikes, ShouldEqual, 1)
		})
	})
}
