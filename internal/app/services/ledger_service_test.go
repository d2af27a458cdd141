package services

import (
	"errors"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
)

func TestLedgerService(t *testing.T) {
	Convey("Given a freshly registered account", t, func() {
		env := newTestEnv(t)
		ada := env.register(t, "Ada", "ada@example.com")
		So(ada.Coins, ShouldEqual, env.policy.OpeningGrant)

		Convey("credits and debits move the balance and write one entry each", func() {
			balance, err := env.ledger.Credit(env.ctx, ada.ID, 5, "bonus")
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, 15)

			balance, err = env.ledger.Debit(env.ctx, ada.ID, 7, "fee")
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, 8)

			history, err := env.ledger.History(env.ctx, ada.ID)
			So(err, ShouldBeNil)
			So(history, ShouldHaveLength, 2)
			So(history[0].Direction, ShouldEqual, models.TransactionSpend)
			So(history[0].Description, ShouldEqual, "fee")

			audit, err := env.ledger.Audit(env.ctx, ada.ID)
			So(err, ShouldBeNil)
			So(audit.OpeningGrant, ShouldEqual, 10)
			So(audit.Earned, ShouldEqual, 5)
			So(audit.Spent, ShouldEqual, 7)
			So(audit.Balance, ShouldEqual, 8)
			So(audit.Consistent, ShouldBeTrue)
		})

		Convey("a debit larger than the balance changes nothing", func() {
			_, err := env.ledger.Debit(env.ctx, ada.ID, 11, "too much")
			So(errors.Is(err, apperrors.ErrInsufficientFunds), ShouldBeTrue)
			So(env.balance(t, ada.ID), ShouldEqual, 10)

			history, _ := env.ledger.History(env.ctx, ada.ID)
			So(history, ShouldBeEmpty)
			So(env.consistent(t, ada.ID), ShouldBeTrue)
		})

		Convey("a debit of the exact balance leaves zero", func() {
			balance, err := env.ledger.Debit(env.ctx, ada.ID, 10, "all in")
			So(err, ShouldBeNil)
			So(balance, ShouldEqual, 0)
		})

		Convey("non-positive amounts are rejected", func() {
			_, err := env.ledger.Credit(env.ctx, ada.ID, 0, "nothing")
			So(errors.Is(err, apperrors.ErrInvalidAmount), ShouldBeTrue)
			_, err = env.ledger.Debit(env.ctx, ada.ID, -3, "negative")
			So(errors.Is(err, apperrors.ErrInvalidAmount), ShouldBeTrue)
		})

		Convey("unknown accounts are not found", func() {
			_, err := env.ledger.Credit(env.ctx, 999, 1, "ghost")
			So(errors.Is(err, apperrors.ErrAccountNotFound), ShouldBeTrue)
		})

		Convey("concurrent debits never overdraw", func() {
			var wg sync.WaitGroup
			var mu sync.Mutex
			succeeded := 0
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := env.ledger.Debit(env.ctx, ada.ID, 3, "race"); err == nil {
						mu.Lock()
						succeeded++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			So(succeeded, ShouldEqual, 3)
			So(env.balance(t, ada.ID), ShouldEqual, 1)
			So(env.consistent(t, ada.ID), ShouldBeTrue)
		})
	})
}
