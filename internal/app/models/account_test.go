package models

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAccountAddRating(t *testing.T) {
	Convey("AddRating folds one rating into an existing mean", t, func() {
		account := &Account{}

		account.AddRating(4)
		So(account.AverageRating, ShouldEqual, 4)
		So(account.RatingCount, ShouldEqual, 1)

		account.AddRating(2)
		So(account.AverageRating, ShouldEqual, 3)

		account.AddRating(5)
		So(account.AverageRating, ShouldAlmostEqual, 11.0/3.0)
		So(account.RatingCount, ShouldEqual, 3)
	})
}
