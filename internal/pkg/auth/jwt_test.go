package auth

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/yigit/skillswap/internal/app/models"
	"github.com/yigit/skillswap/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTService(t *testing.T) {
	Convey("Given a JWT service", t, func() {
		svc := NewJWTService(JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "skillswap.test"})
		account := &models.Account{ID: 7, Email: "ada@example.com"}

		Convey("a generated token validates back to the account", func() {
			token, expiresIn, err := svc.GenerateToken(account)
			So(err, ShouldBeNil)
			So(expiresIn, ShouldEqual, 3600)

			claims, err := svc.ValidateToken(token)
			So(err, ShouldBeNil)
			So(claims.UserID, ShouldEqual, 7)
			So(claims.Email, ShouldEqual, "ada@example.com")
		})

		Convey("an expired token is rejected as expired", func() {
			svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
			token, _, err := svc.GenerateToken(account)
			So(err, ShouldBeNil)

			svc.now = time.Now
			_, err = svc.ValidateToken(token)
			So(errors.Is(err, apperrors.ErrTokenExpired), ShouldBeTrue)
		})

		Convey("a token signed with another secret is invalid", func() {
			other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "skillswap.test"})
			token, _, _ := other.GenerateToken(account)

			_, err := svc.ValidateToken(token)
			So(errors.Is(err, apperrors.ErrTokenInvalid), ShouldBeTrue)
			So(errors.Is(err, apperrors.ErrUnauthorized), ShouldBeTrue)
		})
	})

	Convey("ExtractBearerToken", t, func() {
		token, err := ExtractBearerToken("Bearer abc.def")
		So(err, ShouldBeNil)
		So(token, ShouldEqual, "abc.def")

		_, err = ExtractBearerToken("")
		So(errors.Is(err, apperrors.ErrTokenNotFound), ShouldBeTrue)

		_, err = ExtractBearerToken("Basic abc")
		So(errors.Is(err, apperrors.ErrTokenInvalid), ShouldBeTrue)
	})
}

func TestPassword(t *testing.T) {
	Convey("Hashed passwords only match the original", t, func() {
		BcryptCost = bcrypt.MinCost
		hash, err := HashPassword("secret1")
		So(err, ShouldBeNil)
		So(CheckPassword(hash, "secret1"), ShouldBeTrue)
		So(CheckPassword(hash, "secret2"), ShouldBeFalse)
	})
}
