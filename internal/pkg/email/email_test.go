package email

import (
	"errors"
	"net/smtp"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/yigit/skillswap/internal/pkg/logger"
)

func TestEmailService(t *testing.T) {
	Convey("Without SMTP settings mail is logged, not sent", t, func() {
		svc := NewEmailService(SMTPConfig{}, logger.Nop()).(*EmailServiceImpl)
		called := false
		svc.send = func(string, smtp.Auth, string, []string, []byte) error {
			called = true
			return nil
		}

		So(svc.SendWelcomeEmail("ada@example.com", "Ada", 10), ShouldBeNil)
		So(called, ShouldBeFalse)
	})

	Convey("With SMTP settings the message goes to the server", t, func() {
		svc := NewEmailService(SMTPConfig{
			Host: "smtp.example.com", Port: 587, Username: "u", Password: "p",
			FromName: "SkillSwap", FromEmail: "noreply@example.com",
		}, logger.Nop()).(*EmailServiceImpl)

		var gotAddr string
		var gotTo []string
		var gotMsg []byte
		svc.send = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
			gotAddr, gotTo, gotMsg = addr, to, msg
			return nil
		}

		So(svc.SendRedemptionEmail("ada@example.com", "Ada", "Platform Pro Badge", 150), ShouldBeNil)
		So(gotAddr, ShouldEqual, "smtp.example.com:587")
		So(gotTo, ShouldResemble, []string{"ada@example.com"})
		So(string(gotMsg), ShouldContainSubstring, "Subject: Your SkillSwap reward: Platform Pro Badge")
		So(string(gotMsg), ShouldContainSubstring, "150 coins")

		Convey("and send failures are reported", func() {
			svc.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("down") }
			So(svc.SendWelcomeEmail("ada@example.com", "Ada", 10), ShouldNotBeNil)
		})
	})
}
