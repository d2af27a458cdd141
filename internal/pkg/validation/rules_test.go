package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	. "github.com/smartystreets/goconvey/convey"
)

type skillForm struct {
	Level     string `json:"level" validate:"omitempty,skilllevel"`
	Direction string `json:"type" validate:"required,skilldirection"`
}

type communityForm struct {
	Category string `json:"category" validate:"required,communitycategory"`
}

func TestRules(t *testing.T) {
	Convey("Given a validator with the custom rules", t, func() {
		v := validator.New()
		So(Register(v), ShouldBeNil)

		Convey("known vocabulary passes", func() {
			So(v.Struct(skillForm{Level: "Advanced", Direction: "offered"}), ShouldBeNil)
			So(v.Struct(skillForm{Direction: "wanted"}), ShouldBeNil)
			So(v.Struct(communityForm{Category: "C++"}), ShouldBeNil)
		})

		Convey("unknown values fail with the JSON field name", func() {
			err := v.Struct(skillForm{Level: "Expert", Direction: "offered"})
			var verrs validator.ValidationErrors
			So(errors.As(err, &verrs), ShouldBeTrue)
			So(verrs, ShouldHaveLength, 1)
			So(verrs[0].Field(), ShouldEqual, "level")
			So(verrs[0].Tag(), ShouldEqual, TagSkillLevel)

			So(v.Struct(skillForm{Direction: "sideways"}), ShouldNotBeNil)
			So(v.Struct(communityForm{Category: "Cooking"}), ShouldNotBeNil)
		})
	})

	Convey("RegisterRules can run repeatedly against gin's engine", t, func() {
		So(RegisterRules(), ShouldBeNil)
		So(RegisterRules(), ShouldBeNil)
	})
}
