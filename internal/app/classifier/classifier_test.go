package classifier

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/yigit/skillswap/internal/app/models"
)

func TestClassify(t *testing.T) {
	Convey("Classify picks the first category with a keyword hit", t, func() {
		So(Classify("I attended a hackathon and built a team project"), ShouldEqual, models.ExperienceHackathon)
		So(Classify("Cleared the Technical Round at Acme"), ShouldEqual, models.ExperienceJobInterview)
		So(Classify("Summer intern with a decent stipend"), ShouldEqual, models.ExperienceInternship)
		So(Classify("Went hiking"), ShouldEqual, models.ExperienceOther)
	})

	Convey("Empty text is Other", t, func() {
		So(Classify(""), ShouldEqual, models.ExperienceOther)
		So(Classify("   "), ShouldEqual, models.ExperienceOther)
	})

	Convey("Priority order resolves overlapping keywords", t, func() {
		// "project" is a hackathon keyword, "interview" outranks it
		So(Classify("interview about my side project"), ShouldEqual, models.ExperienceJobInterview)
		// "company" is an internship keyword, "project" outranks it
		So(Classify("a project at my company"), ShouldEqual, models.ExperienceHackathon)
	})

	Convey("Custom rules are honored in their own order", t, func() {
		rules := []Rule{{Type: models.ExperienceInternship, Keywords: []string{"project"}}}
		So(ClassifyWith(rules, "side project"), ShouldEqual, models.ExperienceInternship)
	})
}
