package helpers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParseLimit(t *testing.T) {
	Convey("ParseLimit", t, func() {
		So(ParseLimit(contextWithQuery("")), ShouldEqual, 0)
		So(ParseLimit(contextWithQuery("limit=3")), ShouldEqual, 3)
		So(ParseLimit(contextWithQuery("limit=-1")), ShouldEqual, 0)
		So(ParseLimit(contextWithQuery("limit=abc")), ShouldEqual, 0)
		So(ParseLimit(contextWithQuery("limit=5000")), ShouldEqual, MaxListLimit)
	})
}

func TestParseOptionalInt64(t *testing.T) {
	Convey("ParseOptionalInt64", t, func() {
		value, ok := ParseOptionalInt64(contextWithQuery(""), "createdBy")
		So(ok, ShouldBeTrue)
		So(value, ShouldBeNil)

		value, ok = ParseOptionalInt64(contextWithQuery("createdBy=7"), "createdBy")
		So(ok, ShouldBeTrue)
		So(*value, ShouldEqual, 7)

		_, ok = ParseOptionalInt64(contextWithQuery("createdBy=x"), "createdBy")
		So(ok, ShouldBeFalse)
	})
}

func TestParseDuration(t *testing.T) {
	Convey("ParseDuration falls back on malformed input", t, func() {
		So(ParseDuration("90s", time.Minute), ShouldEqual, 90*time.Second)
		So(ParseDuration("soon", time.Minute), ShouldEqual, time.Minute)
	})
}
