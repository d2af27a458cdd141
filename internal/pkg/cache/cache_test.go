package cache

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNoopCache(t *testing.T) {
	Convey("The noop cache never returns what was stored", t, func() {
		c := NewNoop()
		ctx := context.Background()

		So(c.Set(ctx, "k", map[string]int{"a": 1}, time.Minute), ShouldBeNil)

		var out map[string]int
		So(c.Get(ctx, "k", &out), ShouldEqual, ErrMiss)
		So(out, ShouldBeNil)
		So(c.Delete(ctx, "k"), ShouldBeNil)
		So(c.Close(), ShouldBeNil)
	})
}

func TestNewRedisCache(t *testing.T) {
	Convey("A redis cache needs an address", t, func() {
		_, err := NewRedisCache(Config{}, zerolog.Nop())
		So(err, ShouldNotBeNil)
	})
}
