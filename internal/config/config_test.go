package config_test

import (
	"testing"
	"time"

	"github.com/okian/adgenius/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have the relay defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8000")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.UpstreamURL, convey.ShouldEqual, "https://lexica.art/api/v1/search")
			convey.So(cfg.UpstreamTimeoutMS, convey.ShouldEqual, 15_000)
			convey.So(cfg.UpstreamTimeout(), convey.ShouldEqual, 15*time.Second)
			convey.So(cfg.MaxResults, convey.ShouldEqual, 30)
			convey.So(cfg.DefaultQuery, convey.ShouldEqual, "advertisement")
			convey.So(cfg.EscapeQuery, convey.ShouldBeTrue)
			convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"*"})
		})

		convey.Convey("Then the defaults should validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
