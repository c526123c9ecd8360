package where

import (
	"path/filepath"
	"testing"

	"github.com/nimbus-cli/nimbus/filesystem"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Path functions", t, func() {
		Convey("Config()", func() {
			path := Config()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Cache()", func() {
			path := Cache()
			So(path, ShouldNotBeEmpty)
			So(lo.Must(filesystem.API().IsDir(path)), ShouldBeTrue)
		})

		Convey("Forecasts() lives under Cache()", func() {
			So(filepath.Dir(Forecasts()), ShouldEqual, Cache())
			So(lo.Must(filesystem.API().IsDir(Forecasts())), ShouldBeTrue)
		})

		Convey("Registry files live under Config()", func() {
			So(filepath.Dir(History()), ShouldEqual, Config())
			So(filepath.Dir(Places()), ShouldEqual, Config())
		})

		Convey("Config path can be overridden", func() {
			custom := filepath.Join("/tmp", "nimbus-test-config")
			t.Setenv(EnvConfigPath, custom)
			So(Config(), ShouldEqual, custom)
			So(Logs(), ShouldEqual, filepath.Join(custom, "logs"))
		})
	})
}
