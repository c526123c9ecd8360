package log

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nimbus-cli/nimbus/filesystem"
	"github.com/nimbus-cli/nimbus/key"
	"github.com/nimbus-cli/nimbus/where"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Given logging is disabled", t, func() {
		viper.Set(key.LogsWrite, false)
		So(Setup(), ShouldBeNil)
		So(Enabled(), ShouldBeFalse)

		Convey("With should still return a usable entry", func() {
			entry := With(Fields{"story": "1"})
			So(entry, ShouldNotBeNil)
			So(func() { entry.Info("ignored") }, ShouldNotPanic)
		})
	})

	Convey("Given logging is enabled", t, func() {
		viper.Set(key.LogsWrite, true)
		viper.Set(key.LogsLevel, "debug")
		defer viper.Set(key.LogsWrite, false)

		So(Setup(), ShouldBeNil)
		So(Enabled(), ShouldBeTrue)

		Convey("Today's log file should exist", func() {
			path := filepath.Join(where.Logs(), time.Now().Format("2006-01-02")+".log")
			So(lo.Must(filesystem.API().Exists(path)), ShouldBeTrue)
		})
	})
}
