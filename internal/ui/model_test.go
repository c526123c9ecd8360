package ui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestModel(t *testing.T) {
	Convey("Given a notifier", t, func() {
		m := &Model{}

		Convey("Without a notification the view is unchanged", func() {
			So(m.View("a\nb"), ShouldEqual, "a\nb")
		})

		Convey("When notified", func() {
			cmd := m.Update(Notify("autoplay disabled")())
			So(cmd, ShouldNotBeNil)
			So(m.Current(), ShouldEqual, "autoplay disabled")
			So(m.View("a\nb"), ShouldContainSubstring, "autoplay disabled")
			So(m.View("a\nb"), ShouldStartWith, "a\nb")

			Convey("A clear for an older notification should be ignored", func() {
				m.Update(ClearNotificationMsg{})
				So(m.Current(), ShouldEqual, "autoplay disabled")
			})

			Convey("Its own clear should remove it", func() {
				m.Update(ClearNotificationMsg{at: m.notifiedAt})
				So(m.Current(), ShouldBeEmpty)
			})
		})
	})
}
