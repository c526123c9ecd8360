package cache

import (
	"testing"
	"time"

	"github.com/nimbus-cli/nimbus/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

type entry struct {
	Temperature float64 `json:"temperature"`
}

func TestStore(t *testing.T) {
	Convey("Given a store with a one hour TTL", t, func() {
		store := New("/cache/forecasts", time.Hour)
		key := GenerateKey("45.8", "15.9")

		Convey("A missing entry should not be read", func() {
			var got entry
			So(store.Read(GenerateKey("nothing"), &got), ShouldBeFalse)
		})

		Convey("A written entry should be read back", func() {
			So(store.Write(key, entry{Temperature: 21.5}), ShouldBeNil)

			var got entry
			So(store.Read(key, &got), ShouldBeTrue)
			So(got.Temperature, ShouldEqual, 21.5)
		})

		Convey("An aged entry should expire and be collected", func() {
			So(store.Write(key, entry{Temperature: 3}), ShouldBeNil)
			old := time.Now().Add(-2 * time.Hour)
			So(filesystem.API().Chtimes(store.path(key), old, old), ShouldBeNil)

			var got entry
			So(store.Read(key, &got), ShouldBeFalse)

			removed, err := store.CollectGarbage()
			So(err, ShouldBeNil)
			So(removed, ShouldEqual, 1)
		})

		Convey("Clear should drop every entry", func() {
			So(store.Write(key, entry{}), ShouldBeNil)
			So(store.Clear(), ShouldBeNil)
			var got entry
			So(store.Read(key, &got), ShouldBeFalse)
		})
	})

	Convey("A store without TTL should never cache", t, func() {
		store := New("/cache/off", 0)
		So(store.Write("k", entry{Temperature: 1}), ShouldBeNil)
		var got entry
		So(store.Read("k", &got), ShouldBeFalse)
	})

	Convey("Keys should ignore case and spaces", t, func() {
		So(GenerateKey("Zagreb City"), ShouldEqual, GenerateKey("zagrebcity"))
		So(GenerateKey("a", "b"), ShouldNotEqual, GenerateKey("ab"))
	})
}
