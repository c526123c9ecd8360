package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestAPI(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})
	})
}

func TestGacheFs(t *testing.T) {
	Convey("Given the in-memory backend", t, func() {
		SetMemMapFs()
		fs := GacheFs{}

		Convey("Files written through GacheFs should land in the backend", func() {
			So(fs.MkdirAll("/cache/nimbus", os.ModePerm), ShouldBeNil)

			file, err := fs.OpenFile("/cache/nimbus/feed.json", os.O_CREATE|os.O_WRONLY, 0o644)
			So(err, ShouldBeNil)
			_, err = file.Write([]byte(`[]`))
			So(err, ShouldBeNil)
			So(file.Close(), ShouldBeNil)

			data, err := API().ReadFile("/cache/nimbus/feed.json")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "[]")
		})
	})
}
