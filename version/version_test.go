package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/nimbus-cli/nimbus/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestCompare(t *testing.T) {
	Convey("Given two versions", t, func() {
		Convey("Newer majors should win", func() {
			c, err := Compare("1.0.0", "0.9.9")
			So(err, ShouldBeNil)
			So(c, ShouldEqual, 1)
		})

		Convey("A v prefix should be ignored", func() {
			c, err := Compare("v0.3.0", "0.3.0")
			So(err, ShouldBeNil)
			So(c, ShouldEqual, 0)
		})

		Convey("Patches should be compared last", func() {
			c, err := Compare("0.3.0", "0.3.1")
			So(err, ShouldBeNil)
			So(c, ShouldEqual, -1)
		})

		Convey("Garbage should be rejected", func() {
			_, err := Compare("latest", "0.3.0")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestLatest(t *testing.T) {
	Convey("Given a release endpoint", t, func() {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte(`{"tag_name": "v0.4.1"}`))
		}))
		defer server.Close()
		ReleasesURL = server.URL

		Convey("The tag should be returned without its prefix and cached", func() {
			v, err := Latest(context.Background())
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "0.4.1")

			v, err = Latest(context.Background())
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "0.4.1")
			So(hits.Load(), ShouldEqual, 1)
		})
	})
}
