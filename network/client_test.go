package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nimbus-cli/nimbus/constant"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGet(t *testing.T) {
	Convey("Given a test server", t, func() {
		var gotAgent, gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAgent = r.Header.Get("User-Agent")
			gotAuth = r.Header.Get("Authorization")
			if r.URL.Path == "/missing" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(`[]`))
		}))
		defer server.Close()

		Convey("Get should send the user agent and headers", func() {
			resp, err := Get(context.Background(), server.URL, map[string]string{"Authorization": "Bearer x"})
			So(err, ShouldBeNil)
			_ = resp.Body.Close()
			So(gotAgent, ShouldEqual, constant.UserAgent)
			So(gotAuth, ShouldEqual, "Bearer x")
		})

		Convey("Non-2xx responses should become a StatusError", func() {
			_, err := Get(context.Background(), server.URL+"/missing", nil)
			var statusErr *StatusError
			So(errors.As(err, &statusErr), ShouldBeTrue)
			So(statusErr.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}
