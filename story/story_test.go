package story

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nimbus-cli/nimbus/auth"
	"github.com/nimbus-cli/nimbus/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestItem(t *testing.T) {
	Convey("Items are compared by identifier", t, func() {
		a := Item{ID: "1", Image: "a"}
		b := Item{ID: "1", Image: "b"}
		c := Item{ID: "2", Image: "a"}
		So(a.Is(b), ShouldBeTrue)
		So(a.Is(c), ShouldBeFalse)
	})

	Convey("String falls back to the identifier", t, func() {
		So(Item{ID: "7"}.String(), ShouldEqual, "Story 7")
		So(Item{ID: "7", Title: "Hail"}.String(), ShouldEqual, "Hail")
	})
}

func TestBuiltin(t *testing.T) {
	Convey("Given the builtin source", t, func() {
		source := &Builtin{}

		Convey("It should return the five mocked stories in order", func() {
			items, err := source.Fetch(context.Background())
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 5)
			So(items[0].ID, ShouldEqual, "1")
			So(items[4].ID, ShouldEqual, "5")
		})

		Convey("A cancelled context should abort the simulated latency", func() {
			source.Delay = time.Hour
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := source.Fetch(ctx)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestStatic(t *testing.T) {
	Convey("Static returns a copy of its items or its error", t, func() {
		source := &Static{Items: Mocked()[:2]}
		items, err := source.Fetch(context.Background())
		So(err, ShouldBeNil)
		So(items, ShouldHaveLength, 2)

		items[0].ID = "changed"
		So(source.Items[0].ID, ShouldEqual, "1")

		source.Err = ErrNetwork
		_, err = source.Fetch(context.Background())
		So(err, ShouldEqual, ErrNetwork)
		So(source.Calls, ShouldEqual, 2)
	})
}

func TestRemote(t *testing.T) {
	Convey("Given a feed server", t, func() {
		var hits int
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			gotAuth = r.Header.Get("Authorization")
			switch r.URL.Path {
			case "/broken":
				_, _ = w.Write([]byte(`{not json`))
			case "/down":
				w.WriteHeader(http.StatusServiceUnavailable)
			default:
				_ = json.NewEncoder(w).Encode([]Item{
					{ID: "a", Image: "https://example.com/a.jpg"},
					{ID: "", Image: "dropped"},
					{ID: "b", Image: "https://example.com/b.jpg"},
				})
			}
		}))
		defer server.Close()

		noToken := func() (string, error) { return "", auth.ErrNoToken }

		Convey("Items without an identifier should be dropped", func() {
			remote := &Remote{URL: server.URL, Token: noToken}
			items, err := remote.Fetch(context.Background())
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 2)
			So(items[1].ID, ShouldEqual, "b")
			So(gotAuth, ShouldBeEmpty)
		})

		Convey("A stored token should be sent as a bearer token", func() {
			remote := &Remote{URL: server.URL, Token: func() (string, error) { return "tok", nil }}
			_, err := remote.Fetch(context.Background())
			So(err, ShouldBeNil)
			So(gotAuth, ShouldEqual, "Bearer tok")
		})

		Convey("Failures should wrap ErrNetwork", func() {
			for _, path := range []string{"/broken", "/down"} {
				remote := &Remote{URL: server.URL + path, Token: noToken}
				_, err := remote.Fetch(context.Background())
				So(errors.Is(err, ErrNetwork), ShouldBeTrue)
			}
		})

		Convey("A cached feed should not hit the server twice", func() {
			remote := NewRemote(server.URL, time.Minute)
			remote.Token = noToken
			_, err := remote.Fetch(context.Background())
			So(err, ShouldBeNil)
			before := hits

			items, err := remote.Fetch(context.Background())
			So(err, ShouldBeNil)
			So(items, ShouldHaveLength, 2)
			So(hits, ShouldEqual, before)
		})
	})
}
