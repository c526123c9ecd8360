package weather

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nimbus-cli/nimbus/filesystem"
	"github.com/nimbus-cli/nimbus/network"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

const sample = `{
  "latitude": 45.82,
  "longitude": 15.98,
  "current_units": {"time": "iso8601", "temperature_2m": "°C", "wind_speed_10m": "km/h"},
  "current": {"time": "2024-10-11T14:45", "interval": 900, "temperature_2m": 17.3, "wind_speed_10m": 9.4}
}`

func TestModel(t *testing.T) {
	Convey("Given a forecast response", t, func() {
		var w Weather
		So(json.Unmarshal([]byte(sample), &w), ShouldBeNil)

		Convey("It should be decoded", func() {
			So(w.Units.Temperature, ShouldEqual, "°C")
			So(w.Current.Temperature, ShouldEqual, 17.3)
			So(w.Current.WindSpeed, ShouldEqual, 9.4)
			So(w.Current.Time.Equal(time.Date(2024, 10, 11, 14, 45, 0, 0, time.UTC)), ShouldBeTrue)
		})

		Convey("It should be formatted for display", func() {
			So(FormatTime(w.Current.Time.Time), ShouldEqual, "11/10/2024 14:45")
			So(w.Temperature(), ShouldEqual, "17.3°C")
			So(w.WindSpeed(), ShouldEqual, "9.4 km/h")
		})
	})

	Convey("A malformed time should be rejected", t, func() {
		var w Weather
		err := json.Unmarshal([]byte(`{"current": {"time": "11/10/2024"}}`), &w)
		So(err, ShouldNotBeNil)
	})

	Convey("A location without a city should say so", t, func() {
		So(Location{Lat: 1, Long: 2}.String(), ShouldEqual, "Unknown city")
	})
}

func TestClient(t *testing.T) {
	Convey("Given a forecast server", t, func() {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			if r.URL.Path != forecastEndpoint || r.URL.Query().Get("current") != "temperature_2m,wind_speed_10m" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if r.URL.Query().Get("latitude") == "0" {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(sample))
		}))
		defer server.Close()

		loc := Location{Lat: 45.815, Long: 15.982, CityName: "Zagreb"}

		Convey("The request URL should carry the coordinates", func() {
			client := NewClient(server.URL, 0)
			So(client.URL(loc), ShouldContainSubstring, "latitude=45.815&longitude=15.982")
		})

		Convey("Get should decode the current weather", func() {
			client := NewClient(server.URL, 0)
			w, err := client.Get(context.Background(), loc)
			So(err, ShouldBeNil)
			So(w.Current.Temperature, ShouldEqual, 17.3)
		})

		Convey("A cached forecast should not hit the server again", func() {
			client := NewClient(server.URL, time.Hour)
			_, err := client.Get(context.Background(), loc)
			So(err, ShouldBeNil)
			w, err := client.Get(context.Background(), loc)
			So(err, ShouldBeNil)
			So(w.Current.WindSpeed, ShouldEqual, 9.4)
			So(hits.Load(), ShouldEqual, 1)
		})

		Convey("The memory cache should answer without touching the disk", func() {
			client := NewClient(server.URL, time.Hour)
			first, err := client.Get(context.Background(), loc)
			So(err, ShouldBeNil)

			So(client.cache.Clear(), ShouldBeNil)
			second, err := client.Get(context.Background(), loc)
			So(err, ShouldBeNil)
			So(second, ShouldEqual, first)
			So(hits.Load(), ShouldEqual, 1)
		})

		Convey("Concurrent lookups should all succeed", func() {
			client := NewClient(server.URL, time.Hour)
			var wg sync.WaitGroup
			errs := make([]error, 8)
			for i := range errs {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, errs[i] = client.Get(context.Background(), loc)
				}(i)
			}
			wg.Wait()

			for _, err := range errs {
				So(err, ShouldBeNil)
			}
			So(hits.Load(), ShouldBeBetweenOrEqual, 1, 8)
		})

		Convey("A server error should be reported", func() {
			client := NewClient(server.URL, 0)
			_, err := client.Get(context.Background(), Location{})
			var status *network.StatusError
			So(errors.As(err, &status), ShouldBeTrue)
			So(status.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}
