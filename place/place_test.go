package place

import (
	"errors"
	"testing"

	"github.com/nimbus-cli/nimbus/filesystem"
	"github.com/nimbus-cli/nimbus/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.PlacesShowSuggestions, true)
}

func TestPlace(t *testing.T) {
	Convey("Given two remembered places", t, func() {
		So(Clear(), ShouldBeNil)
		So(Add("Zagreb", 45.815, 15.982), ShouldBeNil)
		So(Add("  Split ", 43.508, 16.440), ShouldBeNil)

		Convey("Names should be sanitized", func() {
			p, err := Get("SPLIT")
			So(err, ShouldBeNil)
			So(p.Name, ShouldEqual, "split")
			So(p.Latitude, ShouldEqual, 43.508)
		})

		Convey("Unknown places should be reported", func() {
			_, err := Get("osijek")
			So(errors.Is(err, ErrUnknown), ShouldBeTrue)
			So(errors.Is(Remember("osijek", 1), ErrUnknown), ShouldBeTrue)
		})

		Convey("When one of them is used more", func() {
			So(Remember("split", 3), ShouldBeNil)

			Convey("It should be listed first", func() {
				list := List()
				So(list, ShouldHaveLength, 2)
				So(list[0].Name, ShouldEqual, "split")
			})

			Convey("Re-adding it should keep its rank", func() {
				So(Add("split", 43.5, 16.4), ShouldBeNil)
				p, _ := Get("split")
				So(p.Rank, ShouldEqual, 3)
				So(p.Longitude, ShouldEqual, 16.4)
			})
		})

		Convey("Suggestions should match fuzzily", func() {
			So(SuggestMany("zgb"), ShouldResemble, []string{"zagreb"})
			So(Suggest("spl").MustGet(), ShouldEqual, "split")
			So(Suggest("xyz").IsAbsent(), ShouldBeTrue)
		})

		Convey("Suggestions should be off when disabled", func() {
			viper.Set(key.PlacesShowSuggestions, false)
			So(SuggestMany("zag"), ShouldBeEmpty)
			viper.Set(key.PlacesShowSuggestions, true)
		})

		Convey("Remove should forget a place", func() {
			So(Remove("zagreb"), ShouldBeNil)
			So(List(), ShouldHaveLength, 1)
			So(errors.Is(Remove("zagreb"), ErrUnknown), ShouldBeTrue)
		})
	})

	Convey("Coordinates should be validated", t, func() {
		So(Validate(91, 0), ShouldNotBeNil)
		So(Validate(0, -181), ShouldNotBeNil)
		So(Validate(-90, 180), ShouldBeNil)
		So(Add("nowhere", 100, 0), ShouldNotBeNil)
	})
}
