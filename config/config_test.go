package config

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
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Playback defaults should give 300 ticks per story", func() {
			_ = Setup()
			step := viper.GetFloat64(key.PlaybackStepSeconds)
			duration := viper.GetFloat64(key.PlaybackStoryDuration)
			So(duration/step, ShouldAlmostEqual, 300, 0.0001)
			So(viper.GetInt(key.PlaybackIntervalMillis), ShouldEqual, 10)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("weather.cache.minutes")
			So(result, ShouldEqual, "weather_cache_minutes")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.PlaybackStoryDuration]

		Convey("Env should carry the application prefix", func() {
			So(field.Env(), ShouldEqual, "NIMBUS_PLAYBACK_STORY_DURATION_SECONDS")
		})

		Convey("Its type name should be reported", func() {
			So(field.typeName(), ShouldEqual, "float64")
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("Should convert to the type of the default", func() {
			v, err := Parse(key.PlaybackIntervalMillis, []string{"25"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 25)

			v, err = Parse(key.PlaybackStoryDuration, []string{"4.5"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 4.5)

			v, err = Parse(key.PlaybackAutoplay, []string{"false"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)

			v, err = Parse(key.WeatherCity, []string{"Split"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "Split")
		})

		Convey("Should reject malformed values", func() {
			_, err := Parse(key.PlaybackIntervalMillis, []string{"fast"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.PlaybackAutoplay, []string{"sometimes"})
			So(err, ShouldNotBeNil)

			_, err = Parse(key.WeatherCity, []string{"a", "b"})
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject unknown keys", func() {
			_, err := Parse("weather.colour", []string{"blue"})
			So(errors.Is(err, ErrUnknownKey), ShouldBeTrue)
		})
	})
}

func TestSave(t *testing.T) {
	Convey("Given a config without a file", t, func() {
		_ = Setup()
		_ = filesystem.API().Remove(Path())

		Convey("Save should create the file", func() {
			viper.Set(key.WeatherCity, "Rijeka")
			So(Save(), ShouldBeNil)

			exists, err := filesystem.API().Exists(Path())
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})
	})
}
