package icon

import (
	"testing"

	"github.com/nimbus-cli/nimbus/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given a registered icon", t, func() {
		target := Story

		Convey("It renders correctly for each variant", func() {
			for _, variant := range AvailableVariants() {
				Convey("variant="+variant, func() {
					viper.Set(key.IconsVariant, variant)
					result := Get(target)
					So(result, ShouldNotBeEmpty)
				})
			}
		})

		Convey("It returns empty for an unknown variant", func() {
			viper.Set(key.IconsVariant, "")
			result := Get(target)
			So(result, ShouldBeEmpty)
		})
	})
}

func TestRegistry(t *testing.T) {
	Convey("Every registered icon has a plain variant", t, func() {
		viper.Set(key.IconsVariant, "plain")
		for i := range icons {
			So(Get(i), ShouldNotBeEmpty)
		}
	})
}
