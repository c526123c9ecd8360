package auth

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/zalando/go-keyring"
)

func init() {
	keyring.MockInit()
}

func TestToken(t *testing.T) {
	Convey("Given an empty keyring", t, func() {
		_ = DeleteToken()

		Convey("GetToken should report ErrNoToken", func() {
			_, err := GetToken()
			So(err, ShouldEqual, ErrNoToken)
		})

		Convey("When a token is stored", func() {
			So(SetToken("s3cret"), ShouldBeNil)

			Convey("It should be returned", func() {
				token, err := GetToken()
				So(err, ShouldBeNil)
				So(token, ShouldEqual, "s3cret")
			})

			Convey("And it can be deleted", func() {
				So(DeleteToken(), ShouldBeNil)
				So(DeleteToken(), ShouldEqual, ErrNoToken)
			})
		})
	})
}
