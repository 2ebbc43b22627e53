package errs_test

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	. "github.com/GerHobbelt/xsg-go/errs"
)

type comparatorFault struct{ key string }

func (e comparatorFault) Error() string { return "bad key: " + e.key }

func TestRecover(t *testing.T) {
	Convey("Given a panic value", t, func() {
		Convey("A nil panic classifies as no error", func() {
			So(Recover(nil), ShouldBeNil)
		})

		Convey("A plain string panic classifies as a comparator panic", func() {
			err := Recover("boom")

			So(errors.Is(err, ErrComparatorPanic), ShouldBeTrue)
			So(errors.Is(err, ErrAlloc), ShouldBeFalse)
		})

		Convey("An error-typed panic is still reachable through As", func() {
			err := Recover(comparatorFault{key: "k1"})

			So(errors.Is(err, ErrComparatorPanic), ShouldBeTrue)

			fault, ok := As[comparatorFault](err)

			So(ok, ShouldBeTrue)
			So(fault.key, ShouldEqual, "k1")
		})

		Convey("A runtime error panic classifies as an allocation error", func() {
			var m map[string]int

			var err error

			func() {
				defer func() { err = Recover(recover()) }()

				m["x"] = 1 // panics: assignment to entry in nil map
			}()

			So(errors.Is(err, ErrAlloc), ShouldBeTrue)
		})
	})
}
