package geo

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDistance(t *testing.T) {
	Convey("Given two points", t, func() {
		Convey("When they are the same", func() {
			p := Point{Lat: 39.9, Lng: 116.4}
			So(Distance(p, p), ShouldEqual, 0)
		})

		Convey("When they are one degree of longitude apart on the equator", func() {
			d := Distance(Point{Lat: 0, Lng: 0}, Point{Lat: 0, Lng: 1})
			So(d, ShouldAlmostEqual, 111319.4908, 0.001)
		})

		Convey("Then the order does not matter", func() {
			a, b := Point{Lat: 31.23, Lng: 121.47}, Point{Lat: 30.27, Lng: 120.15}
			So(Distance(a, b), ShouldEqual, Distance(b, a))
		})
	})
}

func TestFormatDistance(t *testing.T) {
	Convey("Given distances in meters", t, func() {
		So(FormatDistance(0), ShouldEqual, "0 m")
		So(FormatDistance(849.6), ShouldEqual, "850 m")
		So(FormatDistance(999.4), ShouldEqual, "999 m")
		So(FormatDistance(1000), ShouldEqual, "1.0 km")
		So(FormatDistance(12345), ShouldEqual, "12.3 km")
	})
}
