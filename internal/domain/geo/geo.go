// Package geo measures and formats distances between coordinates.
package geo

import (
	"math"
	"strconv"
)

// EarthRadius is the equatorial radius in meters.
const EarthRadius = 6378137.0

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

func rad(d float64) float64 { return d * math.Pi / 180.0 }

// Distance returns the great-circle distance between two points in meters,
// rounded to four decimals.
func Distance(a, b Point) float64 {
	la1, la2 := rad(a.Lat), rad(b.Lat)
	dLat := la1 - la2
	dLng := rad(a.Lng) - rad(b.Lng)

	s := 2 * math.Asin(math.Sqrt(
		math.Pow(math.Sin(dLat/2), 2)+
			math.Cos(la1)*math.Cos(la2)*math.Pow(math.Sin(dLng/2), 2),
	))
	s *= EarthRadius
	return math.Round(s*10000) / 10000
}

// FormatDistance renders meters as "850 m" below a kilometer and "1.2 km" above.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return strconv.FormatFloat(math.Round(meters), 'f', 0, 64) + " m"
	}
	return strconv.FormatFloat(meters/1000, 'f', 1, 64) + " km"
}
