// Package geo has the great circle math used to point signs at their
// destinations and to print human readable distances on them.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	earthRadiusKm = 6371.0
	kmPerMile     = 1.609344
)

// Point is a position on the Earth surface in degrees.
type Point struct {
	Lat float64 `yaml:"latitude"`
	Lon float64 `yaml:"longitude"`
}

// HaversineKm returns the great circle distance from a to b in
// kilometers.
func HaversineKm(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)
	h := sq(math.Sin(dLat/2)) + math.Cos(lat1)*math.Cos(lat2)*sq(math.Sin(dLon/2))
	return earthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

// InitialBearing returns the forward azimuth from a to b in degrees
// normalized to [0,360), with 0 north and 90 east.
func InitialBearing(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLon := radians(b.Lon - a.Lon)
	x := math.Sin(dLon) * math.Cos(lat2)
	y := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	deg := math.Atan2(x, y) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// Unit selects the distance unit printed on signs.
type Unit string

const (
	Miles      Unit = "mi"
	Kilometers Unit = "km"
	// BothUnits prints kilometers with miles in parentheses.
	BothUnits Unit = "both"
)

// ParseUnit maps the config spellings of a unit onto Unit.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(s) {
	case "mi", "miles", "imperial":
		return Miles, nil
	case "km", "kilometers", "metric":
		return Kilometers, nil
	case "both":
		return BothUnits, nil
	}
	return "", fmt.Errorf("unknown distance unit %q", s)
}

// FormatDistance renders a distance for sign text: one decimal below
// ten units, whole numbers with thousands separators above.
func FormatDistance(km float64, unit Unit) string {
	mi := km / kmPerMile
	switch unit {
	case Kilometers:
		return formatScalar(km) + " km"
	case BothUnits:
		return fmt.Sprintf("%s km (%s mi)", group(math.Round(km)), group(math.Round(mi)))
	default:
		return formatScalar(mi) + " mi"
	}
}

func formatScalar(v float64) string {
	if v < 10 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return group(math.Round(v))
}

// group formats a non-negative whole number with comma separators.
func group(v float64) string {
	s := strconv.FormatFloat(v, 'f', 0, 64)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func sq(x float64) float64 { return x * x }
