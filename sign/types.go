package sign

import "strings"

// SegmentID is an optional slot identity. The binary keying scheme
// encodes values 1 through 15; anything else degrades to a plain
// centered index pin.
type SegmentID struct {
	N  int
	OK bool
}

// ID returns a present SegmentID.
func ID(n int) SegmentID { return SegmentID{N: n, OK: true} }

// Keyable reports whether the id can be encoded as binary pins.
func (id SegmentID) Keyable() bool { return id.OK && id.N >= 1 && id.N <= 15 }

// Slot is one flat surface position on a post. Slot lists are ordered
// top to bottom and never mutated after construction.
type Slot struct {
	Bearing float64 // degrees [0,360), 0 north, clockwise
	ID      SegmentID
	Spacer  bool // occupies a pitch interval without a flat or pins
}

// Piece is one printable post unit produced by the planner.
type Piece struct {
	Height  float64
	Slots   []Slot
	Centers []float64 // vertical center per slot, same order as Slots

	Base      bool // carries the ground platform and decorations
	JoinPins  bool // exposes alignment pins on top
	JoinHoles bool // receives alignment holes at the bottom
}

// Plate describes one sign plate. Immutable once constructed.
type Plate struct {
	Label         string
	DistanceValue string
	DistanceUnits string
	Bearing       float64
	ID            SegmentID
	// Arrowed selects the pointed dart blank. The home sign uses a
	// plain rectangle.
	Arrowed bool
}

// PointsLeft reports whether the plate points left so every sign hangs
// on the same side of the post. 180 itself stays right-pointing.
func (p Plate) PointsLeft() bool {
	return p.Arrowed && p.Bearing > 180
}

// SplitDistance splits a formatted distance like "214 mi" into value
// and units for the stacked two-line layout. A string without spaces
// becomes the value with empty units.
func SplitDistance(distance string) (value, units string) {
	fields := strings.Fields(distance)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	}
	return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1]
}

// FoldBearing maps a bearing onto the post's shared flat side: flats
// for bearings beyond 180 are carved at bearing-180 and their plates
// point left instead.
func FoldBearing(bearing float64) float64 {
	if bearing > 180 {
		return bearing - 180
	}
	return bearing
}
