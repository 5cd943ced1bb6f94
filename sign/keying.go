package sign

import (
	"errors"
	"fmt"
	"math"

	"github.com/fernwerk/waypost/form"
	"github.com/fernwerk/waypost/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidSegmentID reports a segment id the binary keying scheme
// cannot encode.
var ErrInvalidSegmentID = errors.New("segment id not encodable as binary pins")

const pinSections = 24

// pinOffsets are the four binary bit positions relative to the slot
// center, lowest bit first.
func (c Config) pinOffsets() [4]float64 {
	s := c.IDPinSpacing
	return [4]float64{-1.5 * s, -0.5 * s, 0.5 * s, 1.5 * s}
}

// radialPin builds a pin protruding from a flat carved at the given
// bearing, its axis horizontal, embedded slightly into the post.
func (c Config) radialPin(radius, length, bearing, slotCenter, axialOffset float64) mesh.Mesh {
	pin := form.Cylinder(radius, length, pinSections).RotatedX(90)
	radialCenter := c.PostRadius - c.FlatDepth + length/2 - booleanOverlap
	pin = pin.Translated(r3.Vec{Y: radialCenter, Z: slotCenter + axialOffset})
	// Negated: the flat carving frame views the post from below.
	return pin.RotatedZ(-bearing, r3.Vec{})
}

// IDPins builds the binary identity pins for a slot: pin i present iff
// bit i of id is set. Valid ids are 1 through 15; zero and negative
// ids have no representation and are a validation error.
func IDPins(c Config, bearing, slotCenter float64, id int) (mesh.Mesh, error) {
	if id <= 0 {
		return mesh.Mesh{}, fmt.Errorf("%w: %d", ErrInvalidSegmentID, id)
	}
	if id > 15 {
		return mesh.Mesh{}, fmt.Errorf("%w: %d exceeds 4 bits", ErrInvalidSegmentID, id)
	}
	var pins []mesh.Mesh
	for bit, off := range c.pinOffsets() {
		if id&(1<<bit) == 0 {
			continue
		}
		pins = append(pins, c.radialPin(c.IDPinRadius, c.IDPinLength, bearing, slotCenter, off))
	}
	return mesh.Concat(pins...), nil
}

// IDHoles builds the matching identity holes on a plate backside, one
// cutter per set bit, centered on the plate at the same offsets.
func IDHoles(c Config, plateLength, plateHeight float64, id int) ([]mesh.Mesh, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSegmentID, id)
	}
	if id > 15 {
		return nil, fmt.Errorf("%w: %d exceeds 4 bits", ErrInvalidSegmentID, id)
	}
	holeRadius := c.IDPinRadius + c.IDPinClearance
	holeDepth := math.Min(c.SignThickness, c.IDPinLength+c.IDPinClearance)
	var holes []mesh.Mesh
	for bit, off := range c.pinOffsets() {
		if id&(1<<bit) == 0 {
			continue
		}
		hole := form.Cylinder(holeRadius, holeDepth, pinSections).
			Translated(r3.Vec{X: plateLength / 2, Y: plateHeight/2 + off, Z: holeDepth / 2})
		holes = append(holes, hole)
	}
	return holes, nil
}

// IndexPin builds the single centered pin used when a slot has no
// encodable identity. Any center-pin plate seats on any center-pin
// slot; the identity guarantee is intentionally reduced here.
func IndexPin(c Config, bearing, slotCenter float64) mesh.Mesh {
	return c.radialPin(c.IndexPinRadius, c.IndexPinLength, bearing, slotCenter, 0)
}

// IndexHole builds the matching centered hole cutter for a plate.
func IndexHole(c Config, plateLength, plateHeight float64) mesh.Mesh {
	holeRadius := c.IndexPinRadius + c.IndexPinClearance
	holeDepth := math.Min(c.SignThickness, c.IndexPinLength+c.IndexPinClearance)
	return form.Cylinder(holeRadius, holeDepth, pinSections).
		Translated(r3.Vec{X: plateLength / 2, Y: plateHeight / 2, Z: holeDepth / 2})
}

// JoinPinOffsets returns the two asymmetric XY offsets for post join
// pins. Deliberately not 180-degree symmetric so stacked pieces only
// mate in one relative rotation. The offsets are independent of which
// piece is upper or lower.
func JoinPinOffsets(c Config) [2][2]float64 {
	primary := c.PostRadius * 0.45
	secondary := c.PostRadius * 0.28
	return [2][2]float64{
		{primary, 0},
		{-secondary, -primary * 0.6},
	}
}

// JoinPins builds the two glue-up alignment pins on top of a piece.
func JoinPins(c Config, pieceHeight float64) mesh.Mesh {
	zBase := pieceHeight - booleanOverlap
	var pins []mesh.Mesh
	for _, off := range JoinPinOffsets(c) {
		pin := form.Cylinder(c.JoinPinRadius, c.JoinPinLength, pinSections).
			Translated(r3.Vec{X: off[0], Y: off[1], Z: zBase + c.JoinPinLength/2})
		pins = append(pins, pin)
	}
	return mesh.Concat(pins...)
}

// JoinPinHoles builds the matching hole cutters at the bottom of the
// piece above.
func JoinPinHoles(c Config) mesh.Mesh {
	holeRadius := c.JoinPinRadius + c.JoinPinClearance
	holeDepth := c.JoinPinLength + c.JoinPinClearance
	var holes []mesh.Mesh
	for _, off := range JoinPinOffsets(c) {
		hole := form.Cylinder(holeRadius, holeDepth, pinSections).
			Translated(r3.Vec{X: off[0], Y: off[1], Z: holeDepth / 2})
		holes = append(holes, hole)
	}
	return mesh.Concat(holes...)
}

// joinFeatureHeight limits peg and socket height to the gap between
// stacked pieces.
func (c Config) joinFeatureHeight() float64 {
	return math.Max(0, c.VerticalSpacing/2-c.SignClearance)
}

// PegParts returns the keyed alignment peg solids for the top of a
// piece: round body plus one off-axis key tab at south, so the piece
// above can only seat in one rotation. The magnet pocket is returned
// separately as a cutter.
func PegParts(c Config, pieceHeight float64) (parts []mesh.Mesh, magnetCutter mesh.Mesh) {
	pegRadius := c.PostRadius * 0.5
	pegHeight := math.Min(8.0, c.joinFeatureHeight())
	keyWidth := c.PostRadius * 0.3
	keyDepth := c.PostRadius * 0.1

	zBase := pieceHeight - booleanOverlap
	peg := form.Cylinder(pegRadius, pegHeight, 32).
		Translated(r3.Vec{Z: zBase + pegHeight/2})
	key := form.Box(r3.Vec{X: keyWidth, Y: keyDepth * 2, Z: pegHeight}).
		Translated(r3.Vec{Y: -(pegRadius + keyDepth - booleanOverlap), Z: zBase + pegHeight/2})

	magnetRadius := c.MagnetDiameter/2 + c.MagnetClearance
	magnetDepth := math.Min(c.MagnetThickness+c.MagnetClearance, pegHeight)
	magnet := form.Cylinder(magnetRadius, magnetDepth, 32).
		Translated(r3.Vec{Z: zBase + pegHeight - magnetDepth/2})
	return []mesh.Mesh{peg, key}, magnet
}

// SocketCutter returns the oversized socket plus key slot cut into the
// bottom of the piece above a peg.
func SocketCutter(c Config) mesh.Mesh {
	pegRadius := c.PostRadius * 0.5
	socketRadius := pegRadius + c.PegClearance
	socketDepth := math.Min(8.5, c.joinFeatureHeight())
	keyWidth := c.PostRadius*0.3 + c.PegClearance
	keyDepth := c.PostRadius*0.1 + c.PegClearance

	socket := form.Cylinder(socketRadius, socketDepth, 32).
		Translated(r3.Vec{Z: socketDepth / 2})
	slot := form.Box(r3.Vec{X: keyWidth, Y: keyDepth * 2, Z: socketDepth}).
		Translated(r3.Vec{Y: -(pegRadius + keyDepth), Z: socketDepth / 2})
	return mesh.Concat(socket, slot)
}

// SocketMagnetCutter recesses a magnet pocket upward from the socket
// ceiling.
func SocketMagnetCutter(c Config) mesh.Mesh {
	socketDepth := math.Min(8.5, c.joinFeatureHeight())
	magnetRadius := c.MagnetDiameter/2 + c.MagnetClearance
	magnetDepth := math.Min(c.MagnetThickness+c.MagnetClearance, socketDepth)
	return form.Cylinder(magnetRadius, magnetDepth, 32).
		Translated(r3.Vec{Z: socketDepth + magnetDepth/2})
}
