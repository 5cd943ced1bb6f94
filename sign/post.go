package sign

import (
	"fmt"
	"math"

	"github.com/fernwerk/waypost/form"
	"github.com/fernwerk/waypost/internal/geo"
	"github.com/fernwerk/waypost/mesh"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

const postSections = 64

// bearingFrameOffset converts a compass bearing (0 north, clockwise)
// into the angle used to place carving boxes and pins around the post.
const bearingFrameOffset = 90.0

// GeneratePosts plans the slot list across printable pieces, builds
// each piece and writes one STL per piece next to outputBase. The
// bottom piece carries the base platform. Returns the written paths,
// ordered top to bottom.
func (g *Generator) GeneratePosts(slots []Slot, outputBase string, home *geo.Point) ([]string, error) {
	plan := PlanPieces(g.cfg, slots)
	g.log.Info("planned post pieces",
		zap.Int("slots", len(slots)), zap.Int("pieces", len(plan.Pieces)))

	paths := make([]string, 0, len(plan.Pieces))
	for i, piece := range plan.Pieces {
		body, err := g.buildPiece(piece)
		if err != nil {
			return nil, fmt.Errorf("piece %d: %w", i+1, err)
		}
		if piece.Base {
			body, err = g.assembleBase(body, home)
			if err != nil {
				return nil, fmt.Errorf("base piece: %w", err)
			}
		}
		path := outputBase + pieceSuffix(i, len(plan.Pieces)) + ".stl"
		if err := mesh.WriteSTLFile(path, body); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		g.log.Info("wrote post piece",
			zap.String("path", path),
			zap.Int("slots", len(piece.Slots)),
			zap.Int("faces", body.NumFaces()))
		paths = append(paths, path)
	}
	return paths, nil
}

func pieceSuffix(i, n int) string {
	switch {
	case i == n-1:
		return "_post_lower"
	case i == 0:
		return "_post_upper"
	}
	return fmt.Sprintf("_post_mid%d", n-1-i)
}

// buildPiece carves the flats and adds the keying features of one post
// piece. Carving failures degrade single slots; invalid segment ids
// abort.
func (g *Generator) buildPiece(p Piece) (mesh.Mesh, error) {
	c := g.cfg
	body := form.Cylinder(c.PostRadius, p.Height, postSections).
		Translated(r3.Vec{Z: p.Height / 2})

	var adds []mesh.Mesh
	for i, slot := range p.Slots {
		if slot.Spacer {
			continue // occupies the pitch interval, nothing carved
		}
		center := p.Centers[i]
		adjusted := math.Mod(slot.Bearing+bearingFrameOffset, 360)

		cutter := g.flatCutter(adjusted, center)
		if carved, err := g.comp.Difference(body, cutter); err != nil {
			g.log.Warn("flat carve failed, slot keeps round surface",
				zap.Int("slot", i), zap.Float64("bearing", slot.Bearing), zap.Error(err))
		} else {
			body = carved
		}

		switch {
		case slot.ID.Keyable():
			pins, err := IDPins(c, adjusted, center, slot.ID.N)
			if err != nil {
				return mesh.Mesh{}, err
			}
			adds = append(adds, pins)
		case slot.ID.OK && slot.ID.N > 15:
			g.log.Info("segment id exceeds 15, using center pin only",
				zap.Int("slot", i), zap.Int("id", slot.ID.N))
			adds = append(adds, IndexPin(c, adjusted, center))
		case slot.ID.OK:
			return mesh.Mesh{}, fmt.Errorf("slot %d: %w: %d", i, ErrInvalidSegmentID, slot.ID.N)
		default:
			adds = append(adds, IndexPin(c, adjusted, center))
		}
	}

	if p.JoinHoles {
		cutter := JoinPinHoles(c)
		if c.PegJoint {
			cutter = mesh.Concat(SocketCutter(c), SocketMagnetCutter(c))
		}
		if carved, err := g.comp.Difference(body, cutter); err != nil {
			g.log.Warn("join holes carve failed", zap.Error(err))
		} else {
			body = carved
		}
	}

	if p.JoinPins {
		if c.PegJoint {
			peg, err := g.buildPeg(p.Height)
			if err != nil {
				g.log.Warn("alignment peg failed, piece joins unkeyed", zap.Error(err))
			} else {
				adds = append(adds, peg)
			}
		} else {
			adds = append(adds, JoinPins(c, p.Height))
		}
	}

	if len(adds) > 0 {
		body = g.comp.Union(append([]mesh.Mesh{body}, adds...)...)
	}
	return body, nil
}

// buildPeg fuses the keyed peg parts and recesses its magnet pocket.
func (g *Generator) buildPeg(pieceHeight float64) (mesh.Mesh, error) {
	parts, magnet := PegParts(g.cfg, pieceHeight)
	peg := g.comp.Union(parts...)
	pocketed, err := g.comp.Difference(peg, magnet)
	if err != nil {
		// A peg without its magnet pocket still aligns the pieces.
		g.log.Warn("peg magnet pocket failed", zap.Error(err))
		return peg, nil
	}
	return pocketed, nil
}

// flatCutter is the box subtracted from the post to carve one flat:
// tangent to the carved surface, extending outward through the post
// side.
func (g *Generator) flatCutter(bearing, center float64) mesh.Mesh {
	c := g.cfg
	depth := c.FlatDepth * 3
	box := form.Box(r3.Vec{X: c.PostRadius * 2, Y: depth, Z: c.FlatHeight})
	box = box.Translated(r3.Vec{Y: c.PostRadius - c.FlatDepth + depth/2, Z: center})
	// Negated: the carving frame views the post from below.
	return box.RotatedZ(-bearing, r3.Vec{})
}
