package sign

import (
	"errors"
	"math"

	"github.com/fernwerk/waypost/csg"
	"github.com/fernwerk/waypost/mesh"
	"github.com/fernwerk/waypost/textmesh"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// Generator builds post pieces and sign plates. One Generator handles
// one run; meshes are built, composed and exported sequentially with
// no shared state between outputs.
type Generator struct {
	cfg  Config
	comp *csg.Compositor
	text *textmesh.Renderer
	log  *zap.Logger
}

// NewGenerator wires a Generator. The boolean engine is mandatory:
// flats, keying holes and sockets are carved subtractively and have no
// degraded fallback. A nil logger disables logging.
func NewGenerator(cfg Config, eng csg.Engine, text *textmesh.Renderer, log *zap.Logger) (*Generator, error) {
	if eng == nil {
		return nil, errors.New("boolean engine required, subtractive carving has no fallback")
	}
	if text == nil {
		return nil, errors.New("text renderer required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.PostHeight > MaxPostHeight {
		log.Warn("post height capped", zap.Float64("requested", cfg.PostHeight), zap.Float64("cap", MaxPostHeight))
		cfg.PostHeight = MaxPostHeight
	}
	return &Generator{
		cfg:  cfg,
		comp: csg.NewCompositor(eng, log),
		text: text,
		log:  log,
	}, nil
}

// Config returns the dimensions the generator was built with.
func (g *Generator) Config() Config { return g.cfg }

// textAt renders a string and moves its pen origin to pos. With ramp
// the text base is widened for print adhesion.
func (g *Generator) textAt(s string, font float64, pos r3.Vec, ramp bool) (mesh.Mesh, error) {
	m, err := g.text.Solid(s, font, g.cfg.TextHeight)
	if err != nil {
		return mesh.Mesh{}, err
	}
	m = m.Translated(pos)
	if ramp {
		m = applyTextRamp(g.cfg, m, pos.Z)
	}
	return m, nil
}

// applyTextRamp scales the lowest ramp band of a text solid outward in
// XY, blending linearly to the nominal outline at the top of the band.
func applyTextRamp(c Config, m mesh.Mesh, baseZ float64) mesh.Mesh {
	rampHeight := math.Min(c.TextRampHeight, c.TextHeight)
	if rampHeight <= 0 || c.TextRampScale <= 1 {
		return m
	}
	bb := m.Bounds()
	cx := (bb.Min.X + bb.Max.X) / 2
	cy := (bb.Min.Y + bb.Max.Y) / 2
	zMax := baseZ + rampHeight
	return m.ScaledAboutXY(cx, cy, func(z float64) float64 {
		switch {
		case z <= baseZ:
			return c.TextRampScale
		case z >= zMax:
			return 1
		}
		t := (z - baseZ) / rampHeight
		return c.TextRampScale - (c.TextRampScale-1)*t
	})
}

// centeredXY translates a mesh so its XY bounding box centers on the
// origin, preserving Z.
func centeredXY(m mesh.Mesh) mesh.Mesh {
	bb := m.Bounds()
	return m.Translated(r3.Vec{
		X: -(bb.Min.X + bb.Max.X) / 2,
		Y: -(bb.Min.Y + bb.Max.Y) / 2,
	})
}
