package textmesh

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fernwerk/waypost/csg"
	"github.com/fernwerk/waypost/mesh"
	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// MinimumSize is the smallest em size in millimeters that still
// produces printable glyph strokes.
const MinimumSize = 3.0

// DefaultCells is the marching cubes resolution across the rendered
// string. Enough for clean glyph edges at sign scale.
const DefaultCells = 256

// Renderer converts strings to extruded solid meshes. Text is
// uppercased before rendering; lowercase strokes at sign sizes print
// poorly.
type Renderer struct {
	prov  Provider
	log   *zap.Logger
	Cells int // zero uses DefaultCells
}

// NewRenderer returns a Renderer using fonts from prov. A nil logger
// disables logging.
func NewRenderer(prov Provider, log *zap.Logger) *Renderer {
	if prov == nil {
		panic("nil font provider")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{prov: prov, log: log}
}

// Glyph is one rendered character: its closed outline contours in
// millimeters, already advanced along the pen.
type Glyph struct {
	Rune     rune
	Contours [][]r2.Vec
}

// Contours renders the string to glyph outline contours at the given
// em size. Text is uppercased first. The pen starts at x=0 with the
// baseline at y=0.
func (r *Renderer) Contours(text string, size float64) ([]Glyph, error) {
	if size < MinimumSize {
		return nil, fmt.Errorf("text size %.2f below printable minimum %.1f", size, MinimumSize)
	}
	text = strings.ToUpper(strings.TrimSpace(text))
	if text == "" {
		return nil, errors.New("empty text")
	}
	f, err := r.prov.Font()
	if err != nil {
		return nil, err
	}
	upem := fixed.Int26_6(f.FUnitsPerEm())
	scale := size / float64(upem)
	var (
		gb      truetype.GlyphBuf
		glyphs  []Glyph
		penX    float64
		prev    truetype.Index
		hasPrev bool
	)
	for _, ch := range text {
		idx := f.Index(ch)
		if idx == 0 && ch != ' ' {
			r.log.Warn("font has no glyph, skipping rune", zap.String("rune", string(ch)))
			continue
		}
		if hasPrev {
			penX += float64(f.Kern(upem, prev, idx)) * scale
		}
		if err := gb.Load(f, upem, idx, font.HintingNone); err != nil {
			return nil, fmt.Errorf("loading glyph %q: %w", string(ch), err)
		}
		if cs := glyphContours(&gb, penX, scale); len(cs) > 0 {
			glyphs = append(glyphs, Glyph{Rune: ch, Contours: cs})
		}
		penX += float64(gb.AdvanceWidth) * scale
		prev, hasPrev = idx, true
	}
	return glyphs, nil
}

// Solid renders the string at the given em size extruded to thickness.
// The result sits on the z=0 plane with the baseline at y=0 and the
// pen origin at x=0.
func (r *Renderer) Solid(text string, size, thickness float64) (mesh.Mesh, error) {
	if thickness <= 0 {
		return mesh.Mesh{}, errors.New("text thickness must be positive")
	}
	glyphs, err := r.Contours(text, size)
	if err != nil {
		return mesh.Mesh{}, err
	}
	var contours [][]r2.Vec
	for _, g := range glyphs {
		contours = append(contours, g.Contours...)
	}
	if len(contours) == 0 {
		return mesh.Mesh{}, fmt.Errorf("no visible glyphs in %q", text)
	}
	cells := r.Cells
	if cells <= 0 {
		cells = DefaultCells
	}
	solid := csg.Extrude(csg.Polygon(contours), thickness)
	m, err := csg.Triangulate(solid, cells)
	if err != nil {
		return mesh.Mesh{}, fmt.Errorf("meshing %q: %w", text, err)
	}
	return m.Translated(r3.Vec{Z: thickness / 2}), nil
}

// glyphContours flattens the quadratic outlines of a loaded glyph into
// polygon contours, offset by penX on the baseline.
func glyphContours(gb *truetype.GlyphBuf, penX, scale float64) [][]r2.Vec {
	var out [][]r2.Vec
	start := 0
	for _, end := range gb.Ends {
		c := flattenContour(gb.Points[start:end], penX, scale)
		start = end
		if len(c) >= 3 {
			out = append(out, c)
		}
	}
	return out
}

// quadSteps line segments approximate each quadratic curve segment.
const quadSteps = 8

func flattenContour(pts []truetype.Point, penX, scale float64) []r2.Vec {
	n := len(pts)
	if n < 2 {
		return nil
	}
	pos := func(p truetype.Point) r2.Vec {
		return r2.Vec{X: penX + float64(p.X)*scale, Y: float64(p.Y) * scale}
	}
	onCurve := func(p truetype.Point) bool { return p.Flags&0x01 != 0 }

	// Start from an on-curve point. A contour of only control points
	// starts from the implicit midpoint of the last and first.
	i0 := -1
	for i, p := range pts {
		if onCurve(p) {
			i0 = i
			break
		}
	}
	var first r2.Vec
	if i0 >= 0 {
		first = pos(pts[i0])
	} else {
		i0 = n - 1
		first = mid(pos(pts[n-1]), pos(pts[0]))
	}
	out := []r2.Vec{first}
	cur := first
	var ctrl *r2.Vec
	for k := 1; k <= n; k++ {
		p := pts[(i0+k)%n]
		q := pos(p)
		if onCurve(p) {
			if ctrl == nil {
				out = append(out, q)
			} else {
				out = append(out, quadPoints(cur, *ctrl, q)...)
				ctrl = nil
			}
			cur = q
		} else {
			if ctrl != nil {
				// Two control points in a row: implicit on-curve
				// midpoint between them.
				m := mid(*ctrl, q)
				out = append(out, quadPoints(cur, *ctrl, m)...)
				cur = m
			}
			c := q
			ctrl = &c
		}
	}
	if ctrl != nil {
		out = append(out, quadPoints(cur, *ctrl, first)...)
	}
	// The polygon closes implicitly; drop a duplicated closing point.
	if len(out) > 1 && out[len(out)-1] == first {
		out = out[:len(out)-1]
	}
	return out
}

func quadPoints(p0, c, p1 r2.Vec) []r2.Vec {
	out := make([]r2.Vec, 0, quadSteps)
	for i := 1; i <= quadSteps; i++ {
		t := float64(i) / quadSteps
		u := 1 - t
		out = append(out, r2.Vec{
			X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
			Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
		})
	}
	return out
}

func mid(a, b r2.Vec) r2.Vec {
	return r2.Scale(0.5, r2.Add(a, b))
}
