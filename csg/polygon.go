package csg

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Polygon returns the SDF2 of a set of closed contours filled with the
// even-odd rule. This matches glyph outlines, where hole contours wind
// opposite to the outer contour. Degenerate segments are skipped.
func Polygon(contours [][]r2.Vec) SDF2 {
	var pts int
	for _, c := range contours {
		if len(c) >= 3 {
			pts += len(c)
		}
	}
	if pts == 0 {
		panic("polygon needs at least one contour of 3 points")
	}
	s := &polygon2{contours: contours}
	first := true
	for _, c := range contours {
		for _, p := range c {
			if first {
				s.bb = r2.Box{Min: p, Max: p}
				first = false
				continue
			}
			s.bb.Min = r2.Vec{X: math.Min(s.bb.Min.X, p.X), Y: math.Min(s.bb.Min.Y, p.Y)}
			s.bb.Max = r2.Vec{X: math.Max(s.bb.Max.X, p.X), Y: math.Max(s.bb.Max.Y, p.Y)}
		}
	}
	return s
}

type polygon2 struct {
	contours [][]r2.Vec
	bb       r2.Box
}

func (s *polygon2) Bounds() r2.Box { return s.bb }

func (s *polygon2) Evaluate(p r2.Vec) float64 {
	d2 := math.MaxFloat64
	inside := false
	for _, c := range s.contours {
		if len(c) < 3 {
			continue
		}
		for i := range c {
			a := c[i]
			b := c[(i+1)%len(c)]
			e := r2.Sub(b, a)
			ee := r2.Norm2(e)
			if ee == 0 {
				continue
			}
			w := r2.Sub(p, a)
			t := math.Max(0, math.Min(1, r2.Dot(w, e)/ee))
			d := r2.Sub(w, r2.Scale(t, e))
			d2 = math.Min(d2, r2.Norm2(d))
			// Even-odd crossing count on a +X ray.
			if (a.Y > p.Y) != (b.Y > p.Y) {
				x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
				if x > p.X {
					inside = !inside
				}
			}
		}
	}
	dist := math.Sqrt(d2)
	if inside {
		return -dist
	}
	return dist
}
