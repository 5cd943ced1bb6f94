package csg

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ball is an exact sphere field for combinator tests.
type ball struct {
	center r3.Vec
	radius float64
}

func (b ball) Evaluate(p r3.Vec) float64 {
	return r3.Norm(r3.Sub(p, b.center)) - b.radius
}

func (b ball) Bounds() r3.Box {
	r := r3.Vec{X: b.radius, Y: b.radius, Z: b.radius}
	return r3.Box{Min: r3.Sub(b.center, r), Max: r3.Add(b.center, r)}
}

func TestUnionTakesMinimum(t *testing.T) {
	u := Union(ball{radius: 1}, ball{center: r3.Vec{X: 3}, radius: 1})
	if d := u.Evaluate(r3.Vec{X: 3}); d >= 0 {
		t.Errorf("center of second ball outside union: %g", d)
	}
	if d := u.Evaluate(r3.Vec{X: 1.5}); d <= 0 {
		t.Errorf("gap between balls inside union: %g", d)
	}
	bb := u.Bounds()
	if bb.Min.X > -1 || bb.Max.X < 4 {
		t.Errorf("union bounds %+v do not enclose both balls", bb)
	}
}

func TestDifferenceCarves(t *testing.T) {
	d := Difference(ball{radius: 2}, ball{radius: 1})
	if v := d.Evaluate(r3.Vec{}); v <= 0 {
		t.Errorf("carved center still inside: %g", v)
	}
	if v := d.Evaluate(r3.Vec{X: 1.5}); v >= 0 {
		t.Errorf("remaining shell not inside: %g", v)
	}
	// Bounds stay those of the base solid.
	if bb := d.Bounds(); bb.Max.X != 2 {
		t.Errorf("difference bounds %+v, want base bounds", bb)
	}
}

func square(side float64) SDF2 {
	h := side / 2
	return Polygon([][]r2.Vec{{
		{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h},
	}})
}

func TestPolygonEvenOdd(t *testing.T) {
	h := 2.0
	ring := Polygon([][]r2.Vec{
		{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}},
		{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}},
	})
	if d := ring.Evaluate(r2.Vec{}); d <= 0 {
		t.Errorf("hole center inside ring: %g", d)
	}
	if d := ring.Evaluate(r2.Vec{X: 1.5}); d >= 0 {
		t.Errorf("ring body outside: %g", d)
	}
	if d := ring.Evaluate(r2.Vec{X: 3}); d <= 0 {
		t.Errorf("exterior inside ring: %g", d)
	}
}

func TestPolygonDistance(t *testing.T) {
	s := square(2)
	if d := s.Evaluate(r2.Vec{X: 2}); math.Abs(d-1) > 1e-9 {
		t.Errorf("distance to edge = %g, want 1", d)
	}
	if d := s.Evaluate(r2.Vec{}); math.Abs(d+1) > 1e-9 {
		t.Errorf("center depth = %g, want -1", d)
	}
}

func TestPolygonNeedsContour(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("degenerate polygon accepted")
		}
	}()
	Polygon([][]r2.Vec{{{X: 1}, {X: 2}}})
}

func TestExtrude(t *testing.T) {
	e := Extrude(square(2), 4)
	if d := e.Evaluate(r3.Vec{}); d >= 0 {
		t.Errorf("solid center outside: %g", d)
	}
	if d := e.Evaluate(r3.Vec{Z: 3}); d <= 0 {
		t.Errorf("point above extrusion inside: %g", d)
	}
	if d := e.Evaluate(r3.Vec{X: 5}); d <= 0 {
		t.Errorf("point beside extrusion inside: %g", d)
	}
	bb := e.Bounds()
	if bb.Min.Z != -2 || bb.Max.Z != 2 {
		t.Errorf("extrusion z bounds [%g,%g], want [-2,2]", bb.Min.Z, bb.Max.Z)
	}
}
