// Package csg composes triangle meshes with boolean operations. Meshes
// are converted to signed distance fields, combined in distance space
// and re-meshed with marching cubes. The Compositor wraps an Engine
// with the cleaning and fallback policy the sign assembler relies on.
package csg

import (
	"math"

	"github.com/fernwerk/waypost/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// SDF3 is the signed distance function of a 3D solid. Negative inside.
type SDF3 interface {
	Evaluate(p r3.Vec) float64
	Bounds() r3.Box
}

// SDF2 is the signed distance function of a 2D region. Negative inside.
type SDF2 interface {
	Evaluate(p r2.Vec) float64
	Bounds() r2.Box
}

// Union returns the union of two distance fields.
func Union(a, b SDF3) SDF3 {
	if a == nil || b == nil {
		panic("nil argument to Union")
	}
	return union3{a: a, b: b}
}

type union3 struct {
	a, b SDF3
}

func (u union3) Evaluate(p r3.Vec) float64 {
	return math.Min(u.a.Evaluate(p), u.b.Evaluate(p))
}

func (u union3) Bounds() r3.Box {
	ba := u.a.Bounds()
	bb := u.b.Bounds()
	return r3.Box{
		Min: d3.MinElem(ba.Min, bb.Min),
		Max: d3.MaxElem(ba.Max, bb.Max),
	}
}

// Difference returns the field of a with b removed.
func Difference(a, b SDF3) SDF3 {
	if a == nil || b == nil {
		panic("nil argument to Difference")
	}
	return difference3{a: a, b: b}
}

type difference3 struct {
	a, b SDF3
}

func (d difference3) Evaluate(p r3.Vec) float64 {
	return math.Max(d.a.Evaluate(p), -d.b.Evaluate(p))
}

func (d difference3) Bounds() r3.Box { return d.a.Bounds() }

// Extrude returns the solid formed by extruding a 2D field along Z,
// centered on the XY plane.
func Extrude(s SDF2, height float64) SDF3 {
	if s == nil {
		panic("nil argument to Extrude")
	}
	if height <= 0 {
		panic("height <= 0")
	}
	return extrude3{s: s, half: height / 2}
}

type extrude3 struct {
	s    SDF2
	half float64
}

func (e extrude3) Evaluate(p r3.Vec) float64 {
	a := e.s.Evaluate(r2.Vec{X: p.X, Y: p.Y})
	b := math.Abs(p.Z) - e.half
	if a > 0 && b > 0 {
		return math.Hypot(a, b)
	}
	return math.Max(a, b)
}

func (e extrude3) Bounds() r3.Box {
	bb := e.s.Bounds()
	return r3.Box{
		Min: r3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: -e.half},
		Max: r3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: e.half},
	}
}
