// Package form constructs elementary mesh solids with outward-consistent
// winding: boxes, cylinders, chamfered disks and the dart-shaped sign
// blank. Invalid dimensions panic; callers validate configuration once
// at startup.
package form

import (
	"math"

	"github.com/fernwerk/waypost/mesh"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Box returns a box of the given side lengths centered on the origin.
func Box(size r3.Vec) mesh.Mesh {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		panic("size <= 0")
	}
	h := r3.Scale(0.5, size)
	vertices := []r3.Vec{
		{X: -h.X, Y: -h.Y, Z: -h.Z},
		{X: h.X, Y: -h.Y, Z: -h.Z},
		{X: h.X, Y: h.Y, Z: -h.Z},
		{X: -h.X, Y: h.Y, Z: -h.Z},
		{X: -h.X, Y: -h.Y, Z: h.Z},
		{X: h.X, Y: -h.Y, Z: h.Z},
		{X: h.X, Y: h.Y, Z: h.Z},
		{X: -h.X, Y: h.Y, Z: h.Z},
	}
	faces := [][3]int{
		{0, 2, 1}, {0, 3, 2}, // bottom
		{4, 5, 6}, {4, 6, 7}, // top
		{0, 1, 5}, {0, 5, 4}, // -Y
		{2, 3, 7}, {2, 7, 6}, // +Y
		{1, 2, 6}, {1, 6, 5}, // +X
		{3, 0, 4}, {3, 4, 7}, // -X
	}
	return mesh.New(vertices, faces)
}

// Cylinder returns a cylinder of the given radius and height centered on
// the origin with its axis along Z. sections controls the smoothness of
// the approximating prism.
func Cylinder(radius, height float64, sections int) mesh.Mesh {
	if radius <= 0 {
		panic("radius <= 0")
	}
	if height <= 0 {
		panic("height <= 0")
	}
	return Lathe([]r2.Vec{
		{X: radius, Y: -height / 2},
		{X: radius, Y: height / 2},
	}, sections)
}

// ChamferedDisk returns a disk with a chamfered top edge, bottom face at
// z=0. It forms the ground-level base platform. chamfer is clamped to
// [0, height].
func ChamferedDisk(radius, height, chamfer float64, sections int) mesh.Mesh {
	if radius <= 0 {
		panic("radius <= 0")
	}
	if height <= 0 {
		panic("height <= 0")
	}
	chamfer = math.Max(0, math.Min(chamfer, height))
	topRadius := math.Max(radius-chamfer, 0.1)
	if chamfer == 0 {
		return Lathe([]r2.Vec{
			{X: radius, Y: 0},
			{X: radius, Y: height},
		}, sections)
	}
	return Lathe([]r2.Vec{
		{X: radius, Y: 0},
		{X: radius, Y: height - chamfer},
		{X: topRadius, Y: height},
	}, sections)
}

// Tube returns a hollow ring: outer radius minus inner radius, centered
// on the origin. Used for the compass ring on the base so the decoration
// union never needs a subtraction.
func Tube(outerRadius, innerRadius, height float64, sections int) mesh.Mesh {
	if innerRadius <= 0 || outerRadius <= innerRadius {
		panic("require 0 < innerRadius < outerRadius")
	}
	if height <= 0 {
		panic("height <= 0")
	}
	h := height / 2
	// Closed rectangular profile revolved about Z. First and last point
	// coincide so no caps are generated.
	profile := []r2.Vec{
		{X: innerRadius, Y: -h},
		{X: outerRadius, Y: -h},
		{X: outerRadius, Y: h},
		{X: innerRadius, Y: h},
		{X: innerRadius, Y: -h},
	}
	return latheProfile(profile, sections, false)
}

// Lathe revolves an open profile of (radius, z) points around the Z axis
// and closes the solid with flat caps at the first and last points. The
// profile must be ordered bottom to top with all radii positive.
func Lathe(profile []r2.Vec, sections int) mesh.Mesh {
	return latheProfile(profile, sections, true)
}

func latheProfile(profile []r2.Vec, sections int, caps bool) mesh.Mesh {
	if len(profile) < 2 {
		panic("profile needs at least 2 points")
	}
	if sections < 3 {
		panic("sections < 3")
	}
	for _, p := range profile {
		if p.X <= 0 {
			panic("profile radius <= 0")
		}
	}
	var vertices []r3.Vec
	var faces [][3]int
	ring := func(p r2.Vec) int {
		start := len(vertices)
		for i := 0; i < sections; i++ {
			theta := 2 * math.Pi * float64(i) / float64(sections)
			sin, cos := math.Sincos(theta)
			vertices = append(vertices, r3.Vec{X: p.X * cos, Y: p.X * sin, Z: p.Y})
		}
		return start
	}
	rings := make([]int, len(profile))
	for k, p := range profile {
		rings[k] = ring(p)
	}
	// Walls between consecutive rings, wound outward.
	for k := 0; k+1 < len(profile); k++ {
		lo, hi := rings[k], rings[k+1]
		for i := 0; i < sections; i++ {
			j := (i + 1) % sections
			faces = append(faces,
				[3]int{lo + i, lo + j, hi + j},
				[3]int{lo + i, hi + j, hi + i},
			)
		}
	}
	if caps {
		bottom := len(vertices)
		vertices = append(vertices, r3.Vec{Z: profile[0].Y})
		top := len(vertices)
		vertices = append(vertices, r3.Vec{Z: profile[len(profile)-1].Y})
		lo, hi := rings[0], rings[len(profile)-1]
		for i := 0; i < sections; i++ {
			j := (i + 1) % sections
			faces = append(faces,
				[3]int{bottom, lo + j, lo + i}, // faces -Z
				[3]int{top, hi + i, hi + j},    // faces +Z
			)
		}
	}
	return mesh.New(vertices, faces)
}
