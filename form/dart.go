package form

import (
	"github.com/fernwerk/waypost/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Dart returns the pointed sign blank: a square attachment face at x=0,
// a rectangular body, and a triangular point ending at x=length. The
// blank occupies [0,length] x [0,height] x [0,thickness] and points
// toward +X; mirror it for left-pointing plates. Fixed topology: 10
// vertices, 16 triangles, watertight.
func Dart(length, height, thickness, pointLength float64) mesh.Mesh {
	if length <= 0 || height <= 0 || thickness <= 0 {
		panic("dimension <= 0")
	}
	if pointLength <= 0 || pointLength >= length {
		panic("require 0 < pointLength < length")
	}
	body := length - pointLength
	tipY := height / 2
	vertices := []r3.Vec{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: height, Z: 0},
		{X: 0, Y: height, Z: thickness},
		{X: 0, Y: 0, Z: thickness},
		{X: body, Y: 0, Z: 0},
		{X: body, Y: height, Z: 0},
		{X: body, Y: height, Z: thickness},
		{X: body, Y: 0, Z: thickness},
		{X: length, Y: tipY, Z: 0},
		{X: length, Y: tipY, Z: thickness},
	}
	faces := [][3]int{
		{0, 2, 1}, {0, 3, 2}, // square attachment end
		{0, 1, 5}, {0, 5, 4}, // body bottom
		{3, 6, 2}, {3, 7, 6}, // body top
		{0, 4, 7}, {0, 7, 3}, // body -Y edge
		{1, 2, 6}, {1, 6, 5}, // body +Y edge
		{4, 5, 8},            // point bottom
		{7, 9, 6},            // point top
		{4, 8, 9}, {4, 9, 7}, // point -Y slope
		{5, 6, 9}, {5, 9, 8}, // point +Y slope
	}
	return mesh.New(vertices, faces)
}
