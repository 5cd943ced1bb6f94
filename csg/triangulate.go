package csg

import (
	"errors"
	"fmt"
	"os"

	sdfxrender "github.com/deadsy/sdfx/render"
	sdfxsdf "github.com/deadsy/sdfx/sdf"
	"github.com/fernwerk/waypost/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func (e *SDFEngine) triangulate(s SDF3, exact bool) (mesh.Mesh, error) {
	return Triangulate(s, e.cells(exact))
}

// Triangulate meshes a distance field with sdfx marching cubes using
// cells sampling cells across the largest dimension. sdfx renders to a
// file, so the result goes through a temporary STL which is read back
// into an indexed mesh.
func Triangulate(s SDF3, cells int) (mesh.Mesh, error) {
	fp, err := os.CreateTemp("", "waypost-csg-*.stl")
	if err != nil {
		return mesh.Mesh{}, err
	}
	path := fp.Name()
	fp.Close()
	defer os.Remove(path)

	func() {
		// sdfx prints render progress to stdout.
		stdout := os.Stdout
		defer func() { os.Stdout = stdout }()
		os.Stdout, _ = os.Open(os.DevNull)
		sdfxrender.ToSTL(fieldAdapter{s: s, pad: pad(s, cells)}, cells, path, &sdfxrender.MarchingCubesOctree{})
	}()

	rfp, err := os.Open(path)
	if err != nil {
		return mesh.Mesh{}, fmt.Errorf("marching cubes produced no output: %w", err)
	}
	defer rfp.Close()
	out, err := mesh.ReadSTL(rfp)
	if err != nil {
		return mesh.Mesh{}, fmt.Errorf("reading marching cubes output: %w", err)
	}
	if out.IsEmpty() {
		return mesh.Mesh{}, errors.New("marching cubes produced an empty mesh")
	}
	return out, nil
}

// pad returns one sampling cell of margin so the surface never touches
// the sampled volume boundary.
func pad(s SDF3, cells int) float64 {
	size := r3.Sub(s.Bounds().Max, s.Bounds().Min)
	maxDim := size.X
	if size.Y > maxDim {
		maxDim = size.Y
	}
	if size.Z > maxDim {
		maxDim = size.Z
	}
	return maxDim / float64(cells)
}

// fieldAdapter exposes an SDF3 through the sdfx interface.
type fieldAdapter struct {
	s   SDF3
	pad float64
}

func (a fieldAdapter) Evaluate(p sdfxsdf.V3) float64 {
	return a.s.Evaluate(r3.Vec{X: p.X, Y: p.Y, Z: p.Z})
}

func (a fieldAdapter) BoundingBox() sdfxsdf.Box3 {
	bb := a.s.Bounds()
	return sdfxsdf.Box3{
		Min: sdfxsdf.V3{X: bb.Min.X - a.pad, Y: bb.Min.Y - a.pad, Z: bb.Min.Z - a.pad},
		Max: sdfxsdf.V3{X: bb.Max.X + a.pad, Y: bb.Max.Y + a.pad, Z: bb.Max.Z + a.pad},
	}
}
