package csg

import (
	"errors"
	"fmt"

	"github.com/fernwerk/waypost/mesh"
)

// Engine evaluates boolean operations on meshes. Implementations
// return an error when an operation cannot produce a usable solid; the
// Compositor owns the fallback policy.
type Engine interface {
	// Union merges the solids into one watertight mesh.
	Union(exact bool, solids ...mesh.Mesh) (mesh.Mesh, error)
	// Difference removes b from a.
	Difference(a, b mesh.Mesh, exact bool) (mesh.Mesh, error)
}

// Marching cubes cells across the largest dimension of the result.
// Exact mode re-samples finer when the first pass degenerates.
const (
	DefaultCells      = 200
	DefaultExactCells = 320
)

// SDFEngine implements Engine by importing meshes as signed distance
// fields, combining them in distance space and re-meshing the result.
type SDFEngine struct {
	Cells      int // zero uses DefaultCells
	ExactCells int // zero uses DefaultExactCells
}

func (e *SDFEngine) Union(exact bool, solids ...mesh.Mesh) (mesh.Mesh, error) {
	if len(solids) == 0 {
		return mesh.Mesh{}, errors.New("union of no solids")
	}
	fields, err := importAll(solids)
	if err != nil {
		return mesh.Mesh{}, err
	}
	combined := fields[0]
	for _, f := range fields[1:] {
		combined = Union(combined, f)
	}
	return e.triangulate(combined, exact)
}

func (e *SDFEngine) Difference(a, b mesh.Mesh, exact bool) (mesh.Mesh, error) {
	fields, err := importAll([]mesh.Mesh{a, b})
	if err != nil {
		return mesh.Mesh{}, err
	}
	return e.triangulate(Difference(fields[0], fields[1]), exact)
}

func importAll(solids []mesh.Mesh) ([]SDF3, error) {
	fields := make([]SDF3, len(solids))
	for i, s := range solids {
		f, err := ImportSolid(s, 0)
		if err != nil {
			return nil, fmt.Errorf("importing solid %d of %d: %w", i+1, len(solids), err)
		}
		fields[i] = f
	}
	return fields, nil
}

func (e *SDFEngine) cells(exact bool) int {
	if exact {
		if e.ExactCells > 0 {
			return e.ExactCells
		}
		return DefaultExactCells
	}
	if e.Cells > 0 {
		return e.Cells
	}
	return DefaultCells
}
