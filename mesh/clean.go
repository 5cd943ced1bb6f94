package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultWeldTol is the vertex merge tolerance used by Cleaned when the
// caller passes 0. Raw generated primitives carry seams on this order.
const DefaultWeldTol = 1e-5

// Cleaned returns a repaired copy of the mesh ready for boolean
// operations: coincident vertices merged within tol, degenerate and
// duplicate faces removed, unreferenced vertices dropped. The receiver
// is not modified.
func (m Mesh) Cleaned(tol float64) Mesh {
	if tol <= 0 {
		tol = DefaultWeldTol
	}
	c := m.mergedVertices(tol)
	c = c.withoutBadFaces(tol)
	return c.withoutUnreferencedVertices()
}

// mergedVertices rewrites faces so that vertices within tol of each other
// share an index. Vertex positions are snapped to the first occurrence.
func (m Mesh) mergedVertices(tol float64) Mesh {
	cache := make(map[[3]int64]int)
	remap := make([]int, len(m.Vertices))
	vertices := make([]r3.Vec, 0, len(m.Vertices))
	ri := 1 / tol
	for i, vert := range m.Vertices {
		v := r3.Scale(ri, vert)
		key := [3]int64{int64(math.Round(v.X)), int64(math.Round(v.Y)), int64(math.Round(v.Z))}
		idx, ok := cache[key]
		if !ok {
			idx = len(vertices)
			cache[key] = idx
			vertices = append(vertices, vert)
		}
		remap[i] = idx
	}
	faces := make([][3]int, len(m.Faces))
	for i, f := range m.Faces {
		faces[i] = [3]int{remap[f[0]], remap[f[1]], remap[f[2]]}
	}
	return Mesh{Vertices: vertices, Faces: faces}
}

// withoutBadFaces drops faces that reference a vertex twice, have near
// zero area, or duplicate an earlier face up to rotation.
func (m Mesh) withoutBadFaces(tol float64) Mesh {
	seen := make(map[[3]int]struct{}, len(m.Faces))
	faces := m.Faces[:0:0]
	area2Min := tol * tol
	for _, f := range m.Faces {
		if f[0] == f[1] || f[1] == f[2] || f[2] == f[0] {
			continue
		}
		t := Triangle{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
		if t.Area() < area2Min {
			continue
		}
		key := canonicalFace(f)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		faces = append(faces, f)
	}
	return Mesh{Vertices: m.Vertices, Faces: faces}
}

// canonicalFace rotates the face so the smallest index leads, making the
// key winding-stable for duplicate detection.
func canonicalFace(f [3]int) [3]int {
	switch {
	case f[1] < f[0] && f[1] < f[2]:
		return [3]int{f[1], f[2], f[0]}
	case f[2] < f[0] && f[2] < f[1]:
		return [3]int{f[2], f[0], f[1]}
	}
	return f
}

func (m Mesh) withoutUnreferencedVertices() Mesh {
	used := make([]bool, len(m.Vertices))
	for _, f := range m.Faces {
		used[f[0]] = true
		used[f[1]] = true
		used[f[2]] = true
	}
	remap := make([]int, len(m.Vertices))
	vertices := make([]r3.Vec, 0, len(m.Vertices))
	for i, u := range used {
		if !u {
			remap[i] = -1
			continue
		}
		remap[i] = len(vertices)
		vertices = append(vertices, m.Vertices[i])
	}
	faces := make([][3]int, len(m.Faces))
	for i, f := range m.Faces {
		faces[i] = [3]int{remap[f[0]], remap[f[1]], remap[f[2]]}
	}
	return Mesh{Vertices: vertices, Faces: faces}
}
