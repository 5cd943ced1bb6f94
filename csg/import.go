package csg

import (
	"errors"
	"fmt"
	"math"

	"github.com/fernwerk/waypost/internal/d3"
	"github.com/fernwerk/waypost/mesh"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// ImportSolid instantiates a signed distance field from a manifold
// triangle mesh. Nearest-triangle queries go through a k-d tree over
// triangle centroids and the sign comes from angle-weighted pseudo
// normals, so the field stays correct near vertices and edges.
// vertexTol chooses shared vertices among triangles and should be
// around 1/1000th of the smallest triangle side. Zero infers it.
func ImportSolid(m mesh.Mesh, vertexTolOrZero float64) (ImportedSDF, error) {
	sm, err := newSolidMesh(m.Triangles(), vertexTolOrZero)
	if err != nil {
		return ImportedSDF{}, err
	}
	tree := kdtree.New(sm, true)
	return ImportedSDF{tree: *tree, mesh: sm}, nil
}

// ImportedSDF is the SDF3 of an imported triangle mesh.
type ImportedSDF struct {
	tree kdtree.Tree
	mesh *solidMesh
}

func (s ImportedSDF) Evaluate(q r3.Vec) float64 {
	nearest, dist2 := s.tree.Nearest(&solidTriangle{C: q})
	kd := nearest.(*solidTriangle)
	return kd.CopySign(q, math.Sqrt(dist2))
}

func (s ImportedSDF) Bounds() r3.Box { return s.mesh.bb }

// solidMesh indexes the imported triangles with their pseudo normals.
type solidMesh struct {
	bb        r3.Box
	vertices  []pseudoVertex
	triangles []solidTriangle
	// access to edge pseudo normals using vertex index.
	// Stored with lower index first.
	pseudoEdgeN map[[2]int]r3.Vec
}

type pseudoVertex struct {
	V r3.Vec
	// N is the weighted pseudo normal where the weights
	// are the opening angle formed by edges for the triangle.
	N r3.Vec
}

func newSolidMesh(triangles []mesh.Triangle, tol float64) (*solidMesh, error) {
	if len(triangles) == 0 {
		return nil, errors.New("empty mesh")
	}
	bb := r3.Box{Min: d3.Elem(math.MaxFloat64), Max: d3.Elem(-math.MaxFloat64)}
	minSide2 := math.MaxFloat64
	maxSide2 := -math.MaxFloat64
	for i := range triangles {
		for j, vert := range triangles[i] {
			bb.Min = d3.MinElem(bb.Min, vert)
			bb.Max = d3.MaxElem(bb.Max, vert)
			side2 := r3.Norm2(r3.Sub(triangles[i][(j+1)%3], vert))
			minSide2 = math.Min(minSide2, side2)
			maxSide2 = math.Max(maxSide2, side2)
		}
	}
	m := &solidMesh{
		bb:          bb,
		triangles:   make([]solidTriangle, len(triangles)),
		pseudoEdgeN: make(map[[2]int]r3.Vec),
	}
	suggested := math.Sqrt(minSide2) / 256
	if tol > math.Sqrt(maxSide2)/2 {
		return nil, fmt.Errorf("vertex tolerance too large, suggested tolerance: %g", suggested)
	}
	if tol == 0 {
		tol = suggested
	}
	size := r3.Sub(bb.Max, bb.Min)
	div := int64(d3.Max(size)/tol + 1e-12)
	if div <= 0 {
		return nil, errors.New("vertex tolerance larger than model size")
	}
	if div > math.MaxInt64/2 {
		return nil, errors.New("vertex tolerance too small, overflowed int64")
	}
	// vertex index cache in resolution-space.
	cache := make(map[[3]int64]int)
	ri := 1 / tol
	for i, tri := range triangles {
		norm := tri.Normal()
		tform := planeTransform(tri)
		st := solidTriangle{
			N:    r3.Scale(2*math.Pi, norm),
			C:    tri.Centroid(),
			T:    tform,
			InvT: tform.Inv(),
			m:    m,
		}
		for j, vert := range tri {
			v := r3.Scale(ri, vert)
			vi := [3]int64{int64(v.X), int64(v.Y), int64(v.Z)}
			vertexIdx, ok := cache[vi]
			if !ok {
				vertexIdx = len(m.vertices)
				cache[vi] = vertexIdx
				m.vertices = append(m.vertices, pseudoVertex{V: vert})
			}
			// Weight the vertex pseudo normal by the opening angle.
			s1, s2 := r3.Sub(vert, tri[(j+1)%3]), r3.Sub(vert, tri[(j+2)%3])
			alpha := math.Acos(r3.Cos(s1, s2))
			m.vertices[vertexIdx].N = r3.Add(m.vertices[vertexIdx].N, r3.Scale(alpha, norm))
			st.Vertices[j] = vertexIdx
		}
		m.triangles[i] = st
		for j := range st.Vertices {
			edge := [2]int{st.Vertices[j], st.Vertices[(j+1)%3]}
			if edge[0] > edge[1] {
				edge[0], edge[1] = edge[1], edge[0]
			}
			m.pseudoEdgeN[edge] = r3.Add(m.pseudoEdgeN[edge], r3.Scale(math.Pi, norm))
		}
	}
	return m, nil
}

// Index returns the ith element of the list of points.
func (m *solidMesh) Index(i int) kdtree.Comparable { return &m.triangles[i] }

// Len returns the length of the list.
func (m *solidMesh) Len() int { return len(m.triangles) }

// Pivot partitions the list based on the dimension specified.
func (m *solidMesh) Pivot(d kdtree.Dim) int {
	p := kdPlane{dim: int(d), triangles: m.triangles}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// Slice returns a slice of the list using zero-based half
// open indexing equivalent to built-in slice indexing.
func (m *solidMesh) Slice(start, end int) kdtree.Interface {
	sliced := *m
	sliced.triangles = sliced.triangles[start:end]
	return &sliced
}

// Bounds implements the kdtree.Bounder interface over the current
// triangle centroids, which kdtree.New may reorder.
func (m *solidMesh) Bounds() *kdtree.Bounding {
	min := solidTriangle{C: d3.Elem(math.MaxFloat64)}
	max := solidTriangle{C: d3.Elem(-math.MaxFloat64)}
	for _, t := range m.triangles {
		min.C = d3.MinElem(min.C, t.C)
		max.C = d3.MaxElem(max.C, t.C)
	}
	return &kdtree.Bounding{Min: &min, Max: &max}
}

type kdPlane struct {
	dim       int
	triangles []solidTriangle
}

func (p kdPlane) Less(i, j int) bool {
	return p.triangles[i].Compare(&p.triangles[j], kdtree.Dim(p.dim)) < 0
}

func (p kdPlane) Swap(i, j int) {
	p.triangles[i], p.triangles[j] = p.triangles[j], p.triangles[i]
}

func (p kdPlane) Len() int { return len(p.triangles) }

func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	p.triangles = p.triangles[start:end]
	return p
}
