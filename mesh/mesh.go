// Package mesh implements the triangulated solid passed between the
// primitive builders, the boolean compositor and the STL exporter.
// A Mesh is a value: transforms return a new Mesh and never alias the
// receiver's backing storage.
package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle is an ordered triple of vertices. Winding is counter-clockwise
// when viewed from outside the solid.
type Triangle [3]r3.Vec

// Normal returns the unit normal of the triangle plane following the
// right-hand rule on the vertex winding.
func (t Triangle) Normal() r3.Vec {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Area returns the triangle area.
func (t Triangle) Area() float64 {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	return 0.5 * r3.Norm(r3.Cross(e1, e2))
}

// Centroid returns the triangle barycenter.
func (t Triangle) Centroid() r3.Vec {
	return r3.Scale(1./3., r3.Add(t[0], r3.Add(t[1], t[2])))
}

// Mesh is an indexed triangle solid. Faces index into Vertices and wind
// counter-clockwise seen from outside.
type Mesh struct {
	Vertices []r3.Vec
	Faces    [][3]int
}

// New returns a mesh taking ownership of the argument slices.
func New(vertices []r3.Vec, faces [][3]int) Mesh {
	return Mesh{Vertices: vertices, Faces: faces}
}

// FromTriangles builds an indexed mesh from a triangle soup, welding
// vertices that coincide within tol. tol<=0 uses a default suited to
// millimeter-scale models.
func FromTriangles(triangles []Triangle, tol float64) Mesh {
	if tol <= 0 {
		tol = 1e-5
	}
	m := Mesh{
		Vertices: make([]r3.Vec, 0, len(triangles)),
		Faces:    make([][3]int, 0, len(triangles)),
	}
	// Integer grid cache in resolution-space chooses shared vertices,
	// same strategy the SDF importer uses.
	cache := make(map[[3]int64]int)
	ri := 1 / tol
	for _, tri := range triangles {
		var face [3]int
		for j, vert := range tri {
			v := r3.Scale(ri, vert)
			key := [3]int64{int64(math.Round(v.X)), int64(math.Round(v.Y)), int64(math.Round(v.Z))}
			idx, ok := cache[key]
			if !ok {
				idx = len(m.Vertices)
				cache[key] = idx
				m.Vertices = append(m.Vertices, vert)
			}
			face[j] = idx
		}
		if face[0] == face[1] || face[1] == face[2] || face[2] == face[0] {
			continue // welded to nothing
		}
		m.Faces = append(m.Faces, face)
	}
	return m
}

// IsEmpty reports whether the mesh has no faces. An empty mesh is the
// failure value of a boolean operation.
func (m Mesh) IsEmpty() bool { return len(m.Faces) == 0 }

// NumFaces returns the face count.
func (m Mesh) NumFaces() int { return len(m.Faces) }

// Clone returns a deep copy.
func (m Mesh) Clone() Mesh {
	c := Mesh{
		Vertices: make([]r3.Vec, len(m.Vertices)),
		Faces:    make([][3]int, len(m.Faces)),
	}
	copy(c.Vertices, m.Vertices)
	copy(c.Faces, m.Faces)
	return c
}

// Triangles expands the indexed faces into a triangle soup.
func (m Mesh) Triangles() []Triangle {
	ts := make([]Triangle, len(m.Faces))
	for i, f := range m.Faces {
		ts[i] = Triangle{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
	}
	return ts
}

// Bounds returns the axis-aligned bounding box of the mesh. The zero box
// is returned for a mesh with no vertices.
func (m Mesh) Bounds() r3.Box {
	if len(m.Vertices) == 0 {
		return r3.Box{}
	}
	bb := r3.Box{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		bb.Min = minElem(bb.Min, v)
		bb.Max = maxElem(bb.Max, v)
	}
	return bb
}

// MapVertices returns a copy of the mesh with f applied to every vertex.
// Faces and winding are preserved; f must be orientation preserving.
func (m Mesh) MapVertices(f func(r3.Vec) r3.Vec) Mesh {
	c := m.Clone()
	for i, v := range c.Vertices {
		c.Vertices[i] = f(v)
	}
	return c
}

// Translated returns the mesh translated by v.
func (m Mesh) Translated(v r3.Vec) Mesh {
	return m.MapVertices(func(p r3.Vec) r3.Vec { return r3.Add(p, v) })
}

// RotatedZ returns the mesh rotated by degrees around the vertical axis
// passing through center. Positive angles rotate counter-clockwise seen
// from +Z.
func (m Mesh) RotatedZ(degrees float64, center r3.Vec) Mesh {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return m.MapVertices(func(p r3.Vec) r3.Vec {
		x := p.X - center.X
		y := p.Y - center.Y
		return r3.Vec{
			X: center.X + x*cos - y*sin,
			Y: center.Y + x*sin + y*cos,
			Z: p.Z,
		}
	})
}

// RotatedX returns the mesh rotated by degrees around the X axis through
// the origin. Used to lay a +Z cylinder axis along +Y.
func (m Mesh) RotatedX(degrees float64) Mesh {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	return m.MapVertices(func(p r3.Vec) r3.Vec {
		return r3.Vec{
			X: p.X,
			Y: p.Y*cos - p.Z*sin,
			Z: p.Y*sin + p.Z*cos,
		}
	})
}

// MirroredX returns the mesh mirrored about the plane x=about. Face
// winding is flipped so normals keep pointing outward.
func (m Mesh) MirroredX(about float64) Mesh {
	c := m.MapVertices(func(p r3.Vec) r3.Vec {
		return r3.Vec{X: 2*about - p.X, Y: p.Y, Z: p.Z}
	})
	for i, f := range c.Faces {
		c.Faces[i] = [3]int{f[2], f[1], f[0]}
	}
	return c
}

// MirroredY returns the mesh mirrored about the plane y=about, with
// winding flipped like MirroredX.
func (m Mesh) MirroredY(about float64) Mesh {
	c := m.MapVertices(func(p r3.Vec) r3.Vec {
		return r3.Vec{X: p.X, Y: 2*about - p.Y, Z: p.Z}
	})
	for i, f := range c.Faces {
		c.Faces[i] = [3]int{f[2], f[1], f[0]}
	}
	return c
}

// ScaledAboutXY returns the mesh with X and Y scaled about (cx,cy) by a
// per-vertex factor of scale(z). Z coordinates are unchanged. Used for
// the text adhesion ramp.
func (m Mesh) ScaledAboutXY(cx, cy float64, scale func(z float64) float64) Mesh {
	return m.MapVertices(func(p r3.Vec) r3.Vec {
		s := scale(p.Z)
		return r3.Vec{
			X: cx + (p.X-cx)*s,
			Y: cy + (p.Y-cy)*s,
			Z: p.Z,
		}
	})
}

// Concat places all argument meshes into one mesh without merging
// overlapping volumes. It is the degraded non-boolean union: the result
// may contain separate shells and is not guaranteed watertight.
func Concat(ms ...Mesh) Mesh {
	var nv, nf int
	for _, m := range ms {
		nv += len(m.Vertices)
		nf += len(m.Faces)
	}
	out := Mesh{
		Vertices: make([]r3.Vec, 0, nv),
		Faces:    make([][3]int, 0, nf),
	}
	for _, m := range ms {
		off := len(out.Vertices)
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, f := range m.Faces {
			out.Faces = append(out.Faces, [3]int{f[0] + off, f[1] + off, f[2] + off})
		}
	}
	return out
}

func minElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

func maxElem(a, b r3.Vec) r3.Vec {
	return r3.Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}
