package csg

import (
	"math"

	"github.com/fernwerk/waypost/internal/d3"
	"github.com/fernwerk/waypost/mesh"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Spatial queries for the imported field: point-to-triangle distance in
// a transformed 2D frame and the sign rules for each triangle feature.

type solidTriangle struct {
	C           r3.Vec          // centroid
	lastFeature triangleFeature // result from last distance calculation
	lastClosest r3.Vec
	Vertices    [3]int
	m           *solidMesh   // to construct triangle geometry.
	N           r3.Vec       // pseudo face normal, scaled by 2*pi
	T           d3.Transform // maps the triangle onto the XY plane
	InvT        d3.Transform // inverse of T
}

func (t *solidTriangle) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(*solidTriangle)
	switch d {
	case 0:
		return t.C.X - q.C.X
	case 1:
		return t.C.Y - q.C.Y
	case 2:
		return t.C.Z - q.C.Z
	}
	panic("unreachable")
}

func (t *solidTriangle) Dims() int { return 3 }

func (t *solidTriangle) Distance(c kdtree.Comparable) float64 {
	point := c.(*solidTriangle)
	if t.isPoint() {
		if point.isPoint() {
			return r3.Norm2(r3.Sub(t.C, point.C))
		}
		point, t = t, point // make sure `t` is the triangle.
	}
	pxy := t.T.Transform(point.C)
	txy := t.triangle()
	for i := range txy {
		txy[i] = t.T.Transform(txy[i])
	}
	// Closest point on the flattened triangle in 2D, transformed back.
	onTriangle, feat := closestOnTriangle2(lowerVec(pxy), [3]r2.Vec{lowerVec(txy[0]), lowerVec(txy[1]), lowerVec(txy[2])})
	t.lastFeature = feat
	t.lastClosest = t.InvT.Transform(r3.Vec{X: onTriangle.X, Y: onTriangle.Y})
	return r3.Norm2(r3.Sub(point.C, t.lastClosest))
}

// CopySign returns a value with the magnitude of dist and the sign of
// the last Distance query: negative when p was inside the solid. The
// pseudo normal of the nearest feature decides the sign. p must be the
// same point passed to the last Distance call.
func (t *solidTriangle) CopySign(p r3.Vec, dist float64) (signed float64) {
	if t.lastFeature <= featureV2 {
		vertex := t.m.vertices[t.Vertices[t.lastFeature]]
		signed = r3.Dot(vertex.N, r3.Sub(p, vertex.V))
	} else if t.lastFeature <= featureE2 {
		vertex1 := t.lastFeature - featureE0
		edge := [2]int{t.Vertices[vertex1], t.Vertices[(vertex1+1)%3]}
		if edge[0] > edge[1] {
			edge[0], edge[1] = edge[1], edge[0]
		}
		signed = r3.Dot(t.m.pseudoEdgeN[edge], r3.Sub(p, t.lastClosest))
	} else {
		signed = r3.Dot(t.N, r3.Sub(p, t.lastClosest))
	}
	return math.Copysign(dist, signed)
}

func (t *solidTriangle) triangle() mesh.Triangle {
	return mesh.Triangle{
		t.m.vertices[t.Vertices[0]].V,
		t.m.vertices[t.Vertices[1]].V,
		t.m.vertices[t.Vertices[2]].V,
	}
}

func (t *solidTriangle) isPoint() bool {
	return t.N == (r3.Vec{}) // uninitialized fields.
}

// planeTransform returns a transformation for a triangle so that:
//   - the triangle's first edge (t_0,t_1) is on the X axis
//   - the triangle's first vertex t_0 is at the origin
//   - the triangle's last vertex t_2 is in the XY plane.
func planeTransform(t mesh.Triangle) d3.Transform {
	u2 := r3.Sub(t[1], t[0])
	u3 := r3.Sub(t[2], t[0])

	xc := r3.Unit(u2)
	yc := r3.Sub(u3, r3.Scale(r3.Dot(xc, u3), xc)) // t[2] with no X component
	yc = r3.Unit(yc)
	zc := r3.Cross(xc, yc)

	T := d3.NewTransform([]float64{
		xc.X, xc.Y, xc.Z, 0,
		yc.X, yc.Y, yc.Z, 0,
		zc.X, zc.Y, zc.Z, 0,
		0, 0, 0, 1,
	})
	t0T := T.Transform(t[0])
	return T.Translate(r3.Scale(-1, t0T))
}

func lowerVec(v r3.Vec) r2.Vec {
	return r2.Vec{X: v.X, Y: v.Y}
}

type triangleFeature int

const (
	featureV0 triangleFeature = iota
	featureV1
	featureV2
	featureE0
	featureE1
	featureE2
	featureFace
)

func closestOnTriangle2(p r2.Vec, tri [3]r2.Vec) (pointOnTriangle r2.Vec, feature triangleFeature) {
	if inTriangle(p, tri) {
		return p, featureFace
	}
	minDist := math.MaxFloat64
	for j := range tri {
		edge := [2]r2.Vec{tri[j], tri[(j+1)%3]}
		distance, gotFeat := distToLine(p, edge)
		d2 := r2.Norm2(distance)
		if d2 < minDist {
			if gotFeat < 2 {
				feature = triangleFeature(j+gotFeat) % 3
			} else {
				feature = featureE0 + triangleFeature(j)%3
			}
			minDist = d2
			pointOnTriangle = r2.Sub(p, distance)
		}
	}
	return pointOnTriangle, feature
}

// inTriangle returns true if pt is contained in the triangle tri.
func inTriangle(pt r2.Vec, tri [3]r2.Vec) bool {
	d1 := halfPlane(pt, tri[0], tri[1])
	d2 := halfPlane(pt, tri[1], tri[2])
	d3 := halfPlane(pt, tri[2], tri[0])
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func halfPlane(p1, p2, p3 r2.Vec) float64 {
	return (p1.X-p3.X)*(p2.Y-p3.Y) - (p2.X-p3.X)*(p1.Y-p3.Y)
}

// distToLine returns the distance vector from point to line segment.
// The integer is 0 if closest to the first vertex, 1 if closest to the
// second vertex and 2 if closest to the edge between them.
func distToLine(p r2.Vec, ln [2]r2.Vec) (r2.Vec, int) {
	lineDir := r2.Sub(ln[1], ln[0])
	perpendicular := r2.Vec{X: -lineDir.Y, Y: lineDir.X}
	perpend2 := r2.Add(ln[1], perpendicular)
	e2 := edgeEquation(p, [2]r2.Vec{ln[1], perpend2})
	if e2 > 0 {
		return r2.Sub(p, ln[1]), 0
	}
	perpend1 := r2.Add(ln[0], perpendicular)
	e1 := edgeEquation(p, [2]r2.Vec{ln[0], perpend1})
	if e1 < 0 {
		return r2.Sub(p, ln[0]), 1
	}
	e3 := distToLineInfinite(p, ln)
	return r2.Scale(-e3, r2.Unit(perpendicular)), 2
}

func distToLineInfinite(p r2.Vec, line [2]r2.Vec) float64 {
	p1 := line[0]
	p2 := line[1]
	num := math.Abs((p2.X-p1.X)*(p1.Y-p.Y) - (p1.X-p.X)*(p2.Y-p1.Y))
	return num / math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
}

// edgeEquation returns a signed distance of a point to an infinite line
// defined by two points.
func edgeEquation(p r2.Vec, line [2]r2.Vec) float64 {
	dxy := r2.Sub(line[1], line[0])
	return (p.X-line[0].X)*dxy.Y - (p.Y-line[0].Y)*dxy.X
}
