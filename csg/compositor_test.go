package csg

import (
	"errors"
	"testing"

	"github.com/fernwerk/waypost/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

func tetrahedron() mesh.Mesh {
	return mesh.New(
		[]r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}},
		[][3]int{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}},
	)
}

func TestUnionWithoutEngineConcatenates(t *testing.T) {
	c := NewCompositor(nil, nil)
	a, b, d := tetrahedron(), tetrahedron().Translated(r3.Vec{X: 3}), tetrahedron().Translated(r3.Vec{X: 6})
	got := c.Union(a, b, d)
	if want := a.NumFaces() + b.NumFaces() + d.NumFaces(); got.NumFaces() != want {
		t.Errorf("degraded union has %d faces, want sum %d", got.NumFaces(), want)
	}
}

func TestUnionDropsEmptyInputs(t *testing.T) {
	c := NewCompositor(nil, nil)
	a := tetrahedron()
	got := c.Union(a, mesh.Mesh{})
	if got.NumFaces() != a.NumFaces() {
		t.Errorf("got %d faces, want %d", got.NumFaces(), a.NumFaces())
	}
}

func TestUnionSingleSolidClones(t *testing.T) {
	c := NewCompositor(nil, nil)
	a := tetrahedron()
	got := c.Union(a)
	got.Vertices[0] = r3.Vec{X: 99}
	if a.Vertices[0].X == 99 {
		t.Error("union result aliases its input")
	}
}

func TestUnionOfNothingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("union of no solids did not panic")
		}
	}()
	NewCompositor(nil, nil).Union()
}

func TestDifferenceWithoutEngine(t *testing.T) {
	c := NewCompositor(nil, nil)
	_, err := c.Difference(tetrahedron(), tetrahedron())
	if !errors.Is(err, ErrNoEngine) {
		t.Errorf("got %v, want ErrNoEngine", err)
	}
}

func TestDifferenceEmptyBase(t *testing.T) {
	c := NewCompositor(nil, nil)
	if _, err := c.Difference(mesh.Mesh{}, tetrahedron()); !errors.Is(err, ErrEmptyResult) {
		t.Errorf("got %v, want ErrEmptyResult", err)
	}
}

func TestDifferenceEmptyToolReturnsBase(t *testing.T) {
	c := NewCompositor(nil, nil)
	base := tetrahedron()
	got, err := c.Difference(base, mesh.Mesh{})
	if err != nil {
		t.Fatal(err)
	}
	if got.NumFaces() != base.NumFaces() {
		t.Errorf("got %d faces, want %d", got.NumFaces(), base.NumFaces())
	}
}

// failEngine always reports failure, driving the fallback paths.
type failEngine struct{}

func (failEngine) Union(bool, ...mesh.Mesh) (mesh.Mesh, error) {
	return mesh.Mesh{}, errors.New("boom")
}

func (failEngine) Difference(_, _ mesh.Mesh, _ bool) (mesh.Mesh, error) {
	return mesh.Mesh{}, errors.New("boom")
}

func TestUnionFallsBackToConcat(t *testing.T) {
	c := NewCompositor(failEngine{}, nil)
	a, b := tetrahedron(), tetrahedron().Translated(r3.Vec{X: 3})
	got := c.Union(a, b)
	if want := a.NumFaces() + b.NumFaces(); got.NumFaces() != want {
		t.Errorf("fallback union has %d faces, want %d", got.NumFaces(), want)
	}
}

func TestDifferencePropagatesEngineError(t *testing.T) {
	c := NewCompositor(failEngine{}, nil)
	if _, err := c.Difference(tetrahedron(), tetrahedron()); err == nil {
		t.Error("engine failure swallowed")
	}
}
