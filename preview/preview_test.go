package preview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fernwerk/waypost/form"
	"github.com/fernwerk/waypost/mesh"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/cmpimg"
)

// imgDelta a normalized parameter to describe how close the matching
// should be performed (imgDelta=0: perfect match, imgDelta=1, loose match)
const imgDelta = 0

func TestRenderSTLDeterministic(t *testing.T) {
	dir := t.TempDir()
	stl := filepath.Join(dir, "box.stl")
	m := form.Box(r3.Vec{X: 2, Y: 1, Z: 1})
	if err := mesh.WriteSTLFile(stl, m); err != nil {
		t.Fatal(err)
	}

	png1 := filepath.Join(dir, "a.png")
	png2 := filepath.Join(dir, "b.png")
	for _, out := range []string{png1, png2} {
		if err := RenderSTL(stl, out, DefaultView()); err != nil {
			t.Fatal(err)
		}
	}

	b1, err := os.ReadFile(png1)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := os.ReadFile(png2)
	if err != nil {
		t.Fatal(err)
	}
	equal, err := cmpimg.EqualApprox("png", b1, b2, imgDelta)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		t.Error("two renders of the same solid differ")
	}
}

func TestRenderSTLMissingFile(t *testing.T) {
	err := RenderSTL(filepath.Join(t.TempDir(), "absent.stl"), "out.png", DefaultView())
	if err == nil {
		t.Error("missing STL rendered without error")
	}
}
