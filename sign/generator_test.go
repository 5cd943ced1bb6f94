package sign

import (
	"errors"
	"testing"

	"github.com/fernwerk/waypost/csg"
	"github.com/fernwerk/waypost/form"
	"github.com/fernwerk/waypost/mesh"
	"github.com/fernwerk/waypost/textmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// textSlab stands in for a rendered glyph solid: z in [0,1] like a
// text mesh placed at z=0.
func textSlab() mesh.Mesh {
	return form.Box(r3.Vec{X: 10, Y: 2, Z: 1}).Translated(r3.Vec{Z: 0.5})
}

func testRenderer() *textmesh.Renderer {
	// The provider is only consulted when text is actually rendered.
	return textmesh.NewRenderer(&textmesh.FileProvider{Path: "testdata/absent.ttf"}, nil)
}

func TestNewGeneratorRequiresEngine(t *testing.T) {
	if _, err := NewGenerator(DefaultConfig(), nil, testRenderer(), nil); err == nil {
		t.Fatal("nil engine accepted")
	}
}

func TestNewGeneratorRequiresRenderer(t *testing.T) {
	if _, err := NewGenerator(DefaultConfig(), &csg.SDFEngine{}, nil, nil); err == nil {
		t.Fatal("nil text renderer accepted")
	}
}

func TestNewGeneratorCapsPostHeight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PostHeight = 400
	g, err := NewGenerator(cfg, &csg.SDFEngine{}, testRenderer(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Config().PostHeight; got != MaxPostHeight {
		t.Errorf("post height %g, want capped to %g", got, MaxPostHeight)
	}
}

func TestPlateKeyingHoleRouting(t *testing.T) {
	g, err := NewGenerator(DefaultConfig(), &csg.SDFEngine{}, testRenderer(), nil)
	if err != nil {
		t.Fatal(err)
	}
	layout := FitLayout(g.Config(), Plate{Label: "X", Bearing: 90, Arrowed: true}, nil)

	holes, err := g.plateKeyingHoles(Plate{Label: "X", ID: ID(5)}, layout)
	if err != nil {
		t.Fatal(err)
	}
	if len(holes) != 2 {
		t.Errorf("id 5 produced %d cutters, want 2 set bits", len(holes))
	}

	// Over-range ids degrade to the single center hole.
	holes, err = g.plateKeyingHoles(Plate{Label: "X", ID: ID(20)}, layout)
	if err != nil {
		t.Fatal(err)
	}
	if len(holes) != 1 {
		t.Errorf("id 20 produced %d cutters, want 1 center hole", len(holes))
	}

	// Absent id also seats on the center hole.
	holes, err = g.plateKeyingHoles(Plate{Label: "X"}, layout)
	if err != nil || len(holes) != 1 {
		t.Errorf("absent id: %d cutters, %v; want 1 center hole", len(holes), err)
	}

	if _, err := g.plateKeyingHoles(Plate{Label: "X", ID: ID(0)}, layout); !errors.Is(err, ErrInvalidSegmentID) {
		t.Errorf("id 0: got %v, want ErrInvalidSegmentID", err)
	}
}

func TestApplyTextRampWidensBase(t *testing.T) {
	cfg := DefaultConfig()
	m := textSlab()
	ramped := applyTextRamp(cfg, m, 0)
	rb := ramped.Bounds()
	mb := m.Bounds()
	if rb.Max.X-rb.Min.X <= mb.Max.X-mb.Min.X {
		t.Error("ramp did not widen the text footprint")
	}
	if rb.Min.Z != mb.Min.Z || rb.Max.Z != mb.Max.Z {
		t.Error("ramp changed the text height")
	}
}

func TestApplyTextRampDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TextRampScale = 1
	m := textSlab()
	ramped := applyTextRamp(cfg, m, 0)
	if ramped.Bounds() != m.Bounds() {
		t.Error("disabled ramp changed the mesh")
	}
}
