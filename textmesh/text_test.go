package textmesh

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestContoursRejectsTinyText(t *testing.T) {
	r := NewRenderer(&FileProvider{Path: "testdata/absent.ttf"}, nil)
	// The size floor is checked before the font is ever loaded.
	if _, err := r.Contours("OSLO", MinimumSize-0.1); err == nil {
		t.Error("sub-minimum size accepted")
	}
	if _, err := r.Solid("OSLO", MinimumSize-0.1, 1); err == nil {
		t.Error("sub-minimum size accepted by Solid")
	}
}

func TestFileProviderMissingFont(t *testing.T) {
	p := &FileProvider{Path: "testdata/absent.ttf"}
	if _, err := p.Font(); err == nil {
		t.Error("missing font file loaded")
	}
	// The result is cached: same error on repeat.
	_, err1 := p.Font()
	_, err2 := p.Font()
	if err1 != err2 {
		t.Error("provider did not cache its result")
	}
}

func TestSystemProviderNoUsableFont(t *testing.T) {
	p := &SystemProvider{Names: []string{"definitely-not-a-font-53a7.ttf"}}
	if _, err := p.Font(); err == nil {
		t.Error("nonexistent font name resolved")
	}
}

func TestNewRendererNilProviderPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("nil provider accepted")
		}
	}()
	NewRenderer(nil, nil)
}

func TestQuadPointsEndsOnCurve(t *testing.T) {
	p0 := r2.Vec{}
	ctrl := r2.Vec{X: 1, Y: 2}
	p1 := r2.Vec{X: 2}
	pts := quadPoints(p0, ctrl, p1)
	if len(pts) != quadSteps {
		t.Fatalf("got %d points, want %d", len(pts), quadSteps)
	}
	if pts[len(pts)-1] != p1 {
		t.Errorf("flattened curve ends at %+v, want %+v", pts[len(pts)-1], p1)
	}
	// The curve stays inside the control triangle's bounding box.
	for _, p := range pts {
		if p.X < 0 || p.X > 2 || p.Y < 0 || p.Y > 2 {
			t.Errorf("point %+v escapes control hull box", p)
		}
	}
}
