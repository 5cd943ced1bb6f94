package sign

import (
	"strings"
	"testing"
)

func TestFitLayoutShortLabel(t *testing.T) {
	c := DefaultConfig()
	p := Plate{Label: "OSLO", DistanceValue: "214", DistanceUnits: "mi", Bearing: 90, ID: ID(2), Arrowed: true}
	l := FitLayout(c, p, nil)
	if l.Overflow {
		t.Error("short label flagged as overflow")
	}
	if l.Font < c.MinFontSize || l.Font > c.MaxFontSize {
		t.Errorf("font %g outside [%g,%g]", l.Font, c.MinFontSize, c.MaxFontSize)
	}
	if l.Length < MinPlateLength || l.Length > c.MaxSignLength {
		t.Errorf("length %g outside [%g,%g]", l.Length, MinPlateLength, c.MaxSignLength)
	}
	if l.PointLeft {
		t.Error("bearing 90 should point right")
	}
	if !l.HasDistance {
		t.Error("distance text lost")
	}
}

func TestFitLayoutTinyLabelHitsLengthFloor(t *testing.T) {
	c := DefaultConfig()
	p := Plate{Label: "A", Bearing: 90, ID: ID(2), Arrowed: true}
	l := FitLayout(c, p, nil)
	if l.Length != MinPlateLength {
		t.Errorf("length %g, want floor %g", l.Length, MinPlateLength)
	}
	if l.HasDistance {
		t.Error("plate without distance text reports HasDistance")
	}
}

func TestFitLayoutLongLabelOverflows(t *testing.T) {
	c := DefaultConfig()
	p := Plate{
		Label:         strings.Repeat("LLANFAIR", 6),
		DistanceValue: "12,345",
		DistanceUnits: "km",
		Bearing:       45,
		ID:            ID(3),
		Arrowed:       true,
	}
	l := FitLayout(c, p, nil)
	if !l.Overflow {
		t.Fatal("48 character label did not overflow")
	}
	if l.Length != c.MaxSignLength {
		t.Errorf("overflowing plate length %g, want max %g", l.Length, c.MaxSignLength)
	}
	if l.Font > minMainFont+1e-9 || l.DistanceFont > minDistanceFont+1e-9 {
		t.Errorf("fonts %g/%g not at floors %g/%g", l.Font, l.DistanceFont, minMainFont, minDistanceFont)
	}
}

func TestFitLayoutPointLeft(t *testing.T) {
	c := DefaultConfig()
	l := FitLayout(c, Plate{Label: "WEST", DistanceValue: "50", DistanceUnits: "mi", Bearing: 200, ID: ID(4), Arrowed: true}, nil)
	if !l.PointLeft {
		t.Fatal("bearing 200 should point left")
	}
	if l.AttachPad != attachPadding+leftAttachExtra {
		t.Errorf("left attach pad %g, want %g", l.AttachPad, attachPadding+leftAttachExtra)
	}
	// Label hugs the attachment (right) end, distance block the point.
	if l.LabelX() <= l.DistanceX() {
		t.Errorf("left-pointing label x %g not beyond distance x %g", l.LabelX(), l.DistanceX())
	}
}

func TestFitLayoutHomePlateIsRectangular(t *testing.T) {
	c := DefaultConfig()
	l := FitLayout(c, Plate{Label: "HOME", Bearing: 180, ID: ID(1)}, nil)
	if l.PointLength != 0 {
		t.Errorf("non-arrowed plate has point length %g", l.PointLength)
	}
	if l.PointLeft {
		t.Error("non-arrowed plate points left")
	}
	if l.Body != l.Length {
		t.Errorf("body %g != length %g for rectangular plate", l.Body, l.Length)
	}
}

func TestFitLayoutGapShrinksWithLongNames(t *testing.T) {
	c := DefaultConfig()
	short := FitLayout(c, Plate{Label: "RIO", DistanceValue: "100", DistanceUnits: "mi", Bearing: 90, ID: ID(2), Arrowed: true}, nil)
	long := FitLayout(c, Plate{Label: "CONSTANTINOPLE", DistanceValue: "100", DistanceUnits: "mi", Bearing: 90, ID: ID(2), Arrowed: true}, nil)
	if long.Gap >= short.Gap {
		t.Errorf("gap did not shrink: short %g, long %g", short.Gap, long.Gap)
	}
	if long.Gap < minTextGap {
		t.Errorf("gap %g below floor %g", long.Gap, minTextGap)
	}
}
