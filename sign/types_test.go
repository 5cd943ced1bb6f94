package sign

import "testing"

func TestSegmentIDKeyable(t *testing.T) {
	for _, test := range []struct {
		id   SegmentID
		want bool
	}{
		{ID(1), true},
		{ID(15), true},
		{ID(0), false},
		{ID(-2), false},
		{ID(16), false},
		{SegmentID{}, false},
	} {
		if got := test.id.Keyable(); got != test.want {
			t.Errorf("Keyable(%+v) = %v, want %v", test.id, got, test.want)
		}
	}
}

func TestSplitDistance(t *testing.T) {
	for _, test := range []struct {
		in          string
		value, unit string
	}{
		{"214 mi", "214", "mi"},
		{"9.7 km", "9.7", "km"},
		{"842", "842", ""},
		{"", "", ""},
		{"1,034 km (643 mi)", "1,034 km (643", "mi)"},
	} {
		value, unit := SplitDistance(test.in)
		if value != test.value || unit != test.unit {
			t.Errorf("SplitDistance(%q) = %q, %q; want %q, %q",
				test.in, value, unit, test.value, test.unit)
		}
	}
}

func TestFoldBearing(t *testing.T) {
	for _, test := range []struct {
		in, want float64
	}{
		{200, 20},
		{90, 90},
		{180, 180},
		{359, 179},
		{0, 0},
	} {
		if got := FoldBearing(test.in); got != test.want {
			t.Errorf("FoldBearing(%g) = %g, want %g", test.in, got, test.want)
		}
	}
}

func TestPointsLeft(t *testing.T) {
	for _, test := range []struct {
		bearing float64
		arrowed bool
		want    bool
	}{
		{200, true, true},
		{90, true, false},
		{180, true, false},
		{200, false, false},
	} {
		p := Plate{Bearing: test.bearing, Arrowed: test.arrowed}
		if got := p.PointsLeft(); got != test.want {
			t.Errorf("PointsLeft(bearing=%g, arrowed=%v) = %v, want %v",
				test.bearing, test.arrowed, got, test.want)
		}
	}
}
