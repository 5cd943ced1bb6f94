package sign

import (
	"math"
	"reflect"
	"testing"
)

func TestCapacity(t *testing.T) {
	c := DefaultConfig() // 28mm flats, 8mm gaps: 36mm pitch
	for _, test := range []struct {
		height float64
		want   int
	}{
		{180, 5},
		{144, 4},
		{36, 1},
		{10, 1},
		{72, 2},
	} {
		if got := Capacity(c, test.height); got != test.want {
			t.Errorf("Capacity(%g) = %d, want %d", test.height, got, test.want)
		}
	}
}

func TestSlotCenters(t *testing.T) {
	c := DefaultConfig()
	got := SlotCenters(c, 180, 3)
	want := []float64{162, 126, 90}
	if len(got) != len(want) {
		t.Fatalf("got %d centers, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("center %d = %g, want %g", i, got[i], want[i])
		}
	}
	if SlotCenters(c, 180, 0) != nil {
		t.Error("zero slots should have no centers")
	}
}

func slotList(n int) []Slot {
	slots := make([]Slot, n)
	for i := range slots {
		slots[i] = Slot{Bearing: float64(i * 30), ID: ID(i + 1)}
	}
	return slots
}

func TestPlanPiecesSplitsOverflow(t *testing.T) {
	c := DefaultConfig() // capacity 5 at full height
	plan := PlanPieces(c, slotList(7))
	if len(plan.Pieces) != 2 {
		t.Fatalf("got %d pieces, want 2", len(plan.Pieces))
	}
	if n := len(plan.Pieces[0].Slots); n != 5 {
		t.Errorf("top piece holds %d slots, want 5", n)
	}
	if n := len(plan.Pieces[1].Slots); n != 2 {
		t.Errorf("bottom piece holds %d slots, want 2", n)
	}
}

func TestPlanPiecesRoles(t *testing.T) {
	c := DefaultConfig()
	plan := PlanPieces(c, slotList(12)) // 5+5+2
	if len(plan.Pieces) != 3 {
		t.Fatalf("got %d pieces, want 3", len(plan.Pieces))
	}
	top, mid, bottom := plan.Pieces[0], plan.Pieces[1], plan.Pieces[2]
	if top.JoinPins || !top.JoinHoles || top.Base {
		t.Errorf("top piece roles wrong: %+v", top)
	}
	if !mid.JoinPins || !mid.JoinHoles || mid.Base {
		t.Errorf("middle piece roles wrong: %+v", mid)
	}
	if !bottom.JoinPins || bottom.JoinHoles || !bottom.Base {
		t.Errorf("bottom piece roles wrong: %+v", bottom)
	}
}

func TestPlanPiecesAlwaysHasBasePiece(t *testing.T) {
	c := DefaultConfig()
	plan := PlanPieces(c, slotList(2))
	if len(plan.Pieces) != 2 {
		t.Fatalf("got %d pieces, want 2", len(plan.Pieces))
	}
	bottom := plan.Pieces[1]
	if !bottom.Base {
		t.Error("bottom piece does not carry the base")
	}
	if len(bottom.Slots) != 0 {
		t.Errorf("padding piece holds %d slots, want 0", len(bottom.Slots))
	}
}

func TestPlanPiecesDeterministic(t *testing.T) {
	c := DefaultConfig()
	slots := slotList(9)
	a := PlanPieces(c, slots)
	b := PlanPieces(c, slots)
	if !reflect.DeepEqual(a, b) {
		t.Error("equal inputs produced different plans")
	}
}

func TestPlanPiecesCapsPieceHeight(t *testing.T) {
	c := DefaultConfig()
	c.PostHeight = 500
	plan := PlanPieces(c, slotList(3))
	for i, p := range plan.Pieces {
		if p.Height > MaxPostHeight {
			t.Errorf("piece %d height %g exceeds cap %g", i, p.Height, MaxPostHeight)
		}
	}
}
