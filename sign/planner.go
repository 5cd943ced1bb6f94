package sign

import "math"

// Plan is the partition of a slot list across printable post pieces,
// ordered top to bottom. The bottom piece carries the base; every
// piece except the bottom receives join holes, every piece except the
// top exposes join pins.
type Plan struct {
	Pieces       []Piece
	SegmentPitch float64
}

// Capacity returns how many slots a piece of the given height holds:
// a half gap above the topmost flat, a half gap below the bottommost,
// one pitch interval per additional slot. Never less than one.
func Capacity(c Config, pieceHeight float64) int {
	usable := pieceHeight - c.VerticalSpacing - c.FlatHeight
	if usable <= 0 {
		return 1
	}
	n := int(math.Floor(usable/c.segmentPitch())) + 1
	if n < 1 {
		return 1
	}
	return n
}

// SlotCenters returns the vertical flat centers for count slots on a
// piece, top down: the topmost sits a half gap plus half a flat below
// the top, each next one pitch lower.
func SlotCenters(c Config, pieceHeight float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	top := pieceHeight - c.VerticalSpacing/2 - c.FlatHeight/2
	centers := make([]float64, count)
	for i := range centers {
		centers[i] = top - float64(i)*c.segmentPitch()
	}
	return centers
}

// PlanPieces partitions slots greedily from the top of the list into
// pieces of the configured post height. Deterministic: equal inputs
// produce equal plans. At least two pieces are always planned so the
// base piece exists even when every slot fits on one.
func PlanPieces(c Config, slots []Slot) Plan {
	pieceHeight := math.Max(math.Min(c.PostHeight, MaxPostHeight), c.segmentPitch())
	capacity := Capacity(c, pieceHeight)

	var chunks [][]Slot
	rest := slots
	for len(rest) > 0 {
		n := capacity
		if n > len(rest) {
			n = len(rest)
		}
		chunks = append(chunks, rest[:n:n])
		rest = rest[n:]
	}
	for len(chunks) < 2 {
		chunks = append(chunks, nil)
	}

	pieces := make([]Piece, len(chunks))
	for i, chunk := range chunks {
		pieces[i] = Piece{
			Height:    pieceHeight,
			Slots:     chunk,
			Centers:   SlotCenters(c, pieceHeight, len(chunk)),
			Base:      i == len(chunks)-1,
			JoinPins:  i != 0,
			JoinHoles: i != len(chunks)-1,
		}
	}
	return Plan{Pieces: pieces, SegmentPitch: c.segmentPitch()}
}
