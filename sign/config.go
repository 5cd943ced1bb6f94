// Package sign generates the printable solids of a direction sign
// post: segmented post pieces with carved mounting flats, binary
// keying pins, and dart-shaped sign plates with fitted text.
package sign

// MaxPostHeight caps a single printable piece. Taller slot lists are
// split across pieces by the planner.
const MaxPostHeight = 180.0

// booleanOverlap is the embedment used so unioned features always
// intersect their host solid.
const booleanOverlap = 0.1

// Config carries every dimensional constant of the generator, in
// millimeters unless noted. The value is immutable once handed to
// NewGenerator.
type Config struct {
	PostHeight float64 `yaml:"post_height"`
	PostRadius float64 `yaml:"post_radius"`
	BaseRadius float64 `yaml:"base_radius"`
	BaseHeight float64 `yaml:"base_height"`

	SignThickness float64 `yaml:"sign_thickness"`
	FlatDepth     float64 `yaml:"flat_depth"`
	FlatHeight    float64 `yaml:"flat_height"`

	ArrowLength float64 `yaml:"arrow_length"`

	VerticalSpacing float64 `yaml:"sign_vertical_spacing"`
	SignClearance   float64 `yaml:"sign_clearance"`
	MaxSignLength   float64 `yaml:"max_sign_length"`

	MinFontSize    float64 `yaml:"min_font_size"`
	MaxFontSize    float64 `yaml:"max_font_size"`
	TextHeight     float64 `yaml:"text_height"`
	TextRampHeight float64 `yaml:"text_ramp_height"`
	TextRampScale  float64 `yaml:"text_ramp_scale"`

	BaseTextFontSize     float64 `yaml:"base_text_font_size"`
	BaseTextHeight       float64 `yaml:"base_text_height"`
	BaseTextGap          float64 `yaml:"base_text_gap"`
	BaseTextRadiusFactor float64 `yaml:"base_text_radius_factor"`
	BaseTextRotation     float64 `yaml:"base_text_rotation_deg"`
	BaseSegments         int     `yaml:"base_segments"`
	BaseChamfer          float64 `yaml:"base_chamfer"`

	IndexPinRadius    float64 `yaml:"index_pin_radius"`
	IndexPinLength    float64 `yaml:"index_pin_length"`
	IndexPinClearance float64 `yaml:"index_pin_clearance"`

	IDPinRadius    float64 `yaml:"id_pin_radius"`
	IDPinLength    float64 `yaml:"id_pin_length"`
	IDPinSpacing   float64 `yaml:"id_pin_spacing"`
	IDPinClearance float64 `yaml:"id_pin_clearance"`

	MagnetDiameter  float64 `yaml:"magnet_diameter"`
	MagnetThickness float64 `yaml:"magnet_thickness"`
	MagnetClearance float64 `yaml:"magnet_clearance"`
	PegClearance    float64 `yaml:"peg_clearance"`

	JoinPinRadius    float64 `yaml:"join_pin_radius"`
	JoinPinLength    float64 `yaml:"join_pin_length"`
	JoinPinClearance float64 `yaml:"join_pin_clearance"`

	// PegJoint selects the keyed peg/socket with magnet pockets
	// between stacked pieces instead of plain join pins.
	PegJoint bool `yaml:"peg_joint"`

	// EngravingLines are carved mirrored into the base bottom.
	// Empty disables the engraving.
	EngravingLines []string `yaml:"engraving_lines"`
}

// DefaultConfig returns the stock dimensions: a 180mm post on a 50mm
// base with 28mm flats.
func DefaultConfig() Config {
	return Config{
		PostHeight: 180,
		PostRadius: 10,
		BaseRadius: 50,
		BaseHeight: 10,

		SignThickness: 3,
		FlatDepth:     3,
		FlatHeight:    28,

		ArrowLength: 15,

		VerticalSpacing: 8,
		SignClearance:   0.5,
		MaxSignLength:   200,

		MinFontSize:    10,
		MaxFontSize:    20,
		TextHeight:     1,
		TextRampHeight: 0.4,
		TextRampScale:  1.15,

		BaseTextFontSize:     4.5,
		BaseTextHeight:       0.5,
		BaseTextGap:          2,
		BaseTextRadiusFactor: 0.7,
		BaseTextRotation:     90,
		BaseSegments:         128,
		BaseChamfer:          2,

		IndexPinRadius:    1,
		IndexPinLength:    2,
		IndexPinClearance: 0.2,

		IDPinRadius:    0.7,
		IDPinLength:    1.5,
		IDPinSpacing:   3,
		IDPinClearance: 0.2,

		MagnetDiameter:  6,
		MagnetThickness: 2,
		MagnetClearance: 0.2,
		PegClearance:    0.1,

		JoinPinRadius:    1.2,
		JoinPinLength:    4,
		JoinPinClearance: 0.2,
	}
}

// segmentPitch is the vertical distance between adjacent slot centers.
func (c Config) segmentPitch() float64 {
	return c.FlatHeight + c.VerticalSpacing
}

// plateHeight is the sign plate height that fits inside a flat with
// clearance on both edges.
func (c Config) plateHeight() float64 {
	return c.FlatHeight - 2*c.SignClearance
}
