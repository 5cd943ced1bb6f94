package sign

import (
	"math"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Width estimation constants. Rendered string width is approximated as
// characterCount * fontSize * widthFactor for uppercase text; layout
// results depend on these exact values, not on real glyph metrics.
const (
	nameWidthFactor     = 0.65
	distanceWidthFactor = 0.60
	distanceWidthMargin = 2.0

	attachPadding   = 10.0
	leftAttachExtra = 4.0
	tipPadding      = 3.0

	baseTextGap = 16.0
	minTextGap  = 10.0
	gapShrink   = 1.2 // per label character beyond six

	minMainFont     = 12.0
	minDistanceFont = 5.0
	fontStep        = 0.5

	// MinPlateLength is the hard floor on plate length, kept even when
	// text overflows.
	MinPlateLength = 60.0
)

// Layout is the committed result of the plate fitting algorithm.
type Layout struct {
	Font         float64 // main label font size
	DistanceFont float64
	UnitsFont    float64

	Length      float64 // overall plate length
	Body        float64 // length minus the pointed tip
	Height      float64
	PointLength float64
	PointLeft   bool

	NameWidth     float64
	DistanceWidth float64
	Gap           float64
	AttachPad     float64

	HasDistance bool
	// Overflow marks layouts where both fonts hit their floors and the
	// text still exceeds the body length. Soft failure: the plate is
	// produced anyway.
	Overflow bool
}

// FitLayout sizes the fonts and plate length for a plate spec. The
// algorithm is deterministic: grow nothing, shrink the plate when text
// leaves slack, shrink fonts in half-unit steps when text overflows.
func FitLayout(cfg Config, p Plate, log *zap.Logger) Layout {
	if log == nil {
		log = zap.NewNop()
	}
	height := cfg.plateHeight()
	pointLength := 0.0
	if p.Arrowed {
		pointLength = height * 0.5
	}
	pointLeft := p.PointsLeft()

	font := math.Min(cfg.MaxFontSize, height*0.8)
	distFont := math.Min(cfg.MaxFontSize*0.5, height*0.38)
	distFont = math.Min(distFont, font*0.65)
	distFont = math.Max(minDistanceFont, distFont)
	unitsFont := math.Max(minDistanceFont, distFont*0.85)

	hasDistance := p.DistanceValue != ""
	nameLen := utf8.RuneCountInString(p.Label)
	valueLen := utf8.RuneCountInString(p.DistanceValue)
	unitsLen := utf8.RuneCountInString(p.DistanceUnits)

	nameWidth := float64(nameLen) * font * nameWidthFactor
	distWidth := func() float64 {
		if !hasDistance {
			return 0
		}
		valueWidth := float64(valueLen) * distFont * distanceWidthFactor
		unitsWidth := float64(unitsLen) * unitsFont * distanceWidthFactor
		return math.Max(valueWidth, unitsWidth) + distanceWidthMargin
	}
	distanceWidth := distWidth()

	attachPad := attachPadding
	if pointLeft {
		attachPad += leftAttachExtra
	}
	gap := math.Max(minTextGap, baseTextGap-math.Max(0, float64(nameLen-6))*gapShrink)
	effectiveGap := 0.0
	if hasDistance {
		effectiveGap = gap
	}

	length := cfg.MaxSignLength
	body := length - pointLength
	required := func() float64 {
		return attachPad + nameWidth + effectiveGap + distanceWidth + tipPadding
	}

	overflow := false
	req := required()
	if req < body {
		if optimal := req + pointLength; optimal < length {
			length = math.Max(MinPlateLength, optimal)
			body = length - pointLength
			log.Debug("reduced plate length to fit text",
				zap.String("label", p.Label), zap.Float64("length", length))
		}
	} else if req > body {
		for req > body && (font > minMainFont || distFont > minDistanceFont) {
			if font > minMainFont {
				font = math.Max(minMainFont, font-fontStep)
			} else {
				distFont = math.Max(minDistanceFont, distFont-fontStep)
				unitsFont = math.Max(minDistanceFont, distFont*0.85)
			}
			distFont = math.Min(distFont, font*0.65)
			unitsFont = math.Max(minDistanceFont, distFont*0.85)
			nameWidth = float64(nameLen) * font * nameWidthFactor
			distanceWidth = distWidth()
			req = required()
		}
		if req > body {
			overflow = true
			log.Warn("text may overlap, fonts at minimum size",
				zap.String("label", p.Label),
				zap.Float64("required", req), zap.Float64("body", body))
		}
	}

	distFont = math.Min(distFont, font*0.65)
	unitsFont = math.Max(minDistanceFont, distFont*0.85)
	distanceWidth = distWidth()
	nameWidth = float64(nameLen) * font * nameWidthFactor

	font = math.Max(cfg.MinFontSize, math.Min(font, cfg.MaxFontSize))
	if length < MinPlateLength {
		length = MinPlateLength
	}
	body = length - pointLength

	// Shrink once more if the font adjustments freed space.
	if req = required(); req < body {
		length = math.Max(MinPlateLength, req+pointLength)
		body = length - pointLength
	}

	return Layout{
		Font:          font,
		DistanceFont:  distFont,
		UnitsFont:     unitsFont,
		Length:        length,
		Body:          body,
		Height:        height,
		PointLength:   pointLength,
		PointLeft:     pointLeft,
		NameWidth:     nameWidth,
		DistanceWidth: distanceWidth,
		Gap:           gap,
		AttachPad:     attachPad,
		HasDistance:   hasDistance,
		Overflow:      overflow,
	}
}

// LabelX is the pen X of the main label: near the attachment end.
func (l Layout) LabelX() float64 {
	if l.PointLeft {
		return l.Length - l.AttachPad - l.NameWidth
	}
	return l.AttachPad
}

// LabelY is the baseline Y of the main label, vertically centered with
// a baseline correction.
func (l Layout) LabelY() float64 {
	return l.Height/2 - l.Font/2.8
}

// DistanceX is the pen X of the distance block: near the pointed end.
func (l Layout) DistanceX() float64 {
	if l.PointLeft {
		return l.PointLength + tipPadding
	}
	return l.Body - tipPadding - l.DistanceWidth
}

// DistanceY is the baseline Y of the distance value row.
func (l Layout) DistanceY() float64 {
	rowOffset := l.DistanceFont * 0.8
	return l.Height/2 + rowOffset/2 - l.DistanceFont/2.8
}

// UnitsPos returns the baseline position of the units row, centered
// under the distance value.
func (l Layout) UnitsPos(valueLen, unitsLen int) (x, y float64) {
	valueWidth := float64(valueLen) * l.DistanceFont * distanceWidthFactor
	unitsWidth := float64(unitsLen) * l.UnitsFont * distanceWidthFactor
	x = l.DistanceX() + (valueWidth-unitsWidth)/2
	rowOffset := l.DistanceFont * 0.8
	y = l.Height/2 - rowOffset/2 - l.UnitsFont/2.8 - l.DistanceFont*0.2
	return x, y
}
