package sign

import (
	"fmt"
	"math"

	"github.com/fernwerk/waypost/form"
	"github.com/fernwerk/waypost/internal/geo"
	"github.com/fernwerk/waypost/mesh"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// Base platform decorations: the embossed N/E/S/W compass rose, ring
// and ticks, the home coordinates on the south side, and the mirrored
// engraving carved into the bottom.

const (
	engravingFontSize = 6.0
	engravingDepth    = 0.6

	compassRingHeight = 0.6
	tickHeight        = 0.6
	tickWidth         = 0.8
)

// northFontSize keeps the compass letters proportional to both the
// arrow length and the base radius.
func (c Config) northFontSize() float64 {
	return math.Min(c.ArrowLength*0.9, c.BaseRadius*0.3)
}

// assembleBase fuses the chamfered platform, its decorations and the
// already built bottom post piece into the ground-level solid.
func (g *Generator) assembleBase(post mesh.Mesh, home *geo.Point) (mesh.Mesh, error) {
	c := g.cfg
	base := form.ChamferedDisk(c.BaseRadius, c.BaseHeight, c.BaseChamfer, c.BaseSegments)

	if len(c.EngravingLines) > 0 {
		cutter, err := g.bottomEngraving(c.EngravingLines)
		if err != nil {
			g.log.Warn("bottom engraving skipped", zap.Error(err))
		} else if carved, err := g.comp.Difference(base, cutter); err != nil {
			g.log.Warn("bottom engraving carve failed", zap.Error(err))
		} else {
			base = carved
		}
	}

	parts := []mesh.Mesh{base}
	if north, err := g.northLetter(); err != nil {
		g.log.Warn("north letter skipped", zap.Error(err))
	} else {
		parts = append(parts, north)
	}
	parts = append(parts, g.compassDecorations()...)
	if home != nil {
		parts = append(parts, g.coordinatesText(*home)...)
	}
	parts = append(parts, post.Translated(r3.Vec{Z: c.BaseHeight}))
	return g.comp.Union(parts...), nil
}

// northLetter embosses "N" on the base top toward +Y (north).
func (g *Generator) northLetter() (mesh.Mesh, error) {
	c := g.cfg
	zBase := c.BaseHeight - booleanOverlap
	letter, err := g.textAt("N", c.northFontSize(), r3.Vec{Z: zBase}, true)
	if err != nil {
		return mesh.Mesh{}, err
	}
	letter = centeredXY(letter)
	bb := letter.Bounds()
	letterHeight := bb.Max.Y - bb.Min.Y

	// Keep the letter inside the compass ring.
	baseY := c.BaseRadius * 0.7
	if maxY := c.BaseRadius * 0.85; baseY+letterHeight > maxY {
		baseY = maxY - letterHeight
	}
	if baseY < 0 {
		baseY = 0
	}
	return letter.Translated(r3.Vec{Y: baseY}), nil
}

// compassDecorations returns the E/S/W letters, the ring, and the 36
// graduation ticks sitting on the base top.
func (g *Generator) compassDecorations() []mesh.Mesh {
	c := g.cfg
	zBase := c.BaseHeight - booleanOverlap
	var parts []mesh.Mesh

	otherFont := c.northFontSize() * 0.85
	letterRadius := c.BaseRadius * 0.7
	for _, d := range []struct {
		letter  string
		bearing float64
	}{
		{"E", 90},
		{"S", 180},
		{"W", 270},
	} {
		letter, err := g.textAt(d.letter, otherFont, r3.Vec{Z: zBase}, true)
		if err != nil {
			g.log.Warn("compass letter skipped", zap.String("letter", d.letter), zap.Error(err))
			continue
		}
		sin, cos := math.Sincos(d.bearing * math.Pi / 180)
		parts = append(parts, centeredXY(letter).Translated(r3.Vec{
			X: sin * letterRadius,
			Y: cos * letterRadius,
		}))
	}

	ring := form.Tube(c.BaseRadius*0.9, c.BaseRadius*0.85, compassRingHeight, c.BaseSegments).
		Translated(r3.Vec{Z: zBase + compassRingHeight/2})
	parts = append(parts, ring)

	tickRadius := c.BaseRadius * 0.92
	for deg := 0; deg < 360; deg += 10 {
		var tickLength float64
		switch {
		case deg%90 == 0:
			tickLength = 4
		case deg%45 == 0:
			tickLength = 3
		default:
			tickLength = 2
		}
		tick := form.Box(r3.Vec{X: tickWidth, Y: tickLength, Z: tickHeight}).
			Translated(r3.Vec{Y: tickRadius - tickLength/2, Z: zBase + tickHeight/2}).
			RotatedZ(-float64(deg), r3.Vec{})
		parts = append(parts, tick)
	}
	return parts
}

// coordinatesText embosses the home coordinates on the south side of
// the base, truncated to 4 decimal places.
func (g *Generator) coordinatesText(home geo.Point) []mesh.Mesh {
	c := g.cfg
	latText := fmt.Sprintf("%.4f", home.Lat)
	lonText := fmt.Sprintf("%.4f", home.Lon)
	font := c.BaseTextFontSize
	zBase := c.BaseHeight - booleanOverlap
	yPos := -c.BaseRadius * c.BaseTextRadiusFactor

	latWidth := float64(len(latText)) * font * distanceWidthFactor
	lonWidth := float64(len(lonText)) * font * distanceWidthFactor
	startX := -(latWidth + c.BaseTextGap + lonWidth) / 2

	var parts []mesh.Mesh
	for _, t := range []struct {
		text string
		x    float64
	}{
		{latText, startX},
		{lonText, startX + latWidth + c.BaseTextGap},
	} {
		m, err := g.text.Solid(t.text, font, c.BaseTextHeight)
		if err != nil {
			g.log.Warn("coordinate text skipped", zap.String("text", t.text), zap.Error(err))
			continue
		}
		m = m.Translated(r3.Vec{X: t.x, Y: yPos, Z: zBase})
		parts = append(parts, m.RotatedZ(c.BaseTextRotation, r3.Vec{}))
	}
	return parts
}

// bottomEngraving builds the mirrored multiline cutter carved into the
// base bottom so the text reads correctly from below.
func (g *Generator) bottomEngraving(lines []string) (mesh.Mesh, error) {
	lineGap := engravingFontSize * 0.3
	lineHeight := engravingFontSize + lineGap
	totalHeight := lineHeight*float64(len(lines)) - lineGap
	startY := totalHeight/2 - engravingFontSize

	var parts []mesh.Mesh
	for i, line := range lines {
		m, err := g.text.Solid(line, engravingFontSize, engravingDepth)
		if err != nil {
			return mesh.Mesh{}, fmt.Errorf("engraving line %q: %w", line, err)
		}
		bb := m.Bounds()
		m = m.Translated(r3.Vec{
			X: -(bb.Min.X + bb.Max.X) / 2,
			Y: startY - float64(i)*lineHeight,
		})
		parts = append(parts, m)
	}
	return mesh.Concat(parts...).MirroredY(0), nil
}
