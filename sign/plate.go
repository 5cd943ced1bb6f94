package sign

import (
	"fmt"
	"unicode/utf8"

	"github.com/fernwerk/waypost/form"
	"github.com/fernwerk/waypost/mesh"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// GeneratePlate builds one sign plate, fits and embosses its text,
// cuts its keying holes, and writes it to path.
func (g *Generator) GeneratePlate(p Plate, path string) error {
	m, err := g.BuildPlate(p)
	if err != nil {
		return err
	}
	if err := mesh.WriteSTLFile(path, m); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	g.log.Info("wrote sign plate",
		zap.String("path", path),
		zap.String("label", p.Label),
		zap.Int("faces", m.NumFaces()))
	return nil
}

// BuildPlate assembles the plate mesh without exporting it.
func (g *Generator) BuildPlate(p Plate) (mesh.Mesh, error) {
	c := g.cfg
	layout := FitLayout(c, p, g.log)
	g.log.Debug("plate layout",
		zap.String("label", p.Label),
		zap.Float64("length", layout.Length),
		zap.Float64("font", layout.Font),
		zap.Float64("distanceFont", layout.DistanceFont),
		zap.Bool("pointLeft", layout.PointLeft))

	var blank mesh.Mesh
	if p.Arrowed {
		blank = form.Dart(layout.Length, layout.Height, c.SignThickness, layout.PointLength)
		if layout.PointLeft {
			blank = blank.MirroredX(layout.Length / 2)
		}
	} else {
		blank = form.Box(r3.Vec{X: layout.Length, Y: layout.Height, Z: c.SignThickness}).
			Translated(r3.Vec{X: layout.Length / 2, Y: layout.Height / 2, Z: c.SignThickness / 2})
	}

	cutters, err := g.plateKeyingHoles(p, layout)
	if err != nil {
		return mesh.Mesh{}, err
	}
	if carved, err := g.comp.Difference(blank, mesh.Concat(cutters...)); err != nil {
		g.log.Warn("keying hole carve failed, plate has no holes",
			zap.String("label", p.Label), zap.Error(err))
	} else {
		blank = carved
	}

	texts := g.plateText(p, layout)
	if len(texts) == 0 {
		return blank, nil
	}
	return g.comp.Union(append([]mesh.Mesh{blank}, texts...)...), nil
}

func (g *Generator) plateKeyingHoles(p Plate, layout Layout) ([]mesh.Mesh, error) {
	c := g.cfg
	switch {
	case p.ID.Keyable():
		return IDHoles(c, layout.Length, layout.Height, p.ID.N)
	case p.ID.OK && p.ID.N > 15:
		g.log.Info("segment id exceeds 15, using center hole only",
			zap.String("label", p.Label), zap.Int("id", p.ID.N))
	case p.ID.OK:
		return nil, fmt.Errorf("plate %q: %w: %d", p.Label, ErrInvalidSegmentID, p.ID.N)
	}
	return []mesh.Mesh{IndexHole(c, layout.Length, layout.Height)}, nil
}

// plateText renders the label and the stacked distance rows at their
// layout positions. A failed label degrades to a blank plate; a failed
// distance row is skipped.
func (g *Generator) plateText(p Plate, layout Layout) []mesh.Mesh {
	textZ := g.cfg.SignThickness - booleanOverlap
	var texts []mesh.Mesh

	label, err := g.textAt(p.Label, layout.Font, r3.Vec{X: layout.LabelX(), Y: layout.LabelY(), Z: textZ}, false)
	if err != nil {
		g.log.Warn("label text failed, exporting blank plate",
			zap.String("label", p.Label), zap.Error(err))
		return nil
	}
	texts = append(texts, label)

	if !layout.HasDistance {
		return texts
	}
	value, err := g.textAt(p.DistanceValue, layout.DistanceFont,
		r3.Vec{X: layout.DistanceX(), Y: layout.DistanceY(), Z: textZ}, false)
	if err != nil {
		g.log.Warn("distance text skipped", zap.String("value", p.DistanceValue), zap.Error(err))
		return texts
	}
	texts = append(texts, value)

	if p.DistanceUnits != "" {
		x, y := layout.UnitsPos(utf8.RuneCountInString(p.DistanceValue), utf8.RuneCountInString(p.DistanceUnits))
		units, err := g.textAt(p.DistanceUnits, layout.UnitsFont, r3.Vec{X: x, Y: y, Z: textZ}, false)
		if err != nil {
			g.log.Warn("units text skipped", zap.String("units", p.DistanceUnits), zap.Error(err))
		} else {
			texts = append(texts, units)
		}
	}
	return texts
}
