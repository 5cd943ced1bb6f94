package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fernwerk/waypost/csg"
	"github.com/fernwerk/waypost/internal/config"
	"github.com/fernwerk/waypost/internal/geo"
	"github.com/fernwerk/waypost/preview"
	"github.com/fernwerk/waypost/sign"
	"github.com/fernwerk/waypost/textmesh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
		doPreview  bool
		spacers    int
		outputDir  string
		units      string
		fontPath   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the post pieces and sign plates as STL files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			// Flags override the file where explicitly set.
			if cmd.Flags().Changed("preview") {
				cfg.Output.Preview = doPreview
			}
			if cmd.Flags().Changed("spacers") {
				cfg.Spacers = spacers
			}
			if cmd.Flags().Changed("output") {
				cfg.Output.Dir = outputDir
			}
			if cmd.Flags().Changed("units") {
				cfg.Units = units
			}
			if cmd.Flags().Changed("font") {
				cfg.FontPath = fontPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := newLogger(cfg.Logging, verbose)
			defer log.Sync()
			return runGenerate(cfg, log)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "waypost.yaml", "configuration file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	cmd.Flags().BoolVar(&doPreview, "preview", false, "render a PNG preview next to every STL")
	cmd.Flags().IntVar(&spacers, "spacers", 0, "blank slots appended below the lowest sign")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory")
	cmd.Flags().StringVar(&units, "units", "", "distance units: mi, km or both")
	cmd.Flags().StringVar(&fontPath, "font", "", "TrueType font file for sign text")
	return cmd
}

// runGenerate computes the heading and distance of every destination
// and exports the post pieces and one plate per sign.
func runGenerate(cfg *config.Config, log *zap.Logger) error {
	var prov textmesh.Provider = &textmesh.SystemProvider{}
	if cfg.FontPath != "" {
		prov = &textmesh.FileProvider{Path: cfg.FontPath}
	}
	text := textmesh.NewRenderer(prov, log)
	gen, err := sign.NewGenerator(cfg.Dimensions, &csg.SDFEngine{}, text, log)
	if err != nil {
		return err
	}

	unit := cfg.Unit()
	home := cfg.Home.Point

	// The home sign faces due south and takes the first key. Destination
	// flats are folded onto the shared side of the post; their plates
	// point left instead.
	slots := []sign.Slot{{Bearing: 180, ID: sign.ID(1)}}
	plates := []sign.Plate{{Label: cfg.Home.Name, Bearing: 180, ID: sign.ID(1)}}
	for i, loc := range cfg.Locations {
		bearing := geo.InitialBearing(home, loc.Point)
		km := geo.HaversineKm(home, loc.Point)
		value, unitsText := sign.SplitDistance(geo.FormatDistance(km, unit))
		id := sign.ID(i + 2)
		slots = append(slots, sign.Slot{Bearing: sign.FoldBearing(bearing), ID: id})
		plates = append(plates, sign.Plate{
			Label:         loc.Name,
			DistanceValue: value,
			DistanceUnits: unitsText,
			Bearing:       bearing,
			ID:            id,
			Arrowed:       true,
		})
		log.Info("located destination",
			zap.String("name", loc.Name),
			zap.Float64("km", km),
			zap.Float64("bearing", bearing))
	}
	for i := 0; i < cfg.Spacers; i++ {
		slots = append(slots, sign.Slot{Spacer: true})
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	base := filepath.Join(cfg.Output.Dir, cfg.Output.Prefix)

	written, err := gen.GeneratePosts(slots, base, &home)
	if err != nil {
		return fmt.Errorf("generating post: %w", err)
	}
	for _, p := range plates {
		path := base + "_sign_" + slugify(p.Label) + ".stl"
		if err := gen.GeneratePlate(p, path); err != nil {
			return fmt.Errorf("plate %q: %w", p.Label, err)
		}
		written = append(written, path)
	}

	if cfg.Output.Preview {
		for _, stl := range written {
			png := strings.TrimSuffix(stl, ".stl") + ".png"
			if err := preview.RenderSTL(stl, png, preview.DefaultView()); err != nil {
				log.Warn("preview render failed", zap.String("stl", stl), zap.Error(err))
			}
		}
	}
	log.Info("run complete", zap.Int("files", len(written)))
	return nil
}

// slugify turns a sign label into a filename fragment.
func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
