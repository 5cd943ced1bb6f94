// Package textmesh renders text strings into extruded solids using
// TrueType glyph outlines.
package textmesh

import (
	"fmt"
	"os"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
)

// Provider locates and parses a TrueType font. Implementations cache
// the parsed font; lookup cost is paid once per run.
type Provider interface {
	Font() (*truetype.Font, error)
}

// DefaultFontNames are tried in order by SystemProvider. Bold sans
// faces first: thin strokes below the printer line width vanish.
var DefaultFontNames = []string{
	"DejaVuSans-Bold.ttf",
	"LiberationSans-Bold.ttf",
	"Arial Bold.ttf",
	"DejaVuSans.ttf",
	"LiberationSans-Regular.ttf",
	"Arial.ttf",
}

// SystemProvider finds an installed font by name using the platform
// font directories.
type SystemProvider struct {
	// Names overrides DefaultFontNames when non-empty.
	Names []string

	once sync.Once
	font *truetype.Font
	err  error
}

func (p *SystemProvider) Font() (*truetype.Font, error) {
	p.once.Do(func() {
		names := p.Names
		if len(names) == 0 {
			names = DefaultFontNames
		}
		for _, name := range names {
			path, err := findfont.Find(name)
			if err != nil {
				continue
			}
			f, err := parseFontFile(path)
			if err != nil {
				continue
			}
			p.font = f
			return
		}
		p.err = fmt.Errorf("no usable font among %v", names)
	})
	return p.font, p.err
}

// FileProvider parses the font at a fixed path, for configurations
// that pin an exact font file.
type FileProvider struct {
	Path string

	once sync.Once
	font *truetype.Font
	err  error
}

func (p *FileProvider) Font() (*truetype.Font, error) {
	p.once.Do(func() {
		p.font, p.err = parseFontFile(p.Path)
	})
	return p.font, p.err
}

func parseFontFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}
	return f, nil
}
