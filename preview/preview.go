// Package preview rasterizes exported STL files into PNG images so a
// generated part can be checked without opening a slicer.
package preview

import (
	"fmt"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	width, height = 1920, 1080 // output width and height in pixels
	scale         = 2          // supersampling factor
	fovy          = 30         // vertical field of view in degrees

	objectColor     = "#468966"
	backgroundColor = "#FFF8E3"
)

// View places the camera for a render.
type View struct {
	// what position (point) to look at
	LookAt r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye located at (point)
	EyePos r3.Vec
	Far    float64
	Near   float64
}

// DefaultView looks down at the origin from the south-east, a vantage
// that shows both a plate face and a post flat.
func DefaultView() View {
	return View{
		Up:     r3.Vec{Z: 1},
		EyePos: r3.Vec{X: 3, Y: -3, Z: 3},
		Near:   1,
		Far:    10,
	}
}

// RenderSTL rasterizes the solid in stlPath into a shaded PNG at
// pngPath. The mesh is normalized to a bi-unit cube first, so the view
// works for any part size.
func RenderSTL(stlPath, pngPath string, view View) error {
	m, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", stlPath, err)
	}

	var (
		eye    = fauxgl.V(view.EyePos.X, view.EyePos.Y, view.EyePos.Z)
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z)
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)

	// fit mesh in a bi-unit cube centered at the origin
	m.BiUnitCube()
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor(backgroundColor))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(objectColor)
	context.Shader = shader
	context.DrawMesh(m)

	// downsample image for antialiasing
	img := resize.Resize(width, height, context.Image(), resize.Bilinear)
	if err := fauxgl.SavePNG(pngPath, img); err != nil {
		return fmt.Errorf("writing %s: %w", pngPath, err)
	}
	return nil
}
