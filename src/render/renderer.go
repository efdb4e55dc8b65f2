// Package render paints the cell grid into an RGBA pixel buffer.
//
// Every cell maps to a square block of blockSize pixels where
// blockSize = imageSide / gridSide. The first frame is preceded by a full
// background fill with grid lines every blockSize pixels along both axes.
// Each frame repaints every block: the foreground color for alive cells and
// the background pattern for dead ones, so no pixels of a previous frame survive.
package render

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/pkg/errors"
)

// ErrLayout is returned by New when the grid does not fit the image
var ErrLayout = errors.New("invalid render layout")

var (
	DefaultForeground = color.RGBA{0, 0, 0, 255}
	DefaultGridLine   = color.RGBA{60, 60, 60, 255}
	DefaultBackground = color.RGBA{255, 255, 255, 255}
)

//Source is the cell state the renderer reads
type Source interface {
	Side() int
	Alive(x, y int) bool
}

//Renderer owns the pixel buffer handed to the display
type Renderer struct {
	imageSide int
	gridSide  int
	blockSize int

	fg   color.RGBA
	line color.RGBA
	bg   color.RGBA

	img  *image.RGBA
	base *image.RGBA //background with grid lines, used to repaint dead cells
}

//Option customizes the renderer
type Option func(r *Renderer)

func WithForeground(c color.RGBA) Option {
	return func(r *Renderer) { r.fg = c }
}

func WithGridLine(c color.RGBA) Option {
	return func(r *Renderer) { r.line = c }
}

func WithBackground(c color.RGBA) Option {
	return func(r *Renderer) { r.bg = c }
}

// BlockSize returns the pixel side of one cell block
func BlockSize(imageSide, gridSide int) int {
	if gridSide <= 0 {
		return 0
	}
	return imageSide / gridSide
}

//New creates the renderer and paints the background
func New(imageSide, gridSide int, opts ...Option) (*Renderer, error) {
	if gridSide <= 0 {
		return nil, errors.Wrapf(ErrLayout, "grid side must be positive, got %d", gridSide)
	}
	if imageSide < gridSide {
		return nil, errors.Wrapf(ErrLayout, "image side %d is smaller than grid side %d", imageSide, gridSide)
	}
	r := &Renderer{
		imageSide: imageSide,
		gridSide:  gridSide,
		blockSize: BlockSize(imageSide, gridSide),
		fg:        DefaultForeground,
		line:      DefaultGridLine,
		bg:        DefaultBackground,
		img:       image.NewRGBA(image.Rect(0, 0, imageSide, imageSide)),
		base:      image.NewRGBA(image.Rect(0, 0, imageSide, imageSide)),
	}
	for _, o := range opts {
		o(r)
	}
	r.Reset(r.bg)
	return r, nil
}

//RandomBackground picks a light color, green stays near its maximum
func RandomBackground(rng *rand.Rand) color.RGBA {
	return color.RGBA{
		R: 255 - uint8(rng.Float64()*245),
		G: 255 - uint8(rng.Float64()*10),
		B: 255 - uint8(rng.Float64()*245),
		A: 255,
	}
}

// BlockSize returns the pixel side of one cell block
func (r *Renderer) BlockSize() int {
	return r.blockSize
}

// Foreground returns the alive cell color
func (r *Renderer) Foreground() color.RGBA {
	return r.fg
}

// Image returns the pixel buffer
func (r *Renderer) Image() *image.RGBA {
	return r.img
}

//Reset fills the image with bg and draws the grid lines
//the result becomes the pattern dead cells are repainted with
func (r *Renderer) Reset(bg color.RGBA) {
	r.bg = bg
	fill(r.base, r.base.Bounds(), bg)
	for x := 0; x < r.imageSide; x += r.blockSize {
		fill(r.base, image.Rect(x, 0, x+1, r.imageSide), r.line)
		fill(r.base, image.Rect(0, x, r.imageSide, x+1), r.line)
	}
	copy(r.img.Pix, r.base.Pix)
}

//Draw repaints every cell block of src and returns the pixel buffer
func (r *Renderer) Draw(src Source) *image.RGBA {
	side := min(src.Side(), r.gridSide)
	for x := 0; x < side; x++ {
		for y := 0; y < side; y++ {
			if src.Alive(x, y) {
				fill(r.img, r.block(x, y), r.fg)
			} else {
				r.restore(r.block(x, y))
			}
		}
	}
	return r.img
}

//block returns the pixel rectangle of cell x, y
func (r *Renderer) block(x, y int) image.Rectangle {
	return image.Rect(x*r.blockSize, y*r.blockSize, (x+1)*r.blockSize, (y+1)*r.blockSize)
}

//restore copies the background pattern of rect into the image
func (r *Renderer) restore(rect image.Rectangle) {
	n := rect.Dx() * 4
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		i := r.img.PixOffset(rect.Min.X, y)
		copy(r.img.Pix[i:i+n], r.base.Pix[i:i+n])
	}
}

//fill paints rect with c
func fill(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	rect = rect.Intersect(img.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		i := img.PixOffset(rect.Min.X, y)
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
			i += 4
		}
	}
}
