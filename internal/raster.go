package internal

import (
	"image"
	"image/color"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// RGBA is one 8-bit-per-channel pixel. Using the image/color type keeps
// rasters interchangeable with the standard image package.
type RGBA = color.RGBA

// Background is the reserved sentinel colour. A pixel of exactly this colour
// is background, anything else is foreground.
var Background = RGBA{R: 0, G: 0, B: 0, A: 255}

// Raster is a row-major RGBA pixel grid in a single flat buffer. Pixel (x, y)
// lives at Pix[y*Width+x].
type Raster struct {
	Width  int
	Height int
	Pix    []RGBA
}

// NewRaster allocates a raster filled with opaque white.
func NewRaster(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidRaster, "dimensions %dx%d", width, height)
	}
	r := &Raster{Width: width, Height: height, Pix: make([]RGBA, width*height)}
	white := RGBA{R: 255, G: 255, B: 255, A: 255}
	for i := range r.Pix {
		r.Pix[i] = white
	}
	return r, nil
}

// RasterFromBytes copies a flat RGBA byte buffer (4 bytes per pixel, row
// major) into a new raster.
func RasterFromBytes(width, height int, data []byte) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidRaster, "dimensions %dx%d", width, height)
	}
	if len(data) != width*height*4 {
		return nil, errors.Wrapf(ErrInvalidRaster, "%d bytes for %dx%d pixels", len(data), width, height)
	}
	r := &Raster{Width: width, Height: height, Pix: make([]RGBA, width*height)}
	for i := range r.Pix {
		j := 4 * i
		r.Pix[i] = RGBA{R: data[j], G: data[j+1], B: data[j+2], A: data[j+3]}
	}
	return r, nil
}

// RasterFromImage converts any decoded image into a raster.
func RasterFromImage(img image.Image) (*Raster, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.Wrapf(ErrInvalidRaster, "empty image %v", b)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return RasterFromBytes(b.Dx(), b.Dy(), rgba.Pix)
}

// Bytes copies the pixels out as a flat RGBA byte buffer.
func (r *Raster) Bytes() []byte {
	result := make([]byte, 0, len(r.Pix)*4)
	for _, c := range r.Pix {
		result = append(result, c.R, c.G, c.B, c.A)
	}
	return result
}

// Image copies the raster into a standard library image.
func (r *Raster) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	copy(img.Pix, r.Bytes())
	return img
}

// InBounds reports whether p addresses a pixel of the raster.
func (r *Raster) InBounds(p IntPoint) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < r.Width && p.Y < r.Height
}

// At returns the pixel at column x, row y. The coordinates must be in bounds.
func (r *Raster) At(x, y int) RGBA {
	return r.Pix[y*r.Width+x]
}

// Set writes the pixel at column x, row y. The coordinates must be in bounds.
func (r *Raster) Set(x, y int, c RGBA) {
	r.Pix[y*r.Width+x] = c
}

// Bilinear samples the raster at a fractional row and column from the four
// surrounding pixels. floor and ceil of both coordinates must be in bounds;
// clamping is the caller's job. At integer coordinates the weights collapse
// to a single pixel, so its colour comes back unchanged. Channels are rounded
// to the nearest byte, so flat areas stay flat. The output is always opaque.
func Bilinear(r *Raster, row, col float64) RGBA {
	fm, cm := int(math.Floor(row)), int(math.Ceil(row))
	fn, cn := int(math.Floor(col)), int(math.Ceil(col))
	alpha := math.Ceil(row) - row
	beta := math.Ceil(col) - col

	ff := r.At(fn, fm)
	cf := r.At(fn, cm)
	fc := r.At(cn, fm)
	cc := r.At(cn, cm)

	w00 := alpha * beta
	w10 := (1 - alpha) * beta
	w01 := alpha * (1 - beta)
	w11 := (1 - alpha) * (1 - beta)
	mix := func(a, b, c, d uint8) uint8 {
		return toByte(w00*float64(a) + w10*float64(b) + w01*float64(c) + w11*float64(d))
	}
	return RGBA{
		R: mix(ff.R, cf.R, fc.R, cc.R),
		G: mix(ff.G, cf.G, fc.G, cc.G),
		B: mix(ff.B, cf.B, fc.B, cc.B),
		A: 255,
	}
}

// ColorInterpolate blends two samples, (1-t)*a + t*b. Alpha is taken from a.
func ColorInterpolate(a, b RGBA, t float64) RGBA {
	mix := func(x, y uint8) uint8 {
		return toByte(float64(x)*(1-t) + float64(y)*t)
	}
	return RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: a.A}
}

func toByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
