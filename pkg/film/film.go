// Package film stores radiance estimates addressed by raster position.
package film

import (
	"errors"
	"fmt"

	"github.com/df07/go-light-transport/pkg/core"
)

// ErrIncompatibleFilm is returned when accumulating films of different kinds or sizes
var ErrIncompatibleFilm = errors.New("film: incompatible film")

// HDRFilm is a floating point RGB image. Row zero is the bottom of the image.
type HDRFilm struct {
	width, height int
	data          []core.Vec3
}

// New creates a black film
func New(width, height int) *HDRFilm {
	return &HDRFilm{width: width, height: height, data: make([]core.Vec3, width*height)}
}

// Width returns the number of columns
func (f *HDRFilm) Width() int {
	return f.width
}

// Height returns the number of rows
func (f *HDRFilm) Height() int {
	return f.height
}

// PixelIndex returns the pixel containing a raster position in [0,1]²
func (f *HDRFilm) PixelIndex(rasterPos core.Vec2) (int, int) {
	x := max(0, min(f.width-1, int(rasterPos.X*float64(f.width))))
	y := max(0, min(f.height-1, int(rasterPos.Y*float64(f.height))))
	return x, y
}

// Splat adds v to the pixel containing rasterPos
func (f *HDRFilm) Splat(rasterPos core.Vec2, v core.Vec3) {
	x, y := f.PixelIndex(rasterPos)
	i := y*f.width + x
	f.data[i] = f.data[i].Add(v)
}

// Accumulate adds every pixel of other, which must be an HDRFilm of the same size
func (f *HDRFilm) Accumulate(other core.Film) error {
	o, ok := other.(*HDRFilm)
	if !ok {
		return fmt.Errorf("%w: %T", ErrIncompatibleFilm, other)
	}
	if o.width != f.width || o.height != f.height {
		return fmt.Errorf("%w: %dx%d into %dx%d", ErrIncompatibleFilm, o.width, o.height, f.width, f.height)
	}
	for i, v := range o.data {
		f.data[i] = f.data[i].Add(v)
	}
	return nil
}

// Clear sets every pixel to black
func (f *HDRFilm) Clear() {
	clear(f.data)
}

// Rescale multiplies every pixel by factor
func (f *HDRFilm) Rescale(factor float64) {
	for i := range f.data {
		f.data[i] = f.data[i].Multiply(factor)
	}
}

// Clone returns a black film of the same size
func (f *HDRFilm) Clone() core.Film {
	return New(f.width, f.height)
}

// Pixel returns the value at column x and row y
func (f *HDRFilm) Pixel(x, y int) core.Vec3 {
	return f.data[y*f.width+x]
}

// Average returns the mean pixel value
func (f *HDRFilm) Average() core.Vec3 {
	var sum core.Vec3
	for _, v := range f.data {
		sum = sum.Add(v)
	}
	if len(f.data) == 0 {
		return sum
	}
	return sum.Multiply(1 / float64(len(f.data)))
}
