package film

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/tiff"
)

// Save writes the film to filename. The format follows the extension:
// .png (8-bit sRGB), .tif/.tiff (16-bit sRGB) or .pfm (linear float).
func (f *HDRFilm) Save(filename string) error {
	var encode func(w io.Writer) error
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".png":
		encode = func(w io.Writer) error { return png.Encode(w, f.toImage()) }
	case ".tif", ".tiff":
		encode = func(w io.Writer) error {
			return tiff.Encode(w, f.toImage(), &tiff.Options{Compression: tiff.Deflate, Predictor: true})
		}
	case ".pfm":
		encode = f.WritePFM
	default:
		return fmt.Errorf("film: unsupported output format %q", ext)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("film: %w", err)
	}
	w := bufio.NewWriter(file)
	if err := encode(w); err != nil {
		file.Close()
		return fmt.Errorf("film: encoding %s: %w", filename, err)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("film: writing %s: %w", filename, err)
	}
	return file.Close()
}

// toImage converts linear radiance to 16-bit sRGB, flipping rows so the top comes first
func (f *HDRFilm) toImage() *image.NRGBA64 {
	img := image.NewNRGBA64(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			v := f.Pixel(x, y)
			c := colorful.LinearRgb(sanitize(v.X), sanitize(v.Y), sanitize(v.Z)).Clamped()
			img.SetNRGBA64(x, f.height-1-y, color.NRGBA64{
				R: uint16(c.R*65535 + 0.5),
				G: uint16(c.G*65535 + 0.5),
				B: uint16(c.B*65535 + 0.5),
				A: 0xffff,
			})
		}
	}
	return img
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 1)
}

// WritePFM writes the film as a little-endian Portable Float Map. PFM stores the bottom row first.
func (f *HDRFilm) WritePFM(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "PF\n%d %d\n-1\n", f.width, f.height); err != nil {
		return err
	}
	buf := make([]float32, 0, 3*f.width)
	for y := 0; y < f.height; y++ {
		buf = buf[:0]
		for x := 0; x < f.width; x++ {
			v := f.Pixel(x, y)
			buf = append(buf, float32(v.X), float32(v.Y), float32(v.Z))
		}
		if err := binary.Write(w, binary.LittleEndian, buf); err != nil {
			return err
		}
	}
	return nil
}
