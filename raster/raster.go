// Package raster holds the pixel buffers submitted to OCR engines and converts them from and to
// encoded image formats.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

var ErrBadRaster = errors.New("bad raster")

const maxInt = int(^uint(0) >> 1)

// Dense pixel buffer. Rows are `Stride` bytes apart, each pixel takes `BytesPerPixel` bytes.
// Supported layouts: 1 (gray), 3 (RGB), 4 (RGBA, alpha ignored).
type Raster struct {
	Width         int
	Height        int
	Stride        int
	BytesPerPixel int
	Pix           []byte
}

// Derives bytes per pixel from the row stride the way callers of setImageData expect:
// RGBA when a row fits four bytes per pixel, RGB for three, gray otherwise.
func BytesPerPixelForStride(width, bytesPerRow int) int {
	if width <= 0 {
		return 0
	}
	switch {
	case bytesPerRow/4 >= width:
		return 4
	case bytesPerRow/3 >= width:
		return 3
	case bytesPerRow >= width:
		return 1
	}
	return 0
}

// Builds raster from a caller-owned buffer. The buffer is copied, so the caller may reuse it.
func New(data []byte, width, height, bytesPerRow int) (*Raster, error) {
	r := &Raster{
		Width:         width,
		Height:        height,
		Stride:        bytesPerRow,
		BytesPerPixel: BytesPerPixelForStride(width, bytesPerRow),
	}
	if err := r.validate(len(data)); err != nil {
		return nil, err
	}

	r.Pix = make([]byte, r.requiredLen())
	copy(r.Pix, data)
	return r, nil
}

func (r *Raster) requiredLen() int {
	return r.Stride*(r.Height-1) + r.Width*r.BytesPerPixel
}

func (r *Raster) validate(dataLen int) error {
	if r.Width <= 0 || r.Height <= 0 {
		return errors.Join(ErrBadRaster, fmt.Errorf("dimensions must be positive: %dx%d", r.Width, r.Height))
	}
	switch r.BytesPerPixel {
	case 1, 3, 4:
	default:
		return errors.Join(ErrBadRaster, fmt.Errorf("unsupported layout: stride %d for width %d", r.Stride, r.Width))
	}
	if r.Width > maxInt/r.BytesPerPixel || r.Stride < r.Width*r.BytesPerPixel {
		return errors.Join(ErrBadRaster, errors.New("stride is smaller than a row of pixels"))
	}
	// requiredLen must not overflow
	if r.Height-1 > (maxInt-r.Width*r.BytesPerPixel)/r.Stride {
		return errors.Join(ErrBadRaster, fmt.Errorf("geometry %dx%d with stride %d is too large", r.Width, r.Height, r.Stride))
	}
	if dataLen < r.requiredLen() {
		return errors.Join(ErrBadRaster, fmt.Errorf("buffer holds %d bytes, %d required", dataLen, r.requiredLen()))
	}
	return nil
}

// Checks that dimensions, layout and buffer size agree.
func (r *Raster) Validate() error {
	return r.validate(len(r.Pix))
}

// Converts raster into an opaque image. Gray rasters share memory with the result.
func (r *Raster) Image() image.Image {
	rect := image.Rect(0, 0, r.Width, r.Height)
	if r.BytesPerPixel == 1 {
		return &image.Gray{Pix: r.Pix, Stride: r.Stride, Rect: rect}
	}

	img := image.NewRGBA(rect)
	for y := range r.Height {
		src := r.Pix[y*r.Stride:]
		dst := img.Pix[y*img.Stride:]
		for x := range r.Width {
			s := src[x*r.BytesPerPixel:]
			d := dst[x*4:]
			d[0], d[1], d[2], d[3] = s[0], s[1], s[2], 0xff
		}
	}
	return img
}

// Converts any image into an RGBA raster.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	if gray, ok := img.(*image.Gray); ok && b.Min == (image.Point{}) {
		pix := make([]byte, len(gray.Pix))
		copy(pix, gray.Pix)
		return &Raster{Width: b.Dx(), Height: b.Dy(), Stride: gray.Stride, BytesPerPixel: 1, Pix: pix}
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Over)
	return &Raster{Width: b.Dx(), Height: b.Dy(), Stride: rgba.Stride, BytesPerPixel: 4, Pix: rgba.Pix}
}

// Swaps red and blue channels in place. Turns BGRA into RGBA and back.
func (r *Raster) SwapRedBlue() {
	if r.BytesPerPixel < 3 {
		return
	}
	for y := range r.Height {
		row := r.Pix[y*r.Stride : y*r.Stride+r.Width*r.BytesPerPixel]
		for x := 0; x < len(row); x += r.BytesPerPixel {
			row[x], row[x+2] = row[x+2], row[x]
		}
	}
}
