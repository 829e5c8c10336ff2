package raster

import (
	"image"

	"golang.org/x/image/draw"
)

// Returns raster scaled down so that its longer side is at most maxDimension. Smaller rasters are
// returned unchanged.
func Downscale(r *Raster, maxDimension int) *Raster {
	longest := max(r.Width, r.Height)
	if maxDimension <= 0 || longest <= maxDimension {
		return r
	}

	width := max(1, r.Width*maxDimension/longest)
	height := max(1, r.Height*maxDimension/longest)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), r.Image(), image.Rect(0, 0, r.Width, r.Height), draw.Src, nil)
	return &Raster{Width: width, Height: height, Stride: dst.Stride, BytesPerPixel: 4, Pix: dst.Pix}
}
