package raster

import (
	"bytes"
	"errors"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var encodableMimeTypes = []string{"image/png", "image/bmp", "image/tiff", "image/jpeg"}

func EncodableMimeTypes() []string {
	return append([]string(nil), encodableMimeTypes...)
}

// Encodes raster into the requested format. BMP and TIFF are written uncompressed.
func Encode(w io.Writer, r *Raster, mimeType string) error {
	if err := r.Validate(); err != nil {
		return err
	}

	img := r.Image()
	var err error
	switch mimeType {
	case "image/png":
		err = png.Encode(w, img)
	case "image/bmp":
		err = bmp.Encode(w, img)
	case "image/tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Uncompressed})
	case "image/jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	default:
		return &ErrMimeTypeNotSupported{MimeType: mimeType}
	}
	if err != nil {
		return errors.Join(errors.New("failed to encode "+mimeType+" image"), err)
	}
	return nil
}

// Encodes raster as JPEG with quality 1..100
func EncodeJPEG(w io.Writer, r *Raster, quality int) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := jpeg.Encode(w, r.Image(), &jpeg.Options{Quality: max(1, min(100, quality))}); err != nil {
		return errors.Join(errors.New("failed to encode image/jpeg image"), err)
	}
	return nil
}

func EncodeBytes(r *Raster, mimeType string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, r, mimeType); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
