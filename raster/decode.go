package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"slices"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrBadFile = errors.New("bad file or corrupted")

type ErrMimeTypeNotSupported struct {
	MimeType string
}

func (e *ErrMimeTypeNotSupported) Error() string {
	return fmt.Sprintf("mime type of the file is not supported: %s", e.MimeType)
}

var decodableMimeTypes = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/bmp",
	"image/tiff",
	"image/webp",
	RawBGRAMimeType,
}

// Mime types `Decode` understands
func DecodableMimeTypes() []string {
	return slices.Clone(decodableMimeTypes)
}

func IsDecodable(mimeType string) bool {
	return slices.Contains(decodableMimeTypes, mimeType)
}

// Detects mime type of encoded image
func DetectMimeType(data []byte) string {
	mime := mimetype.Detect(data)
	for m := mime; m != nil; m = m.Parent() {
		if IsDecodable(m.String()) {
			return m.String()
		}
	}
	return mime.String()
}

// Reads encoded image or raw BGRA container and returns it as raster together with detected mime type.
func Decode(reader io.Reader) (*Raster, string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to read image data"), err)
	}
	return DecodeBytes(data)
}

func DecodeBytes(data []byte) (*Raster, string, error) {
	mimeType := DetectMimeType(data)
	if !IsDecodable(mimeType) {
		return nil, mimeType, &ErrMimeTypeNotSupported{MimeType: mimeType}
	}

	if mimeType == RawBGRAMimeType {
		r, err := ReadRawBGRA(bytes.NewReader(data))
		if err != nil {
			return nil, mimeType, errors.Join(ErrBadFile, err)
		}
		return r, mimeType, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, mimeType, errors.Join(ErrBadFile, fmt.Errorf("failed to decode %s image", mimeType), err)
	}
	return FromImage(img), mimeType, nil
}
