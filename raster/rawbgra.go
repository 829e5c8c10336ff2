package raster

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/gabriel-vasile/mimetype"
)

// Header of the raw BGRA container. Followed by big endian uint64 width, height and stride, then
// `height*stride` bytes of BGRA pixels.
var RawBGRAHeader = []byte("TESSWRAP_RAW_BGRA______%%")

const RawBGRAMimeType = "image/x-tesswrap-raw-bgra"

// Reads raw BGRA container and returns RGBA raster
func ReadRawBGRA(reader io.Reader) (*Raster, error) {
	// Read and ommit header
	header := make([]byte, len(RawBGRAHeader))
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, errors.Join(errors.New("failed to read header"), err)
	}
	if !bytes.Equal(header, RawBGRAHeader) {
		return nil, errors.New("wrong data type: header not match")
	}

	var width, height, stride uint64
	if err := binary.Read(reader, binary.BigEndian, &width); err != nil {
		return nil, errors.Join(errors.New("failed to read image width"), err)
	}
	if err := binary.Read(reader, binary.BigEndian, &height); err != nil {
		return nil, errors.Join(errors.New("failed to read image height"), err)
	}
	if err := binary.Read(reader, binary.BigEndian, &stride); err != nil {
		return nil, errors.Join(errors.New("failed to read image stride"), err)
	}
	if width == 0 || height == 0 || width > math.MaxInt32 || height > math.MaxInt32 || stride > math.MaxInt32 {
		return nil, errors.Join(ErrBadRaster, errors.New("image geometry out of range"))
	}
	if width*4 > stride {
		return nil, errors.Join(ErrBadRaster, errors.New("width*4 must be less or equal to stride"))
	}

	data, err := io.ReadAll(io.LimitReader(reader, int64(height*stride)+1))
	if err != nil {
		return nil, errors.Join(errors.New("error while reading image data"), err)
	}
	if uint64(len(data)) != height*stride {
		return nil, errors.Join(ErrBadRaster, errors.New("image data size doesnt match with height and stride"))
	}

	r := &Raster{
		Width:         int(width),
		Height:        int(height),
		Stride:        int(stride),
		BytesPerPixel: 4,
		Pix:           data,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.SwapRedBlue()
	return r, nil
}

// Writes RGBA raster as raw BGRA container
func WriteRawBGRA(w io.Writer, r *Raster) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.BytesPerPixel != 4 {
		return errors.Join(ErrBadRaster, errors.New("raw BGRA container requires 4 bytes per pixel"))
	}

	if _, err := w.Write(RawBGRAHeader); err != nil {
		return errors.Join(errors.New("failed to write header"), err)
	}
	for _, v := range []uint64{uint64(r.Width), uint64(r.Height), uint64(r.Stride)} {
		if err := binary.Write(w, binary.BigEndian, v); err != nil {
			return errors.Join(errors.New("failed to write image geometry"), err)
		}
	}

	row := make([]byte, r.Stride)
	for y := range r.Height {
		clear(row)
		copy(row, r.Pix[y*r.Stride:min(len(r.Pix), (y+1)*r.Stride)])
		for x := 0; x < r.Width*4; x += 4 {
			row[x], row[x+2] = row[x+2], row[x]
		}
		if _, err := w.Write(row); err != nil {
			return errors.Join(errors.New("failed to write image data"), err)
		}
	}
	return nil
}

func rawBGRADetector(data []byte, limit uint32) bool {
	if limit < uint32(len(RawBGRAHeader)) {
		return false
	}
	return bytes.HasPrefix(data, RawBGRAHeader)
}

func init() {
	mimetype.Extend(rawBGRADetector, RawBGRAMimeType, ".tesswrap-raw-bgra")
}
