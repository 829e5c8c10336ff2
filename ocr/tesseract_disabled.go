//go:build !tesswrap_feature_tesseract

package ocr

import (
	"context"

	"github.com/opengs/tesswrap/raster"
)

const FeatureTesseractEnabled = false

// Placeholder for the library engine in binaries built without the `tesswrap_feature_tesseract` tag
type Tesseract struct {
	config TesseractConfig
}

func NewTesseract(config TesseractConfig) *Tesseract {
	return &Tesseract{config: config}
}

func (p *Tesseract) Name() string {
	return "tesseract"
}

func (p *Tesseract) Init(ctx context.Context, dataPath string, language string) error {
	return ErrTesseractNotCompiled
}

func (p *Tesseract) Recognize(ctx context.Context, image *raster.Raster) (Result, error) {
	return Result{}, ErrTesseractNotCompiled
}

func (p *Tesseract) Close() error {
	return nil
}
