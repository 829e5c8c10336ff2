// Package ocr binds recognition sessions to external OCR engines.
package ocr

import (
	"context"
	"errors"

	"github.com/opengs/tesswrap/raster"
)

var ErrNotInitialized = errors.New("engine is not initialized")

// Output of a single recognition
type Result struct {
	Text string `json:"text"`
	// Mean confidence in range 0..100
	Confidence int `json:"confidence"`
}

// External OCR engine. Implementations are not required to be thread safe: `Session` serializes calls.
type Engine interface {
	// Short identifier, e.g. "tesseract"
	Name() string
	// Loads trained data for the language ("eng" or "eng+deu") from dataPath.
	// Calling Init again after Close must load the data again.
	Init(ctx context.Context, dataPath string, language string) error
	Recognize(ctx context.Context, image *raster.Raster) (Result, error)
	// Releases loaded data. Safe to call on an engine that was never initialized.
	Close() error
}

// Creates fresh engines for pools
type EngineFactory func() Engine

func clampConfidence(c int) int {
	return max(0, min(100, c))
}
