package ocr

import (
	"context"
	"io"
)

// Provides OCR functionality
type Provider interface {
	// Get text from encoded image. Thread safe
	Recognize(ctx context.Context, image io.Reader) (Result, error)
	// Check if this provider supports specific mime type
	IsMimeTypeSupported(mimeType string) bool
	// Languages installed in the data path used by the provider
	Languages() []string
}
