//go:build tesswrap_feature_tesseract

package ocr_test

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"os"
	"testing"

	"github.com/opengs/tesswrap/ocr"
	"github.com/opengs/tesswrap/raster"
)

// Needs tesseract with english trained data in TESSWRAP_TEST_TESSDATA
func TestTesseractBlankPage(t *testing.T) {
	dataPath := os.Getenv("TESSWRAP_TEST_TESSDATA")
	if dataPath == "" {
		t.Skip("TESSWRAP_TEST_TESSDATA is not set")
	}

	session := ocr.NewSession(ocr.NewTesseract(ocr.DefaultTesseractConfig()))
	defer session.Close()
	if !session.Initialize(context.Background(), dataPath, "eng") {
		t.Fatal(session.Err().Error())
	}

	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	r := raster.FromImage(img)
	session.SetImageData(r.Pix, r.Width, r.Height, r.Stride)

	if text := session.RecognizedText(context.Background()); text != "" {
		t.Errorf("blank page produced text %q", text)
	}
	if err := session.Err(); err != nil {
		t.Error(err.Error())
	}
	conf := session.MeanConfidence()
	if conf < 0 || conf > 100 {
		t.Errorf("confidence out of range: %d", conf)
	}
}
