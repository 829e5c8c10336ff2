package ocr

import (
	"errors"
	"os"
	"slices"

	"github.com/opengs/tesswrap/abi"
	"github.com/opengs/tesswrap/raster"
	"github.com/opengs/tesswrap/tessdata"
)

var ErrTesseractNotCompiled = errors.New("OCR is not possible because binary wasnt compiled with internal tesseract OCR engine")

// Configuration for the tesseract library engine
type TesseractConfig struct {
	// Variable to pass on tesseract initialization. For example you can pass {"load_system_dawg":"0"} to disable loading words list from the system
	//
	// Default is {"load_system_dawg": "0", "load_freq_dawg": "0", "load_punc_dawg": "0", "load_number_dawg": "0", "load_unambig_dawg": "0", "load_bigram_dawg": "0"}
	Variables map[string]string `json:"variables" mapstructure:"variables"`
	// Page segmentation mode. 0 keeps tesseract default (3, fully automatic).
	PageSegMode int `json:"pageSegMode" mapstructure:"pageSegMode"`
	// Format used to pass images to tesseract. Leptonica linked against the stub codecs only decodes
	// formats it implements itself, so the default is the first encodable format that needs none of them.
	TransportMimeType string `json:"transportMimeType" mapstructure:"transportMimeType"`
}

func DefaultTesseractConfig() TesseractConfig {
	return TesseractConfig{
		Variables: map[string]string{
			"load_system_dawg":  "0",
			"load_freq_dawg":    "0",
			"load_punc_dawg":    "0",
			"load_number_dawg":  "0",
			"load_unambig_dawg": "0",
			"load_bigram_dawg":  "0",
		},
		TransportMimeType: DefaultTransportMimeType(),
	}
}

// First encodable format leptonica reads without any stubbed codec library
func DefaultTransportMimeType() string {
	stubbed := abi.StubbedMimeTypes()
	for _, mimeType := range raster.EncodableMimeTypes() {
		if abi.IsNativeMimeType(mimeType) && !slices.Contains(stubbed, mimeType) {
			return mimeType
		}
	}
	return "image/bmp"
}

// Checks that trained data for every language exists. Empty data path means tesseract default location.
func checkTessdata(dataPath string, language string) error {
	if len(tessdata.SplitLanguages(language)) == 0 {
		return errors.New("language is empty")
	}
	if dataPath == "" {
		return nil
	}
	info, err := os.Stat(dataPath)
	if err != nil {
		return errors.Join(errors.New("bad trained data path"), err)
	}
	if !info.IsDir() {
		return errors.New("bad trained data path: not a directory")
	}
	return tessdata.HasLanguages(os.DirFS(dataPath), language)
}
