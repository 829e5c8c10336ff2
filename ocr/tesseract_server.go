package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/opengs/tesswrap/raster"
	"github.com/opengs/tesswrap/tessdata"
)

type TesseractServerConfig struct {
	// HTTP client used to make requests to the server
	Client *http.Client `json:"-" mapstructure:"-"`
	// Server base URL. For example http://127.0.0.1:8080
	BaseURL string `json:"baseURL" mapstructure:"baseURL"`
	// Format used to upload images. Default is "image/png".
	TransportMimeType string `json:"transportMimeType" mapstructure:"transportMimeType"`
}

func DefaultTesseractServerConfig() TesseractServerConfig {
	return TesseractServerConfig{
		Client:            http.DefaultClient,
		BaseURL:           "http://127.0.0.1:8080",
		TransportMimeType: "image/png",
	}
}

// Uses tesseract server as OCR backend. https://github.com/otiai10/ocrserver
// Make sure languages are installed on the server because default OCR server has only several languages enabled by default.
// The server ignores the session data path and does not report confidence, results always have zero confidence.
type TesseractServer struct {
	config    TesseractServerConfig
	languages []string
}

func NewTesseractServer(config TesseractServerConfig) *TesseractServer {
	if config.TransportMimeType == "" {
		config.TransportMimeType = "image/png"
	}
	return &TesseractServer{
		config: config,
	}
}

func (p *TesseractServer) Name() string {
	return "tesseract-server"
}

func (p *TesseractServer) Init(ctx context.Context, dataPath string, language string) error {
	p.languages = nil
	if err := checkBaseURL(p.config.BaseURL); err != nil {
		return err
	}
	languages := tessdata.SplitLanguages(language)
	if len(languages) == 0 {
		return errors.New("language is empty")
	}
	p.languages = languages
	return nil
}

func (p *TesseractServer) Recognize(ctx context.Context, image *raster.Raster) (Result, error) {
	if len(p.languages) == 0 {
		return Result{}, ErrNotInitialized
	}

	encoded, err := encodeForUpload(image, p.config.TransportMimeType)
	if err != nil {
		return Result{}, err
	}

	var ocrOptions struct {
		Languages []string `json:"languages"`
	}
	ocrOptions.Languages = p.languages
	ocrOptionsBytes, err := json.Marshal(ocrOptions)
	if err != nil {
		return Result{}, errors.Join(errors.New("failed to marshall OCR options"), err)
	}

	req, err := newUploadRequest(ctx, strings.TrimSuffix(p.config.BaseURL, "/")+"/tesseract", encoded, map[string]string{"options": string(ocrOptionsBytes)})
	if err != nil {
		return Result{}, err
	}

	var responseData struct {
		Data struct {
			Exit struct {
				Code uint `json:"code"`
			} `json:"exit"`
			StdErr string `json:"stderr"`
			StdOut string `json:"stdout"`
		} `json:"data"`
	}
	if err := doJSON(p.config.Client, req, &responseData); err != nil {
		return Result{}, err
	}

	if responseData.Data.Exit.Code != 0 {
		return Result{}, fmt.Errorf("bad OCR execution status code: status code %d: %s", responseData.Data.Exit.Code, responseData.Data.StdErr)
	}

	return Result{Text: responseData.Data.StdOut}, nil
}

func (p *TesseractServer) Close() error {
	p.languages = nil
	return nil
}
