package ocr

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/opengs/tesswrap/raster"
	"github.com/opengs/tesswrap/tessdata"
)

type PaddleConfig struct {
	// HTTP client used to make requests to the server
	Client *http.Client `json:"-" mapstructure:"-"`
	// Server base URL. For example http://127.0.0.1:8884
	BaseURL string `json:"baseURL" mapstructure:"baseURL"`
	// Format used to upload images. Default is "image/png".
	TransportMimeType string `json:"transportMimeType" mapstructure:"transportMimeType"`
}

func DefaultPaddleConfig() PaddleConfig {
	return PaddleConfig{
		BaseURL:           "http://127.0.0.1:8884",
		Client:            http.DefaultClient,
		TransportMimeType: "image/png",
	}
}

// PaddleOCR behind an HTTP wrapper accepting `POST /ocr` with "file" and comma separated "languages".
// Languages are sent as tesseract codes.
type Paddle struct {
	config    PaddleConfig
	languages []string
}

func NewPaddle(config PaddleConfig) *Paddle {
	if config.TransportMimeType == "" {
		config.TransportMimeType = "image/png"
	}
	return &Paddle{
		config: config,
	}
}

func (p *Paddle) Name() string {
	return "paddle"
}

func (p *Paddle) Init(ctx context.Context, dataPath string, language string) error {
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

func (p *Paddle) Recognize(ctx context.Context, image *raster.Raster) (Result, error) {
	if len(p.languages) == 0 {
		return Result{}, ErrNotInitialized
	}

	encoded, err := encodeForUpload(image, p.config.TransportMimeType)
	if err != nil {
		return Result{}, err
	}
	req, err := newUploadRequest(ctx, strings.TrimSuffix(p.config.BaseURL, "/")+"/ocr", encoded, map[string]string{"languages": strings.Join(p.languages, ",")})
	if err != nil {
		return Result{}, err
	}

	var responseData struct {
		Text string `json:"text"`
		// Optional, 0..1
		Confidence *float64 `json:"confidence"`
	}
	if err := doJSON(p.config.Client, req, &responseData); err != nil {
		return Result{}, err
	}

	result := Result{Text: responseData.Text}
	if responseData.Confidence != nil {
		result.Confidence = int(math.Round(*responseData.Confidence * 100))
	}
	return result, nil
}

func (p *Paddle) Close() error {
	p.languages = nil
	return nil
}
