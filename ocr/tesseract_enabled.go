//go:build tesswrap_feature_tesseract

package ocr

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/opengs/tesswrap/raster"
	"github.com/opengs/tesswrap/tessdata"
	"github.com/otiai10/gosseract/v2"
)

const FeatureTesseractEnabled = true

// Tesseract linked into the binary through gosseract
type Tesseract struct {
	client *gosseract.Client
	lock   sync.Mutex
	config TesseractConfig
}

func NewTesseract(config TesseractConfig) *Tesseract {
	if config.TransportMimeType == "" {
		config.TransportMimeType = DefaultTransportMimeType()
	}
	return &Tesseract{
		config: config,
	}
}

func (p *Tesseract) Name() string {
	return "tesseract"
}

func (p *Tesseract) Init(ctx context.Context, dataPath string, language string) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.client != nil {
		p.client.Close()
		p.client = nil
	}
	if err := checkTessdata(dataPath, language); err != nil {
		return err
	}

	client := gosseract.NewClient()
	if dataPath != "" {
		if err := client.SetTessdataPrefix(dataPath); err != nil {
			client.Close()
			return errors.Join(errors.New("failed to set trained data folder"), err)
		}
	}
	if err := client.SetLanguage(tessdata.SplitLanguages(language)...); err != nil {
		client.Close()
		return errors.Join(errors.New("failed to set languages"), err)
	}
	if err := client.DisableOutput(); err != nil {
		client.Close()
		return errors.Join(errors.New("failed to disable logs"), err)
	}
	for key, val := range p.config.Variables {
		if err := client.SetVariable(gosseract.SettableVariable(key), val); err != nil {
			client.Close()
			return errors.Join(fmt.Errorf("failed to set variable [%s]", key), err)
		}
	}
	if p.config.PageSegMode != 0 {
		if err := client.SetPageSegMode(gosseract.PageSegMode(p.config.PageSegMode)); err != nil {
			client.Close()
			return errors.Join(errors.New("failed to set page segmentation mode"), err)
		}
	}

	p.client = client
	return nil
}

func (p *Tesseract) Recognize(ctx context.Context, image *raster.Raster) (Result, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.client == nil {
		return Result{}, ErrNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	encoded, err := raster.EncodeBytes(image, p.config.TransportMimeType)
	if err != nil {
		return Result{}, errors.Join(errors.New("failed to prepare image for OCR"), err)
	}
	if err := p.client.SetImageFromBytes(encoded); err != nil {
		return Result{}, errors.Join(errors.New("failed to prepare image for OCR"), err)
	}
	text, err := p.client.Text()
	if err != nil {
		return Result{}, errors.Join(errors.New("OCR process failed"), err)
	}

	boxes, err := p.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return Result{}, errors.Join(errors.New("failed to read word confidences"), err)
	}
	var total float64
	for _, box := range boxes {
		total += box.Confidence
	}
	confidence := 0
	if len(boxes) > 0 {
		confidence = int(math.Round(total / float64(len(boxes))))
	}

	return Result{Text: text, Confidence: confidence}, nil
}

func (p *Tesseract) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}
