package tessdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Model type used by Tesseract
type ModelType string

// The fastest available model with low accuracy
const ModelFast ModelType = "FAST"

// Model that runs by default in tesseract instances
const ModelNormal ModelType = "NORMAL"

// Model with best quality. Requires more processing power
const ModelBestQuality ModelType = "BEST_QUALITY"

var modelBaseURLs = map[ModelType]string{
	ModelFast:        "https://github.com/tesseract-ocr/tessdata_fast/raw/refs/heads/main/",
	ModelNormal:      "https://github.com/tesseract-ocr/tessdata/raw/refs/heads/main/",
	ModelBestQuality: "https://github.com/tesseract-ocr/tessdata_best/raw/refs/heads/main/",
}

var ErrUnknownModelType = errors.New("unknown model type")

func ParseModelType(s string) (ModelType, error) {
	t := ModelType(strings.ToUpper(strings.ReplaceAll(s, "-", "_")))
	if _, ok := modelBaseURLs[t]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownModelType, s)
	}
	return t, nil
}

// Downloads trained data files from the tessdata repositories
type Downloader struct {
	// Default is `ModelNormal`
	ModelType ModelType
	// Overrides repository URL selected by `ModelType`. Must end with "/".
	BaseURL string
	// Default is `http.DefaultClient`
	Client *http.Client
	Logger zerolog.Logger
}

func NewDownloader(modelType ModelType) *Downloader {
	return &Downloader{ModelType: modelType, Logger: zerolog.Nop()}
}

// Download link of the trained data file for the language
func (d *Downloader) URL(code string) (string, error) {
	base := d.BaseURL
	if base == "" {
		modelType := d.ModelType
		if modelType == "" {
			modelType = ModelNormal
		}
		var ok bool
		if base, ok = modelBaseURLs[modelType]; !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownModelType, modelType)
		}
	}
	return base + code + Extension, nil
}

func (d *Downloader) client() *http.Client {
	if d.Client != nil {
		return d.Client
	}
	return http.DefaultClient
}

// Downloads trained data for the language into dataPath. The file is written to a temporary
// file first and renamed into place, so a failed download never leaves a partial model behind.
func (d *Downloader) Install(ctx context.Context, dataPath string, code string) error {
	if code == "" || strings.Contains(code, "..") {
		return fmt.Errorf("invalid language code: %q", code)
	}
	link, err := d.URL(code)
	if err != nil {
		return err
	}
	destination := FilePath(dataPath, code)
	if err := os.MkdirAll(filepath.Dir(destination), 0700); err != nil {
		return errors.Join(errors.New("failed to create folder for models"), err)
	}

	d.Logger.Debug().Str("language", code).Str("url", link).Msg("downloading trained data")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return errors.Join(errors.New("failed to build download request"), err)
	}
	resp, err := d.client().Do(req)
	if err != nil {
		return errors.Join(errors.New("failed to download language model "+code), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download language model %s: bad status: %s", code, resp.Status)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destination), "*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}()

	written, err := io.Copy(tmpFile, resp.Body)
	if err != nil {
		return errors.Join(errors.New("failed to write language model "+code), err)
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpFile.Name(), destination); err != nil {
		return errors.Join(errors.New("failed to move language model into place"), err)
	}

	d.Logger.Info().Str("language", code).Int64("bytes", written).Msg("trained data installed")
	return nil
}

// Installs every language that is missing in dataPath
func (d *Downloader) EnsureInstalled(ctx context.Context, dataPath string, codes ...string) error {
	for _, code := range codes {
		if _, err := os.Stat(FilePath(dataPath, code)); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return errors.Join(errors.New("unexpected error while checking if model exists"), err)
		}
		if err := d.Install(ctx, dataPath, code); err != nil {
			return err
		}
	}
	return nil
}

// Deletes trained data of the language from dataPath
func Remove(dataPath string, code string) error {
	if err := os.Remove(FilePath(dataPath, code)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrLanguageNotInstalled, code)
		}
		return err
	}
	return nil
}

// Total size of installed trained data files in bytes
func InstalledSize(dataPath string) int64 {
	var total int64
	for _, code := range AvailableLanguages(dataPath) {
		if info, err := os.Stat(FilePath(dataPath, code)); err == nil {
			total += info.Size()
		}
	}
	return total
}
