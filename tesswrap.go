// Package tesswrap wires OCR engines, trained data management and session pooling into a
// ready to use recognition provider.
package tesswrap

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/opengs/tesswrap/ocr"
	"github.com/opengs/tesswrap/ocr/llm"
	"github.com/opengs/tesswrap/server"
	"github.com/opengs/tesswrap/tessdata"
	"github.com/rs/zerolog"
)

type EngineKind string

// Tesseract linked into the binary, requires `tesswrap_feature_tesseract` build tag
const EngineTesseract EngineKind = "TESSERACT"

// Installed `tesseract` command line tool
const EngineTesseractCLI EngineKind = "TESSERACT_CLI"

// Remote https://github.com/otiai10/ocrserver instance
const EngineTesseractServer EngineKind = "TESSERACT_SERVER"

// Remote PaddleOCR HTTP wrapper
const EnginePaddle EngineKind = "PADDLE"

// Vision model over OpenAI compatible API
const EngineLLM EngineKind = "LLM"

var ErrUnknownEngine = errors.New("unknown engine")

func ParseEngineKind(s string) (EngineKind, error) {
	kind := EngineKind(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")))
	switch kind {
	case EngineTesseract, EngineTesseractCLI, EngineTesseractServer, EnginePaddle, EngineLLM:
		return kind, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownEngine, s)
}

// Whether engine reads trained data from the local data path
func (k EngineKind) UsesLocalTessdata() bool {
	return k == EngineTesseract || k == EngineTesseractCLI
}

type Config struct {
	// Engines in priority order. More than one engine makes a fallback chain. Default is ["TESSERACT"]
	Engines []EngineKind `mapstructure:"engines"`
	// Folder with trained data. Default is `DefaultDataPath()`
	DataPath string `mapstructure:"dataPath"`
	// Tesseract language string, e.g. "eng+deu". BCP 47 tags like "de-DE" are mapped. Default is "eng"
	Language string `mapstructure:"language"`
	// Maximum number of images recognized at the same time. Default is 1
	PoolSize uint32 `mapstructure:"poolSize"`

	// Download missing trained data on startup for engines using the local data path
	AutoDownload bool `mapstructure:"autoDownload"`
	// Model downloaded with `AutoDownload`. Default is NORMAL
	ModelType tessdata.ModelType `mapstructure:"modelType"`
	// Overrides repository URL of the model type
	DownloadBaseURL string `mapstructure:"downloadBaseURL"`

	Tesseract       ocr.TesseractConfig       `mapstructure:"tesseract"`
	TesseractCLI    ocr.TesseractCLIConfig    `mapstructure:"tesseractCLI"`
	TesseractServer ocr.TesseractServerConfig `mapstructure:"tesseractServer"`
	Paddle          ocr.PaddleConfig          `mapstructure:"paddle"`
	LLM             llm.Config                `mapstructure:"llm"`
	Server          server.Config             `mapstructure:"server"`

	// PostgreSQL URL for recognition results of batch sources. Empty disables the store
	Store string `mapstructure:"store"`
	// Schema of the store tables. Default is "public"
	StoreSchema string `mapstructure:"storeSchema"`
}

// Per user trained data folder, "~/.tesswrap/tessdata"
func DefaultDataPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return "tessdata"
	}
	return filepath.Join(home, ".tesswrap", "tessdata")
}

func DefaultConfig() Config {
	return Config{
		Engines:         []EngineKind{EngineTesseract},
		DataPath:        DefaultDataPath(),
		Language:        "eng",
		PoolSize:        1,
		ModelType:       tessdata.ModelNormal,
		Tesseract:       ocr.DefaultTesseractConfig(),
		TesseractCLI:    ocr.DefaultTesseractCLIConfig(),
		TesseractServer: ocr.DefaultTesseractServerConfig(),
		Paddle:          ocr.DefaultPaddleConfig(),
		LLM:             llm.DefaultConfig(),
		Server:          server.DefaultConfig(),
		StoreSchema:     "public",
	}
}

// Normalized language string with BCP 47 tags mapped to tesseract codes
func (c Config) TesseractLanguage() string {
	return tessdata.JoinLanguages(tessdata.SplitLanguages(c.Language)...)
}

func (c Config) Validate() error {
	if len(c.Engines) == 0 {
		return errors.New("no engine configured")
	}
	for _, kind := range c.Engines {
		if _, err := ParseEngineKind(string(kind)); err != nil {
			return err
		}
	}
	if c.TesseractLanguage() == "" {
		return errors.New("language is empty")
	}
	return nil
}

func (c Config) newEngine(kind EngineKind) (ocr.Engine, error) {
	switch kind {
	case EngineTesseract:
		return ocr.NewTesseract(c.Tesseract), nil
	case EngineTesseractCLI:
		return ocr.NewTesseractCLI(c.TesseractCLI), nil
	case EngineTesseractServer:
		return ocr.NewTesseractServer(c.TesseractServer), nil
	case EnginePaddle:
		return ocr.NewPaddle(c.Paddle), nil
	case EngineLLM:
		return llm.New(c.LLM), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, kind)
}

// Factory of configured engines. Several engines are chained with `ocr.NewFallback`.
func (c Config) EngineFactory(logger zerolog.Logger) (ocr.EngineFactory, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return func() ocr.Engine {
		engines := make([]ocr.Engine, 0, len(c.Engines))
		for _, kind := range c.Engines {
			// kinds are validated above
			engine, _ := c.newEngine(kind)
			engines = append(engines, engine)
		}
		if len(engines) == 1 {
			return engines[0]
		}
		return ocr.NewFallback(engines...).WithLogger(logger)
	}, nil
}

// Session that is not initialized yet
func (c Config) NewSession(logger zerolog.Logger) (*ocr.Session, error) {
	factory, err := c.EngineFactory(logger)
	if err != nil {
		return nil, err
	}
	return ocr.NewSession(factory(), ocr.WithLogger(logger)), nil
}

func (c Config) downloader(logger zerolog.Logger) *tessdata.Downloader {
	d := tessdata.NewDownloader(c.ModelType)
	d.BaseURL = c.DownloadBaseURL
	d.Logger = logger
	return d
}

// Downloads missing trained data when `AutoDownload` is on and some engine reads the local data path
func (c Config) EnsureTessdata(ctx context.Context, logger zerolog.Logger) error {
	if !c.AutoDownload || c.DataPath == "" {
		return nil
	}
	local := false
	for _, kind := range c.Engines {
		local = local || kind.UsesLocalTessdata()
	}
	if !local {
		return nil
	}
	if err := c.downloader(logger).EnsureInstalled(ctx, c.DataPath, tessdata.SplitLanguages(c.TesseractLanguage())...); err != nil {
		return errors.Join(errors.New("failed to load language models"), err)
	}
	return nil
}

// Identifies engines and language producing results, e.g. "TESSERACT,LLM:eng+deu"
func (c Config) Fingerprint() string {
	kinds := make([]string, 0, len(c.Engines))
	for _, kind := range c.Engines {
		kinds = append(kinds, string(kind))
	}
	return strings.Join(kinds, ",") + ":" + c.TesseractLanguage()
}

// Initialized pool of sessions over configured engines
type TessWrap struct {
	config Config
	pool   *ocr.SessionPool
	logger zerolog.Logger
}

func New(ctx context.Context, config Config, logger zerolog.Logger) (*TessWrap, error) {
	factory, err := config.EngineFactory(logger)
	if err != nil {
		return nil, errors.Join(errors.New("bad configuration"), err)
	}
	if err := config.EnsureTessdata(ctx, logger); err != nil {
		return nil, err
	}

	pool := ocr.NewSessionPool(config.PoolSize, factory, config.DataPath, config.TesseractLanguage(), ocr.WithLogger(logger))
	if err := pool.Init(ctx); err != nil {
		return nil, errors.Join(errors.New("failed to initialize OCR engines"), err)
	}
	logger.Info().
		Str("language", config.TesseractLanguage()).
		Str("dataPath", config.DataPath).
		Uint32("poolSize", pool.Size()).
		Msg("OCR engines initialized")

	return &TessWrap{config: config, pool: pool, logger: logger}, nil
}

func (t *TessWrap) Provider() ocr.Provider {
	return t.pool
}

func (t *TessWrap) Pool() *ocr.SessionPool {
	return t.pool
}

func (t *TessWrap) Config() Config {
	return t.config
}

// HTTP API over the pool
func (t *TessWrap) Server() *server.Server {
	return server.New(t.pool, t.config.Server, t.logger)
}

func (t *TessWrap) Destroy(ctx context.Context) error {
	return t.pool.Destroy(ctx)
}
