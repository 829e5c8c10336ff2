package ocr

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/opengs/tesswrap/raster"
	"github.com/opengs/tesswrap/tessdata"
	"github.com/rs/zerolog"
)

var ErrNoImage = errors.New("no image was submitted")

type SessionOption func(*Session)

func WithLogger(logger zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// Recognition session bound to one engine. It owns a copy of the submitted image and caches the
// recognition result for it. Methods are safe for concurrent use, but calls are serialized.
//
// Failures never panic and never escape as errors from the basic operations: initialization reports
// a boolean, text and confidence fall back to empty values. `Err` returns the last failure.
type Session struct {
	lock   sync.Mutex
	engine Engine
	logger zerolog.Logger

	dataPath    string
	language    string
	initialized bool

	image  *raster.Raster
	result *Result
	err    error
}

func NewSession(engine Engine, opts ...SessionOption) *Session {
	s := &Session{
		engine: engine,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("engine", engine.Name()).Logger()
	return s
}

// Loads trained data for the language. Initializing an initialized session closes the engine and
// loads the data again; the cached result is dropped. On failure the session stays uninitialized.
func (s *Session) Initialize(ctx context.Context, dataPath string, language string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.initialized {
		if err := s.closeEngine(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to release engine before reinitialization")
		}
		s.initialized = false
	}
	s.result = nil
	s.dataPath = dataPath
	s.language = language

	if err := s.initEngine(ctx, dataPath, language); err != nil {
		s.err = errors.Join(fmt.Errorf("failed to initialize %s with language %q", s.engine.Name(), language), err)
		s.logger.Error().Err(err).Str("dataPath", dataPath).Str("language", language).Msg("initialization failed")
		return false
	}

	s.initialized = true
	s.err = nil
	s.logger.Debug().Str("dataPath", dataPath).Str("language", language).Msg("session initialized")
	return true
}

func (s *Session) initEngine(ctx context.Context, dataPath string, language string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine panicked: %v", r)
		}
	}()

	if len(tessdata.SplitLanguages(language)) == 0 {
		return errors.New("language is empty")
	}
	return s.engine.Init(ctx, dataPath, language)
}

func (s *Session) closeEngine() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine panicked: %v", r)
		}
	}()
	return s.engine.Close()
}

// Replaces held image with a copy of the buffer. Bytes per pixel are derived from the stride:
// 4 (RGBA), 3 (RGB) or 1 (gray). Invalid geometry drops the held image and is reported by `Err`
// until the next image is set.
func (s *Session) SetImageData(data []byte, width int, height int, bytesPerRow int) {
	image, err := raster.New(data, width, height, bytesPerRow)
	if err != nil {
		s.logger.Warn().Err(err).Int("width", width).Int("height", height).Int("bytesPerRow", bytesPerRow).Msg("image dropped")
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.image = image
	s.result = nil
	s.err = err
}

// Replaces held image with already validated raster. The raster must not be modified afterwards.
func (s *Session) SetRaster(image *raster.Raster) error {
	if err := image.Validate(); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.image = image
	s.result = nil
	return nil
}

// Runs recognition on the held image or returns the cached result.
func (s *Session) Result(ctx context.Context) (Result, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.result != nil {
		return *s.result, nil
	}
	if !s.initialized {
		return Result{}, ErrNotInitialized
	}
	if s.image == nil {
		return Result{}, ErrNoImage
	}

	result, err := s.recognize(ctx)
	if err != nil {
		s.err = errors.Join(fmt.Errorf("recognition with %s failed", s.engine.Name()), err)
		return Result{}, s.err
	}
	result.Confidence = clampConfidence(result.Confidence)
	s.result = &result

	s.logger.Debug().Int("chars", len(result.Text)).Int("confidence", result.Confidence).Msg("image recognized")
	return result, nil
}

func (s *Session) recognize(ctx context.Context) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine panicked: %v", r)
		}
	}()
	return s.engine.Recognize(ctx, s.image)
}

// Text of the held image. Empty if there is no image, the session is not initialized or the
// engine failed.
func (s *Session) RecognizedText(ctx context.Context) string {
	result, err := s.Result(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoImage) && !errors.Is(err, ErrNotInitialized) {
			s.logger.Error().Err(err).Msg("recognition failed")
		}
		return ""
	}
	return result.Text
}

// Confidence of the last recognition of the held image in range 0..100. Zero if none ran.
func (s *Session) MeanConfidence() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.result == nil {
		return 0
	}
	return s.result.Confidence
}

// Drops held image and recognition result. Initialization is kept.
func (s *Session) Clear() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.image = nil
	s.result = nil
}

// Releases the engine. The session can be initialized again.
func (s *Session) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.image = nil
	s.result = nil
	if !s.initialized {
		return nil
	}
	s.initialized = false
	return s.closeEngine()
}

// Last initialization or recognition error
func (s *Session) Err() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.err
}

func (s *Session) Initialized() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.initialized
}

func (s *Session) HasImage() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.image != nil
}

func (s *Session) Language() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.language
}

func (s *Session) DataPath() string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.dataPath
}

func (s *Session) EngineName() string {
	return s.engine.Name()
}

// Sorted codes of trained data files in dataPath. Missing path gives an empty list.
func AvailableLanguages(dataPath string) []string {
	return tessdata.AvailableLanguages(dataPath)
}
