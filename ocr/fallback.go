package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/opengs/tesswrap/raster"
	"github.com/rs/zerolog"
)

var ErrAllEnginesFailed = errors.New("all engines failed")

// Chains engines by priority. Init succeeds when at least one engine loaded, recognition uses the
// first initialized engine that does not fail.
type Fallback struct {
	engines []Engine
	ready   []bool
	logger  zerolog.Logger
}

func NewFallback(engines ...Engine) *Fallback {
	return &Fallback{
		engines: engines,
		ready:   make([]bool, len(engines)),
		logger:  zerolog.Nop(),
	}
}

func (f *Fallback) WithLogger(logger zerolog.Logger) *Fallback {
	f.logger = logger
	return f
}

func (f *Fallback) Name() string {
	names := make([]string, 0, len(f.engines))
	for _, e := range f.engines {
		names = append(names, e.Name())
	}
	return "fallback(" + strings.Join(names, ",") + ")"
}

func (f *Fallback) Init(ctx context.Context, dataPath string, language string) error {
	var errs []error
	anyReady := false
	for i, e := range f.engines {
		err := e.Init(ctx, dataPath, language)
		f.ready[i] = err == nil
		if err != nil {
			f.logger.Warn().Err(err).Str("engine", e.Name()).Msg("engine unavailable")
			errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
			continue
		}
		anyReady = true
	}
	if !anyReady {
		return errors.Join(append([]error{ErrAllEnginesFailed}, errs...)...)
	}
	return nil
}

func (f *Fallback) Recognize(ctx context.Context, image *raster.Raster) (Result, error) {
	var errs []error
	for i, e := range f.engines {
		if !f.ready[i] {
			continue
		}
		result, err := e.Recognize(ctx, image)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		f.logger.Warn().Err(err).Str("engine", e.Name()).Msg("engine failed, trying next one")
		errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
	}
	if len(errs) == 0 {
		return Result{}, ErrNotInitialized
	}
	return Result{}, errors.Join(append([]error{ErrAllEnginesFailed}, errs...)...)
}

func (f *Fallback) Close() error {
	var errs []error
	for i, e := range f.engines {
		if !f.ready[i] {
			continue
		}
		f.ready[i] = false
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
