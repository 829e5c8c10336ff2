// Package ocrtest provides an in-memory OCR engine for tests.
package ocrtest

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/opengs/tesswrap/ocr"
	"github.com/opengs/tesswrap/raster"
)

var ErrInitFailed = errors.New("fake engine init failed")
var ErrRecognizeFailed = errors.New("fake engine recognition failed")

// Engine returning a fixed result. Counters are safe to read while the engine is in use.
type Engine struct {
	EngineName string
	Result     ocr.Result
	// Init fails with ErrInitFailed
	FailInit bool
	// Recognize fails with ErrRecognizeFailed
	FailRecognize bool
	// Recognize panics
	PanicRecognize bool
	// Blocks every recognition until closed
	Gate chan struct{}

	Inits      atomic.Int32
	Closes     atomic.Int32
	Recognized atomic.Int32
	Active     atomic.Int32
	MaxActive  atomic.Int32

	lock        sync.Mutex
	initialized bool
	dataPath    string
	language    string
	last        *raster.Raster
}

func New(text string, confidence int) *Engine {
	return &Engine{EngineName: "fake", Result: ocr.Result{Text: text, Confidence: confidence}}
}

func (e *Engine) Name() string {
	return e.EngineName
}

func (e *Engine) Init(ctx context.Context, dataPath string, language string) error {
	e.Inits.Add(1)
	if e.FailInit {
		return ErrInitFailed
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	e.initialized = true
	e.dataPath = dataPath
	e.language = language
	return nil
}

func (e *Engine) Recognize(ctx context.Context, image *raster.Raster) (ocr.Result, error) {
	active := e.Active.Add(1)
	defer e.Active.Add(-1)
	for {
		peak := e.MaxActive.Load()
		if active <= peak || e.MaxActive.CompareAndSwap(peak, active) {
			break
		}
	}

	if e.Gate != nil {
		select {
		case <-e.Gate:
		case <-ctx.Done():
			return ocr.Result{}, ctx.Err()
		}
	}
	if e.PanicRecognize {
		panic("fake engine panic")
	}

	e.lock.Lock()
	defer e.lock.Unlock()
	if !e.initialized {
		return ocr.Result{}, ocr.ErrNotInitialized
	}
	if e.FailRecognize {
		return ocr.Result{}, ErrRecognizeFailed
	}
	e.Recognized.Add(1)
	e.last = image
	return e.Result, nil
}

func (e *Engine) Close() error {
	e.Closes.Add(1)
	e.lock.Lock()
	defer e.lock.Unlock()
	e.initialized = false
	return nil
}

// Raster passed to the last successful recognition
func (e *Engine) LastImage() *raster.Raster {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.last
}

func (e *Engine) Language() string {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.language
}

func (e *Engine) DataPath() string {
	e.lock.Lock()
	defer e.lock.Unlock()
	return e.dataPath
}
