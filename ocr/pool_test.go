package ocr_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/opengs/tesswrap/ocr"
	"github.com/opengs/tesswrap/ocr/ocrtest"
)

func pngImage(t *testing.T) []byte {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range 8 {
		img.Set(i, i, color.Black)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err.Error())
	}
	return buf.Bytes()
}

func TestSessionPool(t *testing.T) {
	engine := ocrtest.New("pooled", 75)
	pool := ocr.NewSessionPool(2, func() ocr.Engine { return engine }, "", "eng")
	if err := pool.Init(context.Background()); err != nil {
		t.Fatal(err.Error())
	}
	defer pool.Destroy(context.Background())

	result, err := pool.Recognize(context.Background(), bytes.NewReader(pngImage(t)))
	if err != nil {
		t.Error(err.Error())
		return
	}
	if result.Text != "pooled" || result.Confidence != 75 {
		t.Errorf("unexpected result %+v", result)
	}
	if img := engine.LastImage(); img == nil || img.Width != 8 || img.Height != 8 {
		t.Error("engine must receive decoded raster")
	}
	if !pool.IsMimeTypeSupported("image/webp") || pool.IsMimeTypeSupported("application/pdf") {
		t.Error("unexpected mime type support")
	}
}

func TestSessionPoolBounded(t *testing.T) {
	var engines []*ocrtest.Engine
	gate := make(chan struct{})
	var lock sync.Mutex
	factory := func() ocr.Engine {
		lock.Lock()
		defer lock.Unlock()
		e := ocrtest.New("x", 50)
		e.Gate = gate
		engines = append(engines, e)
		return e
	}

	pool := ocr.NewSessionPool(2, factory, "", "eng")
	if err := pool.Init(context.Background()); err != nil {
		t.Fatal(err.Error())
	}
	if len(engines) != 2 {
		t.Fatalf("expected 2 engines, got %d", len(engines))
	}

	data := pngImage(t)
	var wg sync.WaitGroup
	for range 6 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := pool.Recognize(context.Background(), bytes.NewReader(data)); err != nil {
				t.Error(err.Error())
			}
		}()
	}

	time.Sleep(50 * time.Millisecond)
	active := engines[0].Active.Load() + engines[1].Active.Load()
	if active > 2 {
		t.Errorf("%d recognitions in flight, pool size is 2", active)
	}
	close(gate)
	wg.Wait()

	total := engines[0].Recognized.Load() + engines[1].Recognized.Load()
	if total != 6 {
		t.Errorf("expected 6 recognitions, got %d", total)
	}
	if engines[0].MaxActive.Load() > 1 || engines[1].MaxActive.Load() > 1 {
		t.Error("a session must not be used by two goroutines at once")
	}

	if err := pool.Destroy(context.Background()); err != nil {
		t.Error(err.Error())
	}
}

func TestSessionPoolInitFailure(t *testing.T) {
	calls := 0
	var first *ocrtest.Engine
	factory := func() ocr.Engine {
		calls++
		e := ocrtest.New("x", 50)
		if calls == 1 {
			first = e
		} else {
			e.FailInit = true
		}
		return e
	}

	pool := ocr.NewSessionPool(3, factory, "", "eng")
	err := pool.Init(context.Background())
	if !errors.Is(err, ocrtest.ErrInitFailed) {
		t.Errorf("unexpected error %v", err)
	}
	if first.Closes.Load() != 1 {
		t.Error("already initialized sessions must be released")
	}
	if _, err := pool.Recognize(context.Background(), bytes.NewReader(pngImage(t))); !errors.Is(err, ocr.ErrPoolEmpty) {
		t.Errorf("expected ErrPoolEmpty, got %v", err)
	}
}

func TestSessionPoolBadImage(t *testing.T) {
	pool := ocr.NewSessionPool(1, func() ocr.Engine { return ocrtest.New("x", 50) }, "", "eng")
	if err := pool.Init(context.Background()); err != nil {
		t.Fatal(err.Error())
	}
	defer pool.Destroy(context.Background())

	if _, err := pool.Recognize(context.Background(), bytes.NewBufferString("plain text")); err == nil {
		t.Error("expected error for unsupported input")
	}
	// the session must be back in the pool
	if _, err := pool.Recognize(context.Background(), bytes.NewReader(pngImage(t))); err != nil {
		t.Error(err.Error())
	}
}

func TestSessionPoolInitTwice(t *testing.T) {
	var created int
	factory := func() ocr.Engine {
		created++
		return ocrtest.New("x", 50)
	}
	pool := ocr.NewSessionPool(2, factory, "", "eng")
	if pool.EngineName() != "" {
		t.Error("engine name must be empty before initialization")
	}
	if err := pool.Init(context.Background()); err != nil {
		t.Fatal(err.Error())
	}
	defer pool.Destroy(context.Background())
	if pool.EngineName() != "fake" {
		t.Errorf("unexpected engine name %q", pool.EngineName())
	}

	if err := pool.Init(context.Background()); !errors.Is(err, ocr.ErrPoolInitialized) {
		t.Errorf("expected ErrPoolInitialized, got %v", err)
	}
	if created != 2 {
		t.Errorf("expected 2 engines, got %d", created)
	}

	// destroyed pool can be initialized again
	if err := pool.Destroy(context.Background()); err != nil {
		t.Fatal(err.Error())
	}
	if err := pool.Init(context.Background()); err != nil {
		t.Error(err.Error())
	}
}
