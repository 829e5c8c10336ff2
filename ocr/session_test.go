package ocr_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/opengs/tesswrap/ocr"
	"github.com/opengs/tesswrap/ocr/ocrtest"
)

func rgbaPixels(width, height int) []byte {
	data := make([]byte, width*height*4)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func newInitializedSession(t *testing.T, engine *ocrtest.Engine) *ocr.Session {
	session := ocr.NewSession(engine)
	if !session.Initialize(context.Background(), t.TempDir(), "eng") {
		t.Fatal(session.Err().Error())
	}
	t.Cleanup(func() { session.Close() })
	return session
}

func TestSessionRecognize(t *testing.T) {
	engine := ocrtest.New("hello world", 87)
	session := newInitializedSession(t, engine)

	session.SetImageData(rgbaPixels(4, 2), 4, 2, 16)
	if text := session.RecognizedText(context.Background()); text != "hello world" {
		t.Errorf("unexpected text %q", text)
	}
	if conf := session.MeanConfidence(); conf != 87 {
		t.Errorf("unexpected confidence %d", conf)
	}

	// cached
	session.RecognizedText(context.Background())
	if n := engine.Recognized.Load(); n != 1 {
		t.Errorf("engine ran %d times, want 1", n)
	}
	if engine.Language() != "eng" {
		t.Errorf("engine got language %q", engine.Language())
	}
}

func TestSessionCopiesImage(t *testing.T) {
	engine := ocrtest.New("x", 50)
	session := newInitializedSession(t, engine)

	data := rgbaPixels(2, 2)
	session.SetImageData(data, 2, 2, 8)
	data[0] = 0xAB
	session.RecognizedText(context.Background())

	got := engine.LastImage()
	if got == nil {
		t.Fatal("engine received no image")
	}
	if got.Pix[0] != 0 {
		t.Error("session must hold its own copy of the image")
	}
	if got.BytesPerPixel != 4 || got.Width != 2 || got.Height != 2 {
		t.Errorf("unexpected raster geometry %+v", got)
	}
}

func TestSessionBytesPerPixelFromStride(t *testing.T) {
	cases := map[int]int{12: 4, 9: 3, 3: 1}
	for stride, want := range cases {
		engine := ocrtest.New("x", 50)
		session := newInitializedSession(t, engine)
		session.SetImageData(make([]byte, stride*2), 3, 2, stride)
		session.RecognizedText(context.Background())
		if got := engine.LastImage().BytesPerPixel; got != want {
			t.Errorf("stride %d: got %d bytes per pixel, want %d", stride, got, want)
		}
	}
}

func TestSessionClear(t *testing.T) {
	session := newInitializedSession(t, ocrtest.New("text", 90))
	session.SetImageData(rgbaPixels(2, 2), 2, 2, 8)
	session.RecognizedText(context.Background())

	session.Clear()
	if text := session.RecognizedText(context.Background()); text != "" {
		t.Errorf("expected empty text after clear, got %q", text)
	}
	if conf := session.MeanConfidence(); conf != 0 {
		t.Errorf("expected zero confidence after clear, got %d", conf)
	}
	if session.HasImage() {
		t.Error("image must be released")
	}
	if !session.Initialized() {
		t.Error("clear must keep initialization")
	}
}

func TestSessionWithoutInitialization(t *testing.T) {
	engine := ocrtest.New("text", 90)
	session := ocr.NewSession(engine)
	session.SetImageData(rgbaPixels(2, 2), 2, 2, 8)

	if text := session.RecognizedText(context.Background()); text != "" {
		t.Errorf("expected empty text, got %q", text)
	}
	if session.MeanConfidence() != 0 {
		t.Error("expected zero confidence")
	}
	if engine.Recognized.Load() != 0 {
		t.Error("engine must not run before initialization")
	}
	if _, err := session.Result(context.Background()); !errors.Is(err, ocr.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestSessionWithoutImage(t *testing.T) {
	session := newInitializedSession(t, ocrtest.New("text", 90))
	if text := session.RecognizedText(context.Background()); text != "" {
		t.Errorf("expected empty text, got %q", text)
	}
	if _, err := session.Result(context.Background()); !errors.Is(err, ocr.ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}
}

func TestSessionInitializeFailure(t *testing.T) {
	engine := ocrtest.New("text", 90)
	engine.FailInit = true
	session := ocr.NewSession(engine)

	if session.Initialize(context.Background(), "/nonexistent", "eng") {
		t.Error("expected initialization failure")
	}
	if !errors.Is(session.Err(), ocrtest.ErrInitFailed) {
		t.Errorf("unexpected error %v", session.Err())
	}
	if session.Initialized() {
		t.Error("session must stay uninitialized")
	}
}

func TestSessionEmptyLanguage(t *testing.T) {
	engine := ocrtest.New("text", 90)
	session := ocr.NewSession(engine)
	if session.Initialize(context.Background(), t.TempDir(), " + ") {
		t.Error("expected failure for empty language")
	}
	if engine.Inits.Load() != 0 {
		t.Error("engine must not be initialized with empty language")
	}
}

func TestSessionReinitialize(t *testing.T) {
	engine := ocrtest.New("text", 90)
	session := newInitializedSession(t, engine)
	session.SetImageData(rgbaPixels(2, 2), 2, 2, 8)
	session.RecognizedText(context.Background())

	if !session.Initialize(context.Background(), "other", "deu") {
		t.Fatal(session.Err().Error())
	}
	if engine.Closes.Load() != 1 || engine.Inits.Load() != 2 {
		t.Errorf("expected reload: %d closes, %d inits", engine.Closes.Load(), engine.Inits.Load())
	}
	if session.MeanConfidence() != 0 {
		t.Error("cached result must be dropped on reinitialization")
	}
	if session.Language() != "deu" || session.DataPath() != "other" || engine.Language() != "deu" {
		t.Error("new language must be loaded")
	}

	// image survives reinitialization
	if text := session.RecognizedText(context.Background()); text != "text" {
		t.Errorf("unexpected text %q", text)
	}

	engine.FailInit = true
	if session.Initialize(context.Background(), "other", "deu") {
		t.Error("expected failure")
	}
	if session.Initialized() {
		t.Error("failed reinitialization must leave session uninitialized")
	}
	if text := session.RecognizedText(context.Background()); text != "" {
		t.Errorf("expected empty text, got %q", text)
	}
}

func TestSessionDropsInvalidImage(t *testing.T) {
	engine := ocrtest.New("text", 90)
	session := newInitializedSession(t, engine)
	session.SetImageData(rgbaPixels(2, 2), 2, 2, 8)

	session.SetImageData(make([]byte, 3), 2, 2, 8)
	if session.HasImage() {
		t.Error("short buffer must drop the image")
	}
	session.SetImageData(nil, 0, 0, 0)
	if text := session.RecognizedText(context.Background()); text != "" {
		t.Errorf("expected empty text, got %q", text)
	}
	if session.Err() == nil {
		t.Error("expected error describing dropped image")
	}
}

func TestSessionDropsHugeGeometry(t *testing.T) {
	session := newInitializedSession(t, ocrtest.New("text", 90))
	session.SetImageData(rgbaPixels(1, 1), 1, 1, 4)

	session.SetImageData(make([]byte, 16), 1, 1<<40, 1<<24)
	if session.HasImage() {
		t.Error("geometry larger than the buffer must drop the image")
	}
	if session.Err() == nil {
		t.Error("expected error describing dropped image")
	}
}

func TestSessionValidImageClearsError(t *testing.T) {
	session := newInitializedSession(t, ocrtest.New("text", 90))
	session.SetImageData(make([]byte, 3), 2, 2, 8)
	if session.Err() == nil {
		t.Fatal("expected error describing dropped image")
	}

	session.SetImageData(rgbaPixels(2, 2), 2, 2, 8)
	if err := session.Err(); err != nil {
		t.Errorf("error of the dropped image must be cleared, got %v", err)
	}
	if text := session.RecognizedText(context.Background()); text != "text" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestSessionConfidenceClamp(t *testing.T) {
	for reported, want := range map[int]int{150: 100, -3: 0, 42: 42} {
		session := newInitializedSession(t, ocrtest.New("text", reported))
		session.SetImageData(rgbaPixels(1, 1), 1, 1, 4)
		session.RecognizedText(context.Background())
		if got := session.MeanConfidence(); got != want {
			t.Errorf("reported %d: got %d, want %d", reported, got, want)
		}
	}
}

func TestSessionEngineFailure(t *testing.T) {
	engine := ocrtest.New("text", 90)
	engine.FailRecognize = true
	session := newInitializedSession(t, engine)
	session.SetImageData(rgbaPixels(1, 1), 1, 1, 4)

	if text := session.RecognizedText(context.Background()); text != "" {
		t.Errorf("expected empty text, got %q", text)
	}
	if !errors.Is(session.Err(), ocrtest.ErrRecognizeFailed) {
		t.Errorf("unexpected error %v", session.Err())
	}

	// failures are not cached
	engine.FailRecognize = false
	if text := session.RecognizedText(context.Background()); text != "text" {
		t.Errorf("unexpected text %q", text)
	}
}

func TestSessionEnginePanic(t *testing.T) {
	engine := ocrtest.New("text", 90)
	engine.PanicRecognize = true
	session := newInitializedSession(t, engine)
	session.SetImageData(rgbaPixels(1, 1), 1, 1, 4)

	if text := session.RecognizedText(context.Background()); text != "" {
		t.Errorf("expected empty text, got %q", text)
	}
	if session.Err() == nil {
		t.Error("expected panic to be reported as error")
	}
}

func TestSessionClose(t *testing.T) {
	engine := ocrtest.New("text", 90)
	session := newInitializedSession(t, engine)
	if err := session.Close(); err != nil {
		t.Error(err.Error())
	}
	if session.Initialized() || engine.Closes.Load() != 1 {
		t.Error("close must release the engine")
	}
	// second close is a no-op
	if err := session.Close(); err != nil || engine.Closes.Load() != 1 {
		t.Error("second close must not touch the engine")
	}
}

func TestAvailableLanguages(t *testing.T) {
	if got := ocr.AvailableLanguages("/nonexistent/tessdata"); got == nil || len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}

	dir := t.TempDir()
	for _, name := range []string{"eng.traineddata", "ukr.traineddata", "readme.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err.Error())
		}
	}
	if diff := cmp.Diff([]string{"eng", "ukr"}, ocr.AvailableLanguages(dir)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
