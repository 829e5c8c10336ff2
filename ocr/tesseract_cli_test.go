package ocr_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/opengs/tesswrap/ocr"
	"github.com/opengs/tesswrap/raster"
)

const sampleTSV = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
	"1\t1\t0\t0\t0\t0\t0\t0\t640\t480\t-1\t\n" +
	"2\t1\t1\t0\t0\t0\t10\t10\t300\t60\t-1\t\n" +
	"3\t1\t1\t1\t0\t0\t10\t10\t300\t60\t-1\t\n" +
	"4\t1\t1\t1\t1\t0\t10\t10\t300\t20\t-1\t\n" +
	"5\t1\t1\t1\t1\t1\t10\t10\t100\t20\t96.5\tHello\n" +
	"5\t1\t1\t1\t1\t2\t120\t10\t100\t20\t93.5\tworld\n" +
	"4\t1\t1\t1\t2\t0\t10\t40\t300\t20\t-1\t\n" +
	"5\t1\t1\t1\t2\t1\t10\t40\t100\t20\t90\tsecond\n" +
	"5\t1\t1\t1\t2\t2\t10\t40\t100\t20\t-1\t \n" +
	"5\t1\t2\t1\t1\t1\t10\t100\t100\t20\t80\tnext\n"

func TestParseTSV(t *testing.T) {
	result, err := ocr.ParseTSV([]byte(sampleTSV))
	if err != nil {
		t.Error(err.Error())
		return
	}
	want := "Hello world\nsecond\n\nnext"
	if result.Text != want {
		t.Errorf("unexpected text %q, want %q", result.Text, want)
	}
	if result.Confidence != 90 {
		t.Errorf("unexpected confidence %d", result.Confidence)
	}
}

func TestParseTSVEmpty(t *testing.T) {
	result, err := ocr.ParseTSV([]byte("level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n"))
	if err != nil {
		t.Error(err.Error())
		return
	}
	if result.Text != "" || result.Confidence != 0 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestParseTSVBadRow(t *testing.T) {
	if _, err := ocr.ParseTSV([]byte("5\t1\t1\n")); err == nil {
		t.Error("expected error for truncated row")
	}
}

type recordedCall struct {
	name  string
	args  []string
	stdin []byte
}

func newTessdataDir(t *testing.T, languages ...string) string {
	dir := t.TempDir()
	for _, l := range languages {
		if err := os.WriteFile(filepath.Join(dir, l+".traineddata"), []byte("model"), 0644); err != nil {
			t.Fatal(err.Error())
		}
	}
	return dir
}

func TestTesseractCLI(t *testing.T) {
	var calls []recordedCall
	run := func(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error) {
		calls = append(calls, recordedCall{name, args, stdin})
		if slices.Contains(args, "--version") {
			return []byte("tesseract 5.3.4\n leptonica-1.84.1\n"), nil
		}
		return []byte(sampleTSV), nil
	}

	dir := newTessdataDir(t, "eng", "deu")
	config := ocr.DefaultTesseractCLIConfig()
	config.Path = "/opt/tesseract"
	config.PageSegMode = 6
	config.Variables = map[string]string{"tessedit_do_invert": "0", "debug_file": "/dev/null"}
	engine := ocr.NewTesseractCLIWithRunner(config, run)

	if err := engine.Init(context.Background(), dir, "eng+deu"); err != nil {
		t.Error(err.Error())
		return
	}
	image, err := raster.New(make([]byte, 16), 2, 2, 8)
	if err != nil {
		t.Fatal(err.Error())
	}
	result, err := engine.Recognize(context.Background(), image)
	if err != nil {
		t.Error(err.Error())
		return
	}
	if result.Confidence != 90 {
		t.Errorf("unexpected confidence %d", result.Confidence)
	}

	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	wantArgs := []string{"stdin", "stdout", "--tessdata-dir", dir, "-l", "eng+deu", "--psm", "6",
		"-c", "debug_file=/dev/null", "-c", "tessedit_do_invert=0", "tsv"}
	if diff := cmp.Diff(wantArgs, calls[1].args); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if calls[1].name != "/opt/tesseract" {
		t.Errorf("unexpected binary %s", calls[1].name)
	}
	if raster.DetectMimeType(calls[1].stdin) != "image/png" {
		t.Error("image must be piped as PNG")
	}
}

func TestTesseractCLIMissingLanguage(t *testing.T) {
	run := func(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error) {
		return nil, nil
	}
	config := ocr.DefaultTesseractCLIConfig()
	config.Path = "/opt/tesseract"
	engine := ocr.NewTesseractCLIWithRunner(config, run)

	if err := engine.Init(context.Background(), newTessdataDir(t, "eng"), "eng+jpn"); err == nil {
		t.Error("expected error for missing language")
	}
	if err := engine.Init(context.Background(), "/nonexistent/tessdata", "eng"); err == nil {
		t.Error("expected error for missing data path")
	}
	if _, err := engine.Recognize(context.Background(), &raster.Raster{}); !errors.Is(err, ocr.ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestTesseractCLIBrokenBinary(t *testing.T) {
	run := func(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error) {
		return nil, errors.New("exec format error")
	}
	config := ocr.DefaultTesseractCLIConfig()
	config.Path = "/opt/tesseract"
	engine := ocr.NewTesseractCLIWithRunner(config, run)
	if err := engine.Init(context.Background(), newTessdataDir(t, "eng"), "eng"); err == nil {
		t.Error("expected error for broken binary")
	}
}

func TestInspectTesseract(t *testing.T) {
	run := func(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error) {
		switch args[0] {
		case "--version":
			return []byte("tesseract 5.3.4\n leptonica-1.84.1\n"), nil
		case "--list-langs":
			return []byte("List of available languages in \"/usr/share/tessdata/\" (3):\neng\nosd\nukr\n"), nil
		}
		return nil, errors.New("unexpected call")
	}

	info, err := ocr.InspectTesseract(context.Background(), "/usr/bin/tesseract", run)
	if err != nil {
		t.Error(err.Error())
		return
	}
	want := ocr.TesseractInfo{Path: "/usr/bin/tesseract", Version: "5.3.4", Languages: []string{"eng", "osd", "ukr"}}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
