package tessdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDownloaderURL(t *testing.T) {
	d := NewDownloader(ModelFast)
	link, err := d.URL("eng")
	if err != nil {
		t.Error(err.Error())
		return
	}
	if link != "https://github.com/tesseract-ocr/tessdata_fast/raw/refs/heads/main/eng.traineddata" {
		t.Errorf("unexpected link %s", link)
	}

	d = &Downloader{ModelType: "WHATEVER"}
	if _, err := d.URL("eng"); !errors.Is(err, ErrUnknownModelType) {
		t.Errorf("expected ErrUnknownModelType, got %v", err)
	}
}

func TestParseModelType(t *testing.T) {
	if m, err := ParseModelType("best-quality"); err != nil || m != ModelBestQuality {
		t.Errorf("unexpected result %s %v", m, err)
	}
	if _, err := ParseModelType("tiny"); err == nil {
		t.Error("expected error")
	}
}

func newModelServer(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/eng.traineddata":
			w.Write([]byte("english model"))
		case "/script/Latin.traineddata":
			w.Write([]byte("latin model"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestInstall(t *testing.T) {
	server := newModelServer(t)
	dir := t.TempDir()
	d := &Downloader{BaseURL: server.URL + "/", Client: server.Client()}

	if err := d.Install(context.Background(), dir, "eng"); err != nil {
		t.Error(err.Error())
		return
	}
	data, err := os.ReadFile(filepath.Join(dir, "eng.traineddata"))
	if err != nil {
		t.Error(err.Error())
		return
	}
	if string(data) != "english model" {
		t.Errorf("unexpected model content %q", data)
	}

	if err := d.Install(context.Background(), dir, "script/Latin"); err != nil {
		t.Error(err.Error())
		return
	}
	if diff := cmp.Diff([]string{"eng", "script/Latin"}, AvailableLanguages(dir)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if InstalledSize(dir) != int64(len("english model")+len("latin model")) {
		t.Errorf("unexpected installed size %d", InstalledSize(dir))
	}
}

func TestInstallFailureLeavesNothing(t *testing.T) {
	server := newModelServer(t)
	dir := t.TempDir()
	d := &Downloader{BaseURL: server.URL + "/", Client: server.Client()}

	if err := d.Install(context.Background(), dir, "xyz"); err == nil {
		t.Error("expected error for missing model")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Error(err.Error())
		return
	}
	if len(entries) != 0 {
		t.Errorf("failed download left %d files behind", len(entries))
	}

	if err := d.Install(context.Background(), dir, "../eng"); err == nil {
		t.Error("expected error for path traversal")
	}
}

func TestEnsureInstalledAndRemove(t *testing.T) {
	server := newModelServer(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "osd.traineddata"), []byte("local"), 0644); err != nil {
		t.Fatal(err.Error())
	}
	d := &Downloader{BaseURL: server.URL + "/", Client: server.Client()}

	// osd is not on the server, it must be left alone
	if err := d.EnsureInstalled(context.Background(), dir, "osd", "eng"); err != nil {
		t.Error(err.Error())
		return
	}
	if diff := cmp.Diff([]string{"eng", "osd"}, AvailableLanguages(dir)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	if err := Remove(dir, "eng"); err != nil {
		t.Error(err.Error())
	}
	if err := Remove(dir, "eng"); !errors.Is(err, ErrLanguageNotInstalled) {
		t.Errorf("expected ErrLanguageNotInstalled, got %v", err)
	}
}
