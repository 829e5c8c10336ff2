package tessdata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/psanford/memfs"
)

func newDataFS(t *testing.T, files ...string) *memfs.FS {
	rootFS := memfs.New()
	if err := rootFS.MkdirAll("script", 0755); err != nil {
		t.Fatal(err.Error())
	}
	for _, name := range files {
		if err := rootFS.WriteFile(name, []byte("model"), 0644); err != nil {
			t.Fatal(err.Error())
		}
	}
	return rootFS
}

func TestInstalled(t *testing.T) {
	rootFS := newDataFS(t,
		"eng.traineddata",
		"deu.traineddata",
		"osd.traineddata",
		"script/Latin.traineddata",
		"notes.txt",
		"eng.traineddata.tmp",
	)

	want := []string{"deu", "eng", "osd", "script/Latin"}
	if diff := cmp.Diff(want, Installed(rootFS)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestInstalledEmpty(t *testing.T) {
	got := Installed(memfs.New())
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non nil list, got %v", got)
	}
}

func TestAvailableLanguagesMissingPath(t *testing.T) {
	for _, p := range []string{"", filepath.Join(t.TempDir(), "missing")} {
		got := AvailableLanguages(p)
		if got == nil || len(got) != 0 {
			t.Errorf("AvailableLanguages(%q) = %v, want empty list", p, got)
		}
	}
}

func TestAvailableLanguagesOnDisk(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"fra.traineddata", "eng.traineddata"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("model"), 0644); err != nil {
			t.Fatal(err.Error())
		}
	}
	if diff := cmp.Diff([]string{"eng", "fra"}, AvailableLanguages(dir)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	// a regular file is not a data directory
	if got := AvailableLanguages(filepath.Join(dir, "eng.traineddata")); len(got) != 0 {
		t.Errorf("expected empty list for a file path, got %v", got)
	}
}

func TestHasLanguages(t *testing.T) {
	rootFS := newDataFS(t, "eng.traineddata", "deu.traineddata")

	if err := HasLanguages(rootFS, "eng+deu"); err != nil {
		t.Error(err.Error())
	}
	if err := HasLanguages(rootFS, "eng+jpn"); !errors.Is(err, ErrLanguageNotInstalled) {
		t.Errorf("expected ErrLanguageNotInstalled, got %v", err)
	}
	if err := HasLanguages(rootFS, ""); !errors.Is(err, ErrLanguageNotInstalled) {
		t.Errorf("expected ErrLanguageNotInstalled for empty language, got %v", err)
	}
}

func TestLanguageMapping(t *testing.T) {
	cases := map[string]string{"en-US": "eng", "zh-TW": "chi_tra", "de": "deu", "xx": "xx"}
	for in, want := range cases {
		if got := ToTesseract(in); got != want {
			t.Errorf("ToTesseract(%s) = %s, want %s", in, got, want)
		}
	}
	if got := FromTesseract("chi_sim"); got != "zh-Hans" {
		t.Errorf("FromTesseract(chi_sim) = %s", got)
	}
	if got := FromTesseract("osd"); got != "osd" {
		t.Errorf("FromTesseract(osd) = %s", got)
	}
}

func TestSplitJoinLanguages(t *testing.T) {
	if diff := cmp.Diff([]string{"eng", "deu"}, SplitLanguages("eng+ +deu+")); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := JoinLanguages("en", "fr-FR", "ukr"); got != "eng+fra+ukr" {
		t.Errorf("unexpected join result %s", got)
	}
}

func TestCatalog(t *testing.T) {
	languages := Catalog()
	seen := map[string]bool{}
	for i, l := range languages {
		if seen[l.Code] {
			t.Errorf("duplicated language %s", l.Code)
		}
		seen[l.Code] = true
		if i > 0 && languages[i-1].Name > l.Name {
			t.Errorf("catalog is not sorted at %s", l.Name)
		}
	}
	if DisplayName("ukr") != "Ukrainian" || DisplayName("zzz") != "zzz" {
		t.Error("unexpected display names")
	}
	if l, _ := LookupLanguage("eng"); l.DisplayName() != "English (eng)" {
		t.Errorf("unexpected display name %s", l.DisplayName())
	}
}
