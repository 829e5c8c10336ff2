// Package tessdata manages directories with tesseract trained data files.
package tessdata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

const Extension = ".traineddata"

var ErrLanguageNotInstalled = errors.New("language is not installed")

// Lists language codes of trained data files at the root of fsys and in its "script" subfolder.
// Result is sorted. Unreadable trees give an empty list.
func Installed(fsys fs.FS) []string {
	languages := []string{}
	for _, dir := range []string{".", "script"} {
		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, Extension) || name == Extension {
				continue
			}
			code := strings.TrimSuffix(name, Extension)
			if dir != "." {
				code = path.Join(dir, code)
			}
			languages = append(languages, code)
		}
	}
	slices.Sort(languages)
	return languages
}

// Lists installed languages in a directory. Missing directory gives an empty list.
func AvailableLanguages(dataPath string) []string {
	if dataPath == "" {
		return []string{}
	}
	info, err := os.Stat(dataPath)
	if err != nil || !info.IsDir() {
		return []string{}
	}
	return Installed(os.DirFS(dataPath))
}

// Checks that every language of "eng+deu"-style string has trained data in fsys.
func HasLanguages(fsys fs.FS, language string) error {
	codes := SplitLanguages(language)
	if len(codes) == 0 {
		return errors.Join(ErrLanguageNotInstalled, errors.New("no language specified"))
	}
	var errs []error
	for _, code := range codes {
		info, err := fs.Stat(fsys, code+Extension)
		if err != nil || info.IsDir() {
			errs = append(errs, fmt.Errorf("%w: %s", ErrLanguageNotInstalled, code))
		}
	}
	return errors.Join(errs...)
}

// Path of the trained data file for the language inside dataPath
func FilePath(dataPath, code string) string {
	return filepath.Join(dataPath, filepath.FromSlash(code)+Extension)
}
