package ocr

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"

	"github.com/opengs/tesswrap/raster"
)

var ErrTesseractNotFound = errors.New("tesseract binary not found")

// Locations checked before falling back to PATH lookup
var DefaultTesseractPaths = []string{
	"/usr/local/bin/tesseract",
	"/opt/homebrew/bin/tesseract",
	"/usr/bin/tesseract",
}

// Runs external command and returns its stdout. Replaceable in tests.
type CommandRunner func(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error)

func execCommand(ctx context.Context, name string, args []string, stdin []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return out, errors.Join(fmt.Errorf("command %s failed: %s", name, strings.TrimSpace(stderr.String())), err)
	}
	return out, nil
}

type TesseractCLIConfig struct {
	// Path to the tesseract binary. Empty means detect with `DefaultTesseractPaths` and PATH.
	Path string `json:"path" mapstructure:"path"`
	// Passed as `-c key=value`
	Variables map[string]string `json:"variables" mapstructure:"variables"`
	// Page segmentation mode (`--psm`). 0 keeps tesseract default.
	PageSegMode int `json:"pageSegMode" mapstructure:"pageSegMode"`
	// Format used to pipe images to the binary. Default is "image/png".
	TransportMimeType string `json:"transportMimeType" mapstructure:"transportMimeType"`
}

func DefaultTesseractCLIConfig() TesseractCLIConfig {
	return TesseractCLIConfig{
		Variables:         map[string]string{},
		TransportMimeType: "image/png",
	}
}

// Installed tesseract binary
type TesseractInfo struct {
	Path      string   `json:"path"`
	Version   string   `json:"version"`
	Languages []string `json:"languages"`
}

// Tesseract engine that pipes images through the `tesseract` command line tool
type TesseractCLI struct {
	config TesseractCLIConfig
	run    CommandRunner

	path     string
	dataPath string
	language string
}

func NewTesseractCLI(config TesseractCLIConfig) *TesseractCLI {
	return NewTesseractCLIWithRunner(config, execCommand)
}

func NewTesseractCLIWithRunner(config TesseractCLIConfig, run CommandRunner) *TesseractCLI {
	if config.TransportMimeType == "" {
		config.TransportMimeType = "image/png"
	}
	return &TesseractCLI{config: config, run: run}
}

func (p *TesseractCLI) Name() string {
	return "tesseract-cli"
}

func (p *TesseractCLI) Init(ctx context.Context, dataPath string, language string) error {
	p.path = ""
	if err := checkTessdata(dataPath, language); err != nil {
		return err
	}

	path := p.config.Path
	if path == "" {
		var err error
		if path, err = FindTesseract(); err != nil {
			return err
		}
	}
	// fail early on a broken binary instead of on the first image
	if _, err := p.run(ctx, path, []string{"--version"}, nil); err != nil {
		return errors.Join(errors.New("tesseract binary is not usable"), err)
	}

	p.path = path
	p.dataPath = dataPath
	p.language = language
	return nil
}

func (p *TesseractCLI) args() []string {
	args := []string{"stdin", "stdout"}
	if p.dataPath != "" {
		args = append(args, "--tessdata-dir", p.dataPath)
	}
	args = append(args, "-l", p.language)
	if p.config.PageSegMode != 0 {
		args = append(args, "--psm", strconv.Itoa(p.config.PageSegMode))
	}
	keys := make([]string, 0, len(p.config.Variables))
	for key := range p.config.Variables {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		args = append(args, "-c", key+"="+p.config.Variables[key])
	}
	return append(args, "tsv")
}

func (p *TesseractCLI) Recognize(ctx context.Context, image *raster.Raster) (Result, error) {
	if p.path == "" {
		return Result{}, ErrNotInitialized
	}

	encoded, err := raster.EncodeBytes(image, p.config.TransportMimeType)
	if err != nil {
		return Result{}, errors.Join(errors.New("failed to prepare image for OCR"), err)
	}
	out, err := p.run(ctx, p.path, p.args(), encoded)
	if err != nil {
		return Result{}, errors.Join(errors.New("OCR process failed"), err)
	}
	return ParseTSV(out)
}

func (p *TesseractCLI) Close() error {
	p.path = ""
	return nil
}

// Converts tesseract TSV output into text and mean word confidence. Words on one line are joined with
// spaces, lines with newlines and paragraphs or blocks with an empty line.
func ParseTSV(data []byte) (Result, error) {
	var (
		text       strings.Builder
		confSum    float64
		words      int
		lastBlock  = -1
		lastPar    = -1
		lastLine   = -1
		lineHasAny bool
	)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	header := true
	for scanner.Scan() {
		line := scanner.Text()
		if header {
			header = false
			if strings.HasPrefix(line, "level") {
				continue
			}
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.SplitN(line, "\t", 12)
		if len(fields) < 11 {
			return Result{}, fmt.Errorf("bad tsv row: %q", line)
		}
		level, err := strconv.Atoi(fields[0])
		if err != nil {
			return Result{}, fmt.Errorf("bad tsv level: %q", fields[0])
		}
		if level != 5 {
			continue
		}
		word := ""
		if len(fields) == 12 {
			word = strings.TrimSpace(fields[11])
		}
		conf, err := strconv.ParseFloat(fields[10], 64)
		if err != nil {
			return Result{}, fmt.Errorf("bad tsv confidence: %q", fields[10])
		}
		if word == "" || conf < 0 {
			continue
		}

		block, _ := strconv.Atoi(fields[2])
		par, _ := strconv.Atoi(fields[3])
		lineNum, _ := strconv.Atoi(fields[4])
		switch {
		case text.Len() == 0:
		case block != lastBlock || par != lastPar:
			text.WriteString("\n\n")
			lineHasAny = false
		case lineNum != lastLine:
			text.WriteString("\n")
			lineHasAny = false
		}
		if lineHasAny {
			text.WriteByte(' ')
		}
		text.WriteString(word)
		lineHasAny = true
		lastBlock, lastPar, lastLine = block, par, lineNum

		confSum += conf
		words++
	}
	if err := scanner.Err(); err != nil {
		return Result{}, errors.Join(errors.New("failed to read tsv output"), err)
	}

	result := Result{Text: text.String()}
	if words > 0 {
		result.Confidence = int(math.Round(confSum / float64(words)))
	}
	return result, nil
}

// Locates tesseract binary in well known locations and PATH
func FindTesseract() (string, error) {
	for _, path := range DefaultTesseractPaths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	path, err := exec.LookPath("tesseract")
	if err != nil {
		return "", errors.Join(ErrTesseractNotFound, err)
	}
	return path, nil
}

// Detects installed tesseract binary with its version and languages of its default data folder
func DetectTesseract(ctx context.Context) (TesseractInfo, error) {
	path, err := FindTesseract()
	if err != nil {
		return TesseractInfo{}, err
	}
	return InspectTesseract(ctx, path, execCommand)
}

func InspectTesseract(ctx context.Context, path string, run CommandRunner) (TesseractInfo, error) {
	info := TesseractInfo{Path: path, Version: "unknown", Languages: []string{}}

	out, err := run(ctx, path, []string{"--version"}, nil)
	if err != nil {
		return info, errors.Join(errors.New("failed to get tesseract version"), err)
	}
	info.Version = parseTesseractVersion(out)

	out, err = run(ctx, path, []string{"--list-langs"}, nil)
	if err != nil {
		return info, errors.Join(errors.New("failed to get tesseract languages"), err)
	}
	info.Languages = parseTesseractLanguages(out)
	return info, nil
}

// First line looks like "tesseract 5.3.4"
func parseTesseractVersion(out []byte) string {
	first, _, _ := strings.Cut(string(out), "\n")
	fields := strings.Fields(first)
	if len(fields) < 2 {
		return "unknown"
	}
	return fields[1]
}

// Output starts with `List of available languages in "/usr/share/tessdata/" (3):`
func parseTesseractLanguages(out []byte) []string {
	languages := []string{}
	lines := strings.Split(string(out), "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if i == 0 && strings.HasPrefix(line, "List of available languages") {
			continue
		}
		if line != "" {
			languages = append(languages, line)
		}
	}
	return languages
}
