package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/opengs/tesswrap"
	"github.com/opengs/tesswrap/source"
	sourcefs "github.com/opengs/tesswrap/source/fs"
	"github.com/spf13/cobra"
)

func newRecognizeCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recognize PATH...",
		Short: "Recognize text on image files",
		Long: "Recognizes text on image files. Folders are walked recursively and files that are not " +
			"supported images are skipped.",
		Args: cobra.MinimumNArgs(1),
		RunE: runRecognize,
	}
	flags := cmd.Flags()
	flags.Bool("json", false, "Print one JSON object per file")
	flags.Uint32("pool-size", 1, "Number of OCR sessions working at the same time")
	flags.Int64("max-file-bytes", tesswrap.DefaultBatchConfig().MaxFileBytes, "Files larger than this fail without recognition")
	flags.Bool("skip-hidden", true, "Skip files and folders starting with a dot")
	flags.Bool("download", false, "Download missing trained data before recognition")
	flags.String("store", "", "PostgreSQL URL for recognition results. Unchanged files are not recognized again")
	return cmd
}

func runRecognize(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("pool-size") {
		config.PoolSize, _ = cmd.Flags().GetUint32("pool-size")
	}
	if cmd.Flags().Changed("download") {
		config.AutoDownload, _ = cmd.Flags().GetBool("download")
	}
	if cmd.Flags().Changed("store") {
		config.Store, _ = cmd.Flags().GetString("store")
	}

	batch := tesswrap.DefaultBatchConfig()
	batch.Parallelism = int(max(config.PoolSize, 1))
	batch.MaxFileBytes, _ = cmd.Flags().GetInt64("max-file-bytes")
	skipHidden, _ := cmd.Flags().GetBool("skip-hidden")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := config.OpenStore(cmd.Context())
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
		batch.Storage = store
		batch.Fingerprint = config.Fingerprint()
	}

	tw, err := tesswrap.New(cmd.Context(), config, logger)
	if err != nil {
		return err
	}
	defer tw.Destroy(cmd.Context())

	printer := newRecognitionPrinter(cmd.OutOrStdout(), asJSON)
	var failed int
	for _, arg := range args {
		src, root, err := newPathSource(arg, skipHidden)
		if err != nil {
			return err
		}
		err = tesswrap.RecognizeSource(cmd.Context(), tw.Provider(), src, batch, logger, func(r tesswrap.Recognition) error {
			r.Path = filepath.Join(root, filepath.FromSlash(r.Path))
			if r.Reason == source.RecognitionError {
				failed++
			}
			return printer.Print(r)
		})
		if err != nil {
			return errors.Join(fmt.Errorf("failed to recognize %s", arg), err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("recognition failed for %d files", failed)
	}
	return nil
}

// Source over a file or a folder. Paths of the source are relative to the returned root.
func newPathSource(path string, skipHidden bool) (source.Source, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, "", err
	}
	var opts []sourcefs.Option
	if skipHidden {
		opts = append(opts, sourcefs.WithSkipHidden())
	}
	if info.IsDir() {
		return sourcefs.New(os.DirFS(path), ".", sourceUUID(path), opts...), path, nil
	}
	root := filepath.Dir(path)
	return sourcefs.New(os.DirFS(root), filepath.Base(path), sourceUUID(root)), root, nil
}

// Folders are identified by absolute path, so stored results survive changes of the working directory
func sourceUUID(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(path)
}

type recognitionPrinter struct {
	out    io.Writer
	json   *json.Encoder
	header *color.Color
	skip   *color.Color
	fail   *color.Color
}

func newRecognitionPrinter(out io.Writer, asJSON bool) *recognitionPrinter {
	p := &recognitionPrinter{
		out:    out,
		header: color.New(color.FgHiCyan, color.Bold),
		skip:   color.New(color.FgYellow),
		fail:   color.New(color.FgHiRed),
	}
	if asJSON {
		p.json = json.NewEncoder(out)
	}
	return p
}

func (p *recognitionPrinter) Print(r tesswrap.Recognition) error {
	if p.json != nil {
		return p.json.Encode(r)
	}
	switch r.Reason {
	case source.RecognitionOk, source.RecognitionCached:
		p.header.Fprintf(p.out, "==> %s (%d%%)\n", r.Path, r.Result.Confidence)
		_, err := fmt.Fprintln(p.out, r.Result.Text)
		return err
	case source.RecognitionSkipped:
		p.skip.Fprintf(p.out, "==> %s skipped: %s\n", r.Path, r.MimeType)
	default:
		p.fail.Fprintf(p.out, "==> %s failed: %s\n", r.Path, r.Error)
	}
	return nil
}
