package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/opengs/tesswrap/ocr"
	"github.com/opengs/tesswrap/tessdata"
	"github.com/spf13/cobra"
)

type languageRow struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Tag       string `json:"tag"`
	Installed bool   `json:"installed"`
	// Size of installed file, or download size of catalog entry
	Size int64 `json:"size"`
}

func newLanguagesCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List trained data languages",
		Long:  "Lists languages installed in the data path. With --all the whole downloadable catalog is listed.",
		Args:  cobra.NoArgs,
		RunE:  runLanguages,
	}
	flags := cmd.Flags()
	flags.Bool("all", false, "List every downloadable language")
	flags.Bool("json", false, "Print JSON")
	flags.Bool("cli", false, "Show the installed tesseract binary and its own languages")
	return cmd
}

func runLanguages(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all")
	asJSON, _ := cmd.Flags().GetBool("json")
	cli, _ := cmd.Flags().GetBool("cli")

	if cli {
		info, err := ocr.DetectTesseract(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON {
			return json.NewEncoder(cmd.OutOrStdout()).Encode(info)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "tesseract %s at %s\n", info.Version, info.Path)
		for _, code := range info.Languages {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", tessdata.DisplayName(code))
		}
		return nil
	}

	rows := languageRows(config.DataPath, all)
	if asJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(rows)
	}
	if len(rows) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no languages installed in %s\n", config.DataPath)
		return nil
	}
	return printLanguages(cmd.OutOrStdout(), rows)
}

func languageRows(dataPath string, all bool) []languageRow {
	installed := tessdata.AvailableLanguages(dataPath)
	rows := []languageRow{}
	row := func(code string, name string, size int64) languageRow {
		r := languageRow{Code: code, Name: name, Tag: tessdata.FromTesseract(code), Size: size}
		if slices.Contains(installed, code) {
			r.Installed = true
			if info, err := os.Stat(tessdata.FilePath(dataPath, code)); err == nil {
				r.Size = info.Size()
			}
		}
		return r
	}

	if all {
		for _, l := range tessdata.Catalog() {
			rows = append(rows, row(l.Code, l.Name, l.Size))
		}
		return rows
	}
	for _, code := range installed {
		rows = append(rows, row(code, tessdata.DisplayName(code), 0))
	}
	return rows
}

func printLanguages(out io.Writer, rows []languageRow) error {
	yes := color.New(color.FgHiGreen)
	no := color.New(color.FgHiBlack)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tTAG\tSIZE\tINSTALLED")
	for _, r := range rows {
		mark := no.Sprint("no")
		if r.Installed {
			mark = yes.Sprint("yes")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Code, r.Name, r.Tag, formatSize(r.Size), mark)
	}
	return w.Flush()
}

func formatSize(size int64) string {
	switch {
	case size <= 0:
		return "-"
	case size < 1<<20:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	}
}
