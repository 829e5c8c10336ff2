package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/opengs/tesswrap/abi"
	"github.com/opengs/tesswrap/ocr"
	"github.com/opengs/tesswrap/raster"
	"github.com/spf13/cobra"
)

func newStubsCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stubs",
		Short: "List stubbed codec symbols",
		Long: "Lists the codec and transfer library symbols provided by the leptstubs archive, with the value " +
			"every call returns, and the image formats Leptonica loses when linked against them.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			library, _ := cmd.Flags().GetString("library")
			asJSON, _ := cmd.Flags().GetBool("json")

			symbols := abi.Symbols()
			if library != "" {
				if symbols = abi.LibrarySymbols(library); len(symbols) == 0 {
					return fmt.Errorf("unknown library %q", library)
				}
			}
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(symbols)
			}

			name := color.New(color.FgHiCyan)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LIBRARY\tSYMBOL\tRETURNS")
			for _, s := range symbols {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.Library, name.Sprint(s.Name), s.Sentinel)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if library == "" {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "\nformats unavailable to leptonica: %s\n", strings.Join(abi.StubbedMimeTypes(), ", "))
				fmt.Fprintf(out, "formats decoded before recognition: %s\n", strings.Join(raster.DecodableMimeTypes(), ", "))
				if ocr.FeatureTesseractEnabled {
					fmt.Fprintln(out, "tesseract library: compiled in")
				} else {
					fmt.Fprintln(out, "tesseract library: not compiled, build with -tags tesswrap_feature_tesseract")
				}
			}
			return nil
		},
	}
	cmd.Flags().String("library", "", "Only symbols of this library, e.g. libtiff")
	cmd.Flags().Bool("json", false, "Print JSON")
	return cmd
}
