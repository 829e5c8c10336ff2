package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newMainCMD() *cobra.Command {
	mainCMD := &cobra.Command{
		Use:   "tesswrap",
		Short: "Recognize text on images",
		Long: "Recognizes text on images with Tesseract, a Tesseract server, PaddleOCR or a vision LLM.\n" +
			"Manages Tesseract trained data and serves recognition over HTTP.",
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}
	addGlobalFlags(mainCMD)

	mainCMD.AddCommand(newRecognizeCMD())
	mainCMD.AddCommand(newLanguagesCMD())
	mainCMD.AddCommand(newDownloadCMD())
	mainCMD.AddCommand(newServeCMD())
	mainCMD.AddCommand(newSearchCMD())
	mainCMD.AddCommand(newStubsCMD())
	return mainCMD
}

func main() {
	if err := newMainCMD().Execute(); err != nil {
		os.Exit(1)
	}
}
