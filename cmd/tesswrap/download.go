package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/opengs/tesswrap/tessdata"
	"github.com/spf13/cobra"
)

func newDownloadCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download LANGUAGE...",
		Short: "Download tesseract trained data",
		Long: "Downloads trained data for the languages into the data path. Languages are tesseract codes like " +
			"eng or script/Latin, or BCP 47 tags like de-DE.",
		Args: cobra.MinimumNArgs(1),
		RunE: runDownload,
	}
	flags := cmd.Flags()
	flags.String("model", string(tessdata.ModelNormal), "Model type: FAST, NORMAL or BEST_QUALITY")
	flags.String("base-url", "", "Download from this URL instead of the tessdata repository of the model type")
	flags.Bool("force", false, "Download even when the language is installed")
	flags.Bool("remove", false, "Remove the languages instead of downloading them")
	return cmd
}

func runDownload(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	codes := make([]string, 0, len(args))
	for _, arg := range args {
		for _, code := range tessdata.SplitLanguages(arg) {
			codes = append(codes, tessdata.ToTesseract(code))
		}
	}

	done := color.New(color.FgHiGreen)
	out := cmd.OutOrStdout()

	if remove, _ := cmd.Flags().GetBool("remove"); remove {
		for _, code := range codes {
			if err := tessdata.Remove(config.DataPath, code); err != nil {
				return err
			}
			done.Fprintf(out, "removed %s\n", tessdata.DisplayName(code))
		}
		return nil
	}

	modelName, _ := cmd.Flags().GetString("model")
	modelType, err := tessdata.ParseModelType(modelName)
	if err != nil {
		return err
	}
	downloader := tessdata.NewDownloader(modelType)
	downloader.BaseURL, _ = cmd.Flags().GetString("base-url")
	downloader.Logger = logger

	force, _ := cmd.Flags().GetBool("force")
	for _, code := range codes {
		if force {
			err = downloader.Install(cmd.Context(), config.DataPath, code)
		} else {
			err = downloader.EnsureInstalled(cmd.Context(), config.DataPath, code)
		}
		if err != nil {
			return err
		}
		done.Fprintf(out, "installed %s\n", tessdata.DisplayName(code))
	}
	fmt.Fprintf(out, "%d languages in %s\n", len(tessdata.AvailableLanguages(config.DataPath)), config.DataPath)
	return nil
}
