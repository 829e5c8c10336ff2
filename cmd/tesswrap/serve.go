package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/opengs/tesswrap"
	"github.com/spf13/cobra"
)

func newServeCMD() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start REST API server",
		Long:  "Start REST API server and recognize images posted to /ocr",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if debug, _ := cmd.Flags().GetBool("debug"); !debug {
				gin.SetMode(gin.ReleaseMode)
			}

			tw, err := tesswrap.New(cmd.Context(), config, logger)
			if err != nil {
				return err
			}
			defer tw.Destroy(cmd.Context())

			host, _ := cmd.Flags().GetString("host")
			port, _ := cmd.Flags().GetUint("port")
			return tw.Server().Run(fmt.Sprintf("%s:%d", host, port))
		},
	}

	flags := cmd.Flags()
	flags.String("host", "0.0.0.0", "HTTP server host")
	flags.Uint("port", 8884, "HTTP server port")
	flags.Uint32("pool-size", 1, "Number of OCR sessions working at the same time")
	flags.Bool("download", false, "Download missing trained data on startup")
	flags.Bool("debug", false, "Run gin in debug mode")
	return cmd
}
