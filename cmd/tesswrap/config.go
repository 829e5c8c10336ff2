package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/opengs/tesswrap"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "TESSWRAP"

// Config keys bound to environment variables, e.g. TESSWRAP_LLM_BASEURL
var envKeys = []string{
	"engines",
	"dataPath",
	"language",
	"poolSize",
	"autoDownload",
	"modelType",
	"downloadBaseURL",
	"tesseractCLI.path",
	"tesseractServer.baseURL",
	"paddle.baseURL",
	"llm.apiKey",
	"llm.baseURL",
	"llm.model",
	"llm.detail",
	"server.maxImageBytes",
	"store",
	"storeSchema",
}

func addGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("config", "", "Config file. Default is ~/.tesswrap/config.yaml when it exists")
	flags.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	flags.String("log-format", "console", "Log format: console or json")
	flags.StringSlice("engine", []string{string(tesswrap.EngineTesseract)}, "OCR engines in priority order: TESSERACT, TESSERACT_CLI, TESSERACT_SERVER, PADDLE, LLM")
	flags.String("data-path", tesswrap.DefaultDataPath(), "Folder with tesseract trained data")
	flags.StringP("language", "l", "eng", "Tesseract language string, e.g. eng+deu. BCP 47 tags like de-DE are accepted")
}

func newLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	levelName, _ := cmd.Flags().GetString("log-level")
	level, err := zerolog.ParseLevel(levelName)
	if err != nil {
		return zerolog.Nop(), errors.Join(errors.New("bad log level"), err)
	}

	var out io.Writer = cmd.ErrOrStderr()
	format, _ := cmd.Flags().GetString("log-format")
	switch format {
	case "json":
	case "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	default:
		return zerolog.Nop(), fmt.Errorf("bad log format: %q", format)
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

func defaultConfigFile() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tesswrap", "config.yaml")
}

// Merges defaults, config file, TESSWRAP_* environment and flags, in increasing priority
func loadConfig(cmd *cobra.Command) (tesswrap.Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return tesswrap.Config{}, err
		}
	}

	flagKeys := map[string]string{
		"engines":  "engine",
		"dataPath": "data-path",
		"language": "language",
	}
	for key, flag := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return tesswrap.Config{}, err
		}
	}

	configFile, _ := cmd.Flags().GetString("config")
	explicit := configFile != ""
	if !explicit {
		configFile = defaultConfigFile()
	}
	if configFile != "" {
		configFile, _ = homedir.Expand(configFile)
		if _, err := os.Stat(configFile); err == nil {
			v.SetConfigFile(configFile)
			if err := v.ReadInConfig(); err != nil {
				return tesswrap.Config{}, errors.Join(fmt.Errorf("failed to read config file %q", configFile), err)
			}
		} else if explicit {
			return tesswrap.Config{}, errors.Join(fmt.Errorf("config file %q is not readable", configFile), err)
		}
	}

	config := tesswrap.DefaultConfig()
	// always set by the engine flag default, and slices are merged element by element
	config.Engines = nil
	if err := v.Unmarshal(&config); err != nil {
		return tesswrap.Config{}, errors.Join(errors.New("failed to parse configuration"), err)
	}
	for i, kind := range config.Engines {
		parsed, err := tesswrap.ParseEngineKind(string(kind))
		if err != nil {
			return tesswrap.Config{}, err
		}
		config.Engines[i] = parsed
	}
	if config.DataPath, _ = homedir.Expand(config.DataPath); config.DataPath == "" {
		config.DataPath = tesswrap.DefaultDataPath()
	}
	return config, config.Validate()
}
