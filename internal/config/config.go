// Package config provides functionality for managing configuration options
// for the application using command-line flags, an optional JSON file and
// environment variables.
package config

import (
	"encoding/json"
	"flag"
	"os"

	ierr "github.com/atinyakov/passportkeeper/internal/errors"
	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// DataDir is the directory holding the passport CSV files.
	DataDir string `json:"data_dir"`

	// LogLevel is the minimum zap level written to the log.
	LogLevel string `json:"log_level"`

	// LogFile is the log destination: a path, "stderr" or "stdout".
	LogFile string `json:"log_file"`

	// Config is the path to the Config file.
	Config string `json:"-"`

	// ShowVersion prints build information and exits.
	ShowVersion bool `json:"-"`
}

// Parse parses args (without the program name), then overlays the JSON
// config file and the environment. A .env file in the working directory is
// loaded into the environment first if present.
func Parse(args []string) (*Options, error) {
	_ = godotenv.Load()

	options := &Options{}
	fs := flag.NewFlagSet("passport", flag.ContinueOnError)
	fs.StringVar(&options.DataDir, "data", ".", "directory holding the passport CSV files")
	fs.StringVar(&options.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	fs.StringVar(&options.LogFile, "log-file", "stderr", "log destination")
	fs.StringVar(&options.Config, "config", "", "path to config file")
	fs.StringVar(&options.Config, "c", "", "path to config file (shorthand)")
	fs.BoolVar(&options.ShowVersion, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, ierr.Wrap(err, "parse flags")
	}

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				return nil, ierr.Wrapf(err, "read config file %s", options.Config)
			}
			if err := json.Unmarshal(data, options); err != nil {
				return nil, ierr.Wrapf(err, "parse config file %s", options.Config)
			}
		}
	}

	if dir := os.Getenv("PASSPORT_DATA_DIR"); dir != "" {
		options.DataDir = dir
	}
	if level := os.Getenv("PASSPORT_LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}
	if file := os.Getenv("PASSPORT_LOG_FILE"); file != "" {
		options.LogFile = file
	}

	return options, nil
}
