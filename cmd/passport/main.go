// Package main runs the passport management console: it loads the
// configuration, sets up logging, reads the passport files and hands the
// registry to the interactive menu.
package main

import (
	"cmp"
	"fmt"
	"os"

	"github.com/atinyakov/passportkeeper/internal/config"
	"github.com/atinyakov/passportkeeper/internal/console"
	ierr "github.com/atinyakov/passportkeeper/internal/errors"
	"github.com/atinyakov/passportkeeper/internal/logger"
	"github.com/atinyakov/passportkeeper/internal/models"
	"github.com/atinyakov/passportkeeper/internal/repository"
	"github.com/atinyakov/passportkeeper/internal/service"
	"github.com/atinyakov/passportkeeper/internal/storage"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, config file and environment configuration.
	options, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Println("Error: " + err.Error())
		return
	}

	if options.ShowVersion {
		fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
		fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))
		return
	}

	// Initialize structured logging; a bad level or path leaves it silent.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel, options.LogFile); err != nil {
		fmt.Println("Warning: logging disabled: " + err.Error())
	}
	zapLogger := log.Log

	// Initialize the CSV repositories and in-memory stores.
	newRepo := repository.NewNewPassportRepository(options.DataDir, zapLogger)
	oldRepo := repository.NewOldPassportRepository(options.DataDir, zapLogger)
	registry := service.NewRegistry(
		storage.New[models.NewPassport](newRepo),
		storage.New[models.OldPassport](oldRepo),
		zapLogger,
	)

	if err := registry.Load(); err != nil {
		zapLogger.Error("cannot load passports", zap.Error(err))
		fmt.Println("Warning: " + ierr.Hint(err))
	}

	zapLogger.Info("console started", zap.String("data", options.DataDir))
	console.New(registry, os.Stdin, os.Stdout, zapLogger).Run()
}
