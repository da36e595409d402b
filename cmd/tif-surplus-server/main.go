package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/civicpulse/tif-surplus/internal/config"
	"github.com/civicpulse/tif-surplus/internal/dataset"
	"github.com/civicpulse/tif-surplus/internal/logging"
	"github.com/civicpulse/tif-surplus/internal/server"
	"github.com/civicpulse/tif-surplus/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	_ = godotenv.Load()

	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	serverConfigLocation := flag.String("server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	serverConf, err := server.LoadConfig(*serverConfigLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration\", \"error\": \"%v\"}\n", err)
		return
	}

	logger, err := logging.InitializeLogger(serverConf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	rankingMethod, err := conf.RankingMethod()
	if err != nil {
		logger.Fatal("failed to resolve ranking method",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// The snapshot is loaded once per deployment lifetime and shared
	// immutably across requests.
	snapshot, err := dataset.Load(logger, conf.Paths(), conf.Data.ExcludedYear)
	if err != nil {
		logger.Fatal("failed to load dataset",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	handler := server.NewHandler(logger, snapshot, server.Options{
		TopN:          conf.Analysis.TopN,
		RankingMethod: rankingMethod,
		Version:       version,
	})

	address := serverConf.Address
	if port := os.Getenv("PORT"); port != "" {
		address = ":" + port
	}

	logger.Info("starting server",
		zap.String("op", "main"),
		zap.String("address", address),
		zap.String("version", version),
	)

	if err := http.ListenAndServe(address, handler); err != nil {
		logger.Fatal("server stopped",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
