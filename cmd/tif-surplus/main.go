package main

import (
	"flag"
	"fmt"

	"github.com/civicpulse/tif-surplus/internal/aggregate"
	"github.com/civicpulse/tif-surplus/internal/config"
	"github.com/civicpulse/tif-surplus/internal/dataset"
	"github.com/civicpulse/tif-surplus/internal/logging"
	"github.com/civicpulse/tif-surplus/pkg/constants"
	"github.com/civicpulse/tif-surplus/pkg/output"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := logging.InitializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if outputFormat != constants.OutputFormatPretty && outputFormat != constants.OutputFormatCSV {
		logger.Fatal(fmt.Sprintf("invalid output format: %s", outputFormat),
			zap.String("op", "main"),
		)
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
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

	// Load and filter both tables into the immutable snapshot.
	snapshot, err := dataset.Load(logger, conf.Paths(), conf.Data.ExcludedYear)
	if err != nil {
		logger.Fatal("failed to load dataset",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	totals := aggregate.CitywideTotals(snapshot.Districts)
	min, max := aggregate.SubsetRange(snapshot.Districts)

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettySummary(totals, min, max)
		top := aggregate.TopN(snapshot.Districts, conf.Analysis.TopN, rankingMethod)
		output.PrettyTopN(top, rankingMethod)
	case constants.OutputFormatCSV:
		output.CsvSummary(totals)
	}
}
