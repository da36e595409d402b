// Package config defines the data structures related to configuration
// and includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/civicpulse/tif-surplus/internal/dataset"
	"github.com/civicpulse/tif-surplus/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for tif-surplus.
type Configuration struct {
	Data     DataConfig
	Analysis AnalysisConfig
	Logging  LoggingConfig `yaml:"logging,omitempty"`
	Output   OutputConfig  `yaml:"output,omitempty"`
}

// DataConfig locates the input tables and controls load-time filtering.
type DataConfig struct {
	DistrictFile string
	WardFile     string
	ExcludedYear string
}

// AnalysisConfig controls the top-N selection.
type AnalysisConfig struct {
	TopN          int
	RankingMethod string
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// LoadConfiguration takes a file path as input and loads the
// YAML-formatted configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	configuration.applyDefaults()
	return &configuration, nil
}

func (c *Configuration) applyDefaults() {
	if c.Data.ExcludedYear == "" {
		c.Data.ExcludedYear = constants.DefaultExcludedYear
	}
	if c.Analysis.TopN == 0 {
		c.Analysis.TopN = constants.DefaultTopN
	}
	if c.Analysis.RankingMethod == "" {
		c.Analysis.RankingMethod = dataset.MethodCTUPolynomial.String()
	}
}

// ValidateConfiguration performs general validation of the configuration
// and returns warnings for recoverable issues. Unrecoverable issues
// (unknown ranking method) surface as errors from RankingMethod instead.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.Data.DistrictFile == "" {
		warnings = append(warnings, "data.districtFile is not set; loading will fail")
	}
	if c.Data.WardFile == "" {
		warnings = append(warnings, "data.wardFile is not set; ward aggregation will fail")
	}
	if c.Analysis.TopN < 0 {
		warnings = append(warnings, fmt.Sprintf("analysis.topN %d is negative; treating as 0", c.Analysis.TopN))
	}
	if len(c.Data.ExcludedYear) != 4 {
		warnings = append(warnings, fmt.Sprintf("data.excludedYear %q is not a 4-character year; the suffix filter will match nothing", c.Data.ExcludedYear))
	}

	return warnings
}

// RankingMethod resolves the configured top-N ranking method.
func (c *Configuration) RankingMethod() (dataset.Method, error) {
	return dataset.ParseMethod(c.Analysis.RankingMethod)
}

// Paths returns the dataset locations for the loader.
func (c *Configuration) Paths() dataset.Paths {
	return dataset.Paths{
		DistrictFile: c.Data.DistrictFile,
		WardFile:     c.Data.WardFile,
	}
}
