// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"fjacquet/statement-reconciler/internal/models"
	"fjacquet/statement-reconciler/internal/parsererror"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Supported export formats
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		// Delimiter is used when writing CSV reports. Statement input is sniffed.
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Statement struct {
		DayFirst bool `mapstructure:"day_first" yaml:"day_first"`
	} `mapstructure:"statement" yaml:"statement"`

	Export struct {
		Placeholder   string `mapstructure:"placeholder" yaml:"placeholder"`
		NoKeySentinel string `mapstructure:"no_key_sentinel" yaml:"no_key_sentinel"`
		// Format is used when the output path has no recognised extension.
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"export" yaml:"export"`

	Classification struct {
		RulesFile string `mapstructure:"rules_file" yaml:"rules_file"`
	} `mapstructure:"classification" yaml:"classification"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile is InitializeConfig with an explicit config file.
// An empty path searches the standard locations.
func InitializeConfigFromFile(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.reconciler")
		v.AddConfigPath(".reconciler")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("RECON")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns the configuration built from defaults only.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	// Defaults always unmarshal cleanly
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Statement defaults
	v.SetDefault("statement.day_first", true)

	// Export defaults
	v.SetDefault("export.placeholder", models.DefaultPlaceholder)
	v.SetDefault("export.no_key_sentinel", models.DefaultNoKeySentinel)
	v.SetDefault("export.format", ExportFormatXLSX)

	// Classification defaults
	v.SetDefault("classification.rules_file", "")
}

// Validate checks a configuration that was built or modified in code.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return invalid("log.level", "unknown level %q", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return invalid("log.format", "%q must be 'text' or 'json'", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return invalid("csv.delimiter", "must be a single character, got %q", config.CSV.Delimiter)
	}

	format := strings.ToLower(config.Export.Format)
	if format != ExportFormatXLSX && format != ExportFormatCSV {
		return invalid("export.format", "%q must be 'xlsx' or 'csv'", config.Export.Format)
	}

	sentinel := strings.TrimSpace(config.Export.NoKeySentinel)
	if sentinel == "" {
		return invalid("export.no_key_sentinel", "must not be empty")
	}
	if strings.ContainsAny(sentinel, `/\`) || sentinel == "." || sentinel == ".." {
		return invalid("export.no_key_sentinel", "must be a single path segment, got %q", config.Export.NoKeySentinel)
	}

	return nil
}

func invalid(key, reason string, args ...interface{}) error {
	return &parsererror.ValidationError{Subject: key, Reason: fmt.Sprintf(reason, args...)}
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
