// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/statement-reconciler/internal/config"
	"fjacquet/statement-reconciler/internal/container"
	"fjacquet/statement-reconciler/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to all commands
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

var (
	// Log is the shared logger instance for commands
	Log = logging.GetLogger()

	// AppConfig is the configuration loaded for the current invocation
	AppConfig *config.Config

	// AppContainer holds the wired dependencies for the current invocation
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "reconciler",
		Short: "A CLI tool to reconcile bank statements against supporting documents.",
		Long: `reconciler matches each bank statement line with its invoices, payment slips
and receipts using the reference key found in descriptions and filenames
(for example "NF 123"), and reports which documents are missing.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to reconciler!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Setup()
		},
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default: config.yaml in $HOME/.reconciler, .reconciler or .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text or json)")
}

// Setup loads environment, configuration and the dependency container.
func Setup() error {
	config.LoadEnv()

	cfg, err := config.InitializeConfigFromFile(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = SharedFlags.LogFormat
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	logging.SetDefaultLogger(Log)
	return nil
}

// GetContainer returns the container, building one from defaults when the
// root pre-run has not executed.
func GetContainer() *container.Container {
	if AppContainer == nil {
		c, err := container.NewContainer(GetConfig())
		if err != nil {
			Log.WithError(err).Error("Failed to build default container")
			return nil
		}
		AppContainer = c
	}
	return AppContainer
}

// GetConfig returns the active configuration, or defaults.
func GetConfig() *config.Config {
	if AppConfig == nil {
		AppConfig = config.DefaultConfig()
	}
	return AppConfig
}

// GetLogrusAdapter returns the logger commands should use.
func GetLogrusAdapter() logging.Logger {
	if c := GetContainer(); c != nil {
		return c.GetLogger()
	}
	return Log
}
