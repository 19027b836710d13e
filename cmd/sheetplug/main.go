// Package main provides the CLI entry point for sheetplug.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetplug-go/internal/config"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time.
var Version = "0.1.0"

var (
	cfgFile string
	cfg     *config.Config
	logger  = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetplug",
		Short: "Post-process spreadsheet datasets",
		Long: `sheetplug loads workbooks and CSV files as named tables, joins,
derives and validates them, and exports derived summaries as YAML.`,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./sheetplug.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Int("header-rows", 1, "Number of header rows per table")
	rootCmd.PersistentFlags().StringSlice("only", nil, "Load only the named sheets")

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// setup loads the configuration and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var (
		used string
		err  error
	)
	cfg, used, err = config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err = newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if used != "" {
		logger.Debug("using config file", zap.String("path", used))
	}
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.LogLevel != "" {
		parsed, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	if cfg.Verbose {
		level = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func loadOptions(cfg *config.Config) sheetplug.Options {
	opts := sheetplug.DefaultOptions()
	if cfg.Load.HeaderRows > 0 {
		opts.HeaderRows = cfg.Load.HeaderRows
	}
	opts.Sheets = cfg.Load.Sheets
	return opts
}
