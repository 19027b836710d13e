package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetplug-go/internal/gitinfo"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/extractors"
	"go.uber.org/zap"
)

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Run the pipeline and write derived YAML artifacts",
		Args:  cobra.NoArgs,
		RunE:  runExtract,
	}

	cmd.Flags().String("data", "", "Input workbook, CSV file or directory")
	cmd.Flags().String("out", "", "Output directory for YAML artifacts")
	cmd.Flags().String("mode", "", "Verification mode: warn or fail")
	cmd.Flags().String("on-error", "", "Step failure policy: abort or skip")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	if cfg.Data == "" {
		return errors.New("missing input: set --data or data in the config file")
	}
	if cfg.Out == "" {
		return errors.New("missing output directory: set --out or out in the config file")
	}

	ds, err := sheetplug.LoadDataset(cfg.Data, loadOptions(cfg))
	if err != nil {
		return err
	}
	logger.Debug("loaded dataset", zap.String("path", cfg.Data), zap.Strings("tables", ds.Names()))

	out, err := runPipeline(cfg, logger, ds)
	if err != nil {
		return err
	}

	manifest := extractors.Manifest{Source: cfg.Data}
	if sha, err := gitinfo.CurrentSHA(".", true); err == nil {
		manifest.GitSHA = sha
	} else {
		logger.Debug("git revision unavailable", zap.Error(err))
	}

	ex := extractors.New(cfg.Products.OutputSheet, logger)
	if _, err := ex.ExtractAll(out, cfg.Out, manifest); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Extracted YAMLs to %s\n", cfg.Out)
	return nil
}
