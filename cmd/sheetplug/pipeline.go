package main

import (
	"github.com/ukaji3/sheetplug-go/internal/config"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/extractions"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/pipeline"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/transforms"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/verify"
	"go.uber.org/zap"
)

// buildPipeline assembles the standard step sequence from cfg.
func buildPipeline(cfg *config.Config, logger *zap.Logger) (*pipeline.Runner, error) {
	mode, err := verify.ParseMode(cfg.Verify.Mode)
	if err != nil {
		return nil, err
	}
	policy, err := pipeline.ParsePolicy(cfg.OnError)
	if err != nil {
		return nil, err
	}

	products := transforms.ExtractProductsConfig{
		LeftKey:     cfg.Products.LeftKey,
		RightKey:    cfg.Products.RightKey,
		OutputSheet: cfg.Products.OutputSheet,
	}
	branches := extractions.Options{
		BranchSheets:  cfg.Branches.BranchSheets,
		ManagerSheets: cfg.Branches.ManagerSheets,
		Logger:        logger,
	}

	runner := pipeline.NewRunner(logger,
		transforms.NewNormalizeHeadersStep(logger),
		verify.NewVerifyStep(verify.Config{Mode: mode, Logger: logger}, ""),
		transforms.NewExtractProductsStep(products, "", logger),
		extractions.NewBranchSummaryStep(branches, true),
	)
	runner.Policy = policy
	return runner, nil
}

// runPipeline runs the configured steps over ds. Under the skip policy the
// joined step errors are logged and the partial result is returned.
func runPipeline(cfg *config.Config, logger *zap.Logger, ds *models.Dataset) (*models.Dataset, error) {
	runner, err := buildPipeline(cfg, logger)
	if err != nil {
		return nil, err
	}
	out, err := runner.Run(ds)
	if out == nil {
		return nil, err
	}
	if err != nil {
		logger.Warn("pipeline finished with skipped steps", zap.Error(err))
	}
	return out, nil
}
