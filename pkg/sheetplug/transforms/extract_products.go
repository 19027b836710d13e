package transforms

import (
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/pipeline"
	"go.uber.org/zap"
)

// ProductSheets are the accepted names of the products table, in order.
var ProductSheets = []string{"products", "product"}

// FeesSheet is the name of the fees table.
const FeesSheet = "fees"

// ExtractProductsStepName is the step name used when none is given.
const ExtractProductsStepName = "extract_products"

// ExtractProductsConfig configures the extract-products step.
type ExtractProductsConfig struct {
	LeftKey     string
	RightKey    string
	OutputSheet string
}

// DefaultExtractProductsConfig returns the default merge keys and output sheet.
func DefaultExtractProductsConfig() ExtractProductsConfig {
	return ExtractProductsConfig{
		LeftKey:     "id",
		RightKey:    "product_id",
		OutputSheet: "products_extracted",
	}
}

// NewExtractProductsStep returns a step merging the products table with the
// fees table into cfg.OutputSheet. When either table or either key column is
// missing the dataset is returned unchanged. An empty name selects
// ExtractProductsStepName.
func NewExtractProductsStep(cfg ExtractProductsConfig, name string, logger *zap.Logger) pipeline.Step {
	if logger == nil {
		logger = zap.NewNop()
	}
	if name == "" {
		name = ExtractProductsStepName
	}

	run := func(ds *models.Dataset) (*models.Dataset, error) {
		_, products, okProducts := ds.First(ProductSheets...)
		fees, okFees := ds.Get(FeesSheet)
		if !okProducts || !okFees || products == nil || fees == nil {
			logger.Debug("inputs missing, passing through", zap.String("step", name),
				zap.Bool("products", okProducts && products != nil),
				zap.Bool("fees", okFees && fees != nil))
			return ds, nil
		}

		if !products.HasColumn(cfg.LeftKey) || !fees.HasColumn(cfg.RightKey) {
			logger.Debug("key columns missing, passing through", zap.String("step", name),
				zap.String("left_key", cfg.LeftKey),
				zap.String("right_key", cfg.RightKey))
			return ds, nil
		}

		merged := LeftMerge(products, fees, cfg.LeftKey, cfg.RightKey)
		return ds.With(cfg.OutputSheet, merged), nil
	}

	return pipeline.Step{
		Name: name,
		Config: map[string]any{
			"left_key":     cfg.LeftKey,
			"right_key":    cfg.RightKey,
			"output_sheet": cfg.OutputSheet,
		},
		Fn: run,
	}
}
