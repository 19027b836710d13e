package transforms

import (
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/pipeline"
	"go.uber.org/zap"
)

// NewNormalizeHeadersStep returns a step replacing structured column labels
// with their flattened simple form. Only tables that change are copied.
func NewNormalizeHeadersStep(logger *zap.Logger) pipeline.Step {
	if logger == nil {
		logger = zap.NewNop()
	}

	run := func(ds *models.Dataset) (*models.Dataset, error) {
		out := ds
		for _, e := range ds.Entries() {
			if e.Table == nil || !hasStructured(e.Table) {
				continue
			}

			flat, err := e.Table.Clone()
			if err != nil {
				return nil, err
			}
			for i, l := range flat.Columns {
				flat.Columns[i] = models.Simple(l.Flatten())
			}

			logger.Debug("normalized headers", zap.String("table", e.Name), zap.Strings("columns", flat.ColumnNames()))
			out = out.With(e.Name, flat)
		}
		return out, nil
	}

	return pipeline.Step{Name: "normalize_headers", Config: map[string]any{}, Fn: run}
}

func hasStructured(t *models.Table) bool {
	for _, l := range t.Columns {
		if l.IsStructured() {
			return true
		}
	}
	return false
}
