package extractors

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/output"
)

func sampleDataset() *models.Dataset {
	return models.NewDataset(
		models.Entry{Name: "products", Table: models.NewTable([]string{"id", "name"},
			[]any{int64(1), "A"},
			[]any{int64(2), "B"},
		)},
		models.Entry{Name: "fees", Table: models.NewTable([]string{"product_id", "amount"},
			[]any{int64(1), 1.0},
			[]any{int64(1), 2.5},
		)},
		models.Entry{Name: "rules", Table: models.NewTable([]string{"ID", "Expression"},
			[]any{"R1", "fee > 0"},
		)},
	)
}

func TestDeriveProducts(t *testing.T) {
	value, err := DeriveProducts(sampleDataset())
	require.NoError(t, err)

	assert.Equal(t, []output.Map{
		{{Key: "product_id", Value: int64(1)}, {Key: "name", Value: "A"}, {Key: "fees", Value: []any{1.0, 2.5}}},
		{{Key: "product_id", Value: int64(2)}, {Key: "name", Value: "B"}, {Key: "fees", Value: []any{}}},
	}, value)
}

func TestDeriveRules(t *testing.T) {
	value, err := DeriveRules(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, []output.Map{{{Key: "id", Value: "R1"}, {Key: "expr", Value: "fee > 0"}}}, value)

	empty, err := DeriveRules(models.NewDataset())
	require.NoError(t, err)
	assert.Equal(t, []output.Map{}, empty)
}

func TestDeriveSkipsOptionalArtifacts(t *testing.T) {
	artifacts, err := New("products_extracted", nil).Derive(sampleDataset())
	require.NoError(t, err)

	names := make([]string, len(artifacts))
	for i, a := range artifacts {
		names[i] = a.Name
	}
	assert.Equal(t, []string{"rules", "products"}, names)
}

func TestExtractAllWritesFiles(t *testing.T) {
	ds := sampleDataset().With("BranchSummary", models.NewTable([]string{"id", "name", "region", "manager"},
		[]any{int64(1), "North", "N", "Alice"},
	))
	dir := t.TempDir()

	paths, err := New("products_extracted", nil).ExtractAll(ds, dir, Manifest{Source: "data.xlsx", GitSHA: "abc1234"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "rules.yml"),
		filepath.Join(dir, "products.yml"),
		filepath.Join(dir, "branch_summary.yml"),
		filepath.Join(dir, "manifest.yml"),
	}, paths)

	summary, err := os.ReadFile(filepath.Join(dir, "branch_summary.yml"))
	require.NoError(t, err)
	assert.Equal(t, "branch_summary:\n  - id: 1\n    name: North\n    region: \"N\"\n    manager: Alice\n", string(summary))

	manifest, err := os.ReadFile(filepath.Join(dir, "manifest.yml"))
	require.NoError(t, err)
	assert.Equal(t, "manifest:\n  source: data.xlsx\n  git_sha: abc1234\n  artifacts:\n    - rules\n    - products\n    - branch_summary\n", string(manifest))
}
