package extractions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func branchesTable(idCol string) *models.Table {
	return models.NewTable([]string{idCol, "name", "region"},
		[]any{int64(3), "South", "S"},
		[]any{int64(1), "North", "N"},
		[]any{int64(2), "East", "E"},
	)
}

func dataset(entries ...models.Entry) *models.Dataset {
	return models.NewDataset(entries...)
}

func TestBranchManagerSummaryJoin(t *testing.T) {
	ds := dataset(
		models.Entry{Name: "branches", Table: branchesTable("branch_id")},
		models.Entry{Name: "managers", Table: models.NewTable([]string{"branch_id", "manager"},
			[]any{int64(1), "Alice"},
			[]any{int64(3), "Carol"},
		)},
	)

	out, err := BranchManagerSummary(ds, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, SummaryColumns, out.ColumnNames())
	assert.Equal(t, [][]any{
		{int64(1), "North", "N", "Alice"},
		{int64(2), "East", "E", ""},
		{int64(3), "South", "S", "Carol"},
	}, out.Rows)
}

func TestBranchManagerSummarySortsLargeIDs(t *testing.T) {
	ds := dataset(
		models.Entry{Name: "branches", Table: models.NewTable([]string{"id", "name", "region"},
			[]any{int64(9007199254740993), "North", "N"},
			[]any{int64(9007199254740992), "East", "E"},
		)},
		models.Entry{Name: "managers", Table: models.NewTable([]string{"id", "manager"},
			[]any{9007199254740992.0, "Alice"},
		)},
	)

	out, err := BranchManagerSummary(ds, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, [][]any{
		{int64(9007199254740992), "East", "E", "Alice"},
		{int64(9007199254740993), "North", "N", ""},
	}, out.Rows)
}

func TestBranchManagerSummaryNoManagers(t *testing.T) {
	ds := dataset(models.Entry{Name: "branch", Table: branchesTable("id")})

	out, err := BranchManagerSummary(ds, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, out.NumRows())
	manager, _ := out.Column("manager")
	assert.Equal(t, []any{"", "", ""}, manager)
}

func TestBranchManagerSummaryEmptyManagersWithoutKey(t *testing.T) {
	ds := dataset(
		models.Entry{Name: "branches", Table: branchesTable("id")},
		models.Entry{Name: "managers", Table: models.NewTable([]string{"whatever"})},
	)

	out, err := BranchManagerSummary(ds, DefaultOptions())
	require.NoError(t, err)
	manager, _ := out.Column("manager")
	assert.Equal(t, []any{"", "", ""}, manager)
}

func TestBranchManagerSummaryCaseInsensitive(t *testing.T) {
	managers := models.NewTable([]string{"ID_(Branch)", "Lead"},
		[]any{int64(2), "Bob"},
	)
	lower := dataset(
		models.Entry{Name: "branches", Table: branchesTable("id")},
		models.Entry{Name: "managers", Table: managers},
	)
	upper := dataset(
		models.Entry{Name: "branches", Table: branchesTable("ID")},
		models.Entry{Name: "managers", Table: managers},
	)

	a, err := BranchManagerSummary(lower, DefaultOptions())
	require.NoError(t, err)
	b, err := BranchManagerSummary(upper, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, []any{int64(2), "East", "E", "Bob"}, a.Rows[1])
}

func TestBranchManagerSummaryDuplicateKeys(t *testing.T) {
	ds := dataset(
		models.Entry{Name: "branches", Table: branchesTable("id")},
		models.Entry{Name: "managers", Table: models.NewTable([]string{"branch_id", "manager"},
			[]any{int64(2), "Zed"},
			[]any{int64(1), "Alice"},
			[]any{int64(2), "Bob"},
			[]any{2.0, "Ann"},
		)},
	)

	for i := 0; i < 5; i++ {
		out, err := BranchManagerSummary(ds, DefaultOptions())
		require.NoError(t, err)
		require.Equal(t, 3, out.NumRows())
		assert.Equal(t, "Zed", out.Rows[1][3])
	}
}

func TestBranchManagerSummaryPreservesCardinality(t *testing.T) {
	branches := models.NewTable([]string{"id", "name", "region"},
		[]any{int64(1), "A", "N"},
		[]any{"b-7", "B", "S"},
		[]any{nil, "C", "W"},
		[]any{0.5, "D", "E"},
	)
	ds := dataset(
		models.Entry{Name: "branches", Table: branches},
		models.Entry{Name: "managers", Table: models.NewTable([]string{"id", "manager"},
			[]any{"b-7", "Bea"},
			[]any{int64(1), "Al"},
			[]any{int64(1), "Other"},
		)},
	)

	out, err := BranchManagerSummary(ds, DefaultOptions())
	require.NoError(t, err)

	require.Equal(t, branches.NumRows(), out.NumRows())
	ids, _ := out.Column("id")
	assert.Equal(t, []any{0.5, int64(1), "b-7", nil}, ids)
	managers, _ := out.Column("manager")
	assert.Equal(t, []any{"", "Al", "Bea", ""}, managers)
}

func TestBranchManagerSummarySynthesizesManagerColumn(t *testing.T) {
	ds := dataset(
		models.Entry{Name: "branches", Table: branchesTable("id")},
		models.Entry{Name: "branch_managers", Table: models.NewTable([]string{"branch_id", "email"},
			[]any{int64(1), "a@example.com"},
		)},
	)

	out, err := BranchManagerSummary(ds, DefaultOptions())
	require.NoError(t, err)
	manager, _ := out.Column("manager")
	assert.Equal(t, []any{"", "", ""}, manager)
}

func TestBranchManagerSummaryAliasPriority(t *testing.T) {
	ds := dataset(
		models.Entry{Name: "branches", Table: branchesTable("id")},
		models.Entry{Name: "managers", Table: models.NewTable([]string{"branch_id", "id", "manager"},
			[]any{int64(1), int64(3), "Carol"},
		)},
	)

	out, err := BranchManagerSummary(ds, DefaultOptions())
	require.NoError(t, err)
	manager, _ := out.Column("manager")
	assert.Equal(t, []any{"", "", "Carol"}, manager)
}

func TestBranchManagerSummaryErrors(t *testing.T) {
	t.Run("missing branches table", func(t *testing.T) {
		_, err := BranchManagerSummary(dataset(), DefaultOptions())
		var missing *sheetplug.MissingTableError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, []string{"branch", "branches"}, missing.Candidates)
	})

	t.Run("missing region column", func(t *testing.T) {
		ds := dataset(models.Entry{Name: "branches", Table: models.NewTable([]string{"id", "name"})})
		_, err := BranchManagerSummary(ds, DefaultOptions())
		var missing *sheetplug.MissingColumnError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, BranchRegionAliases, missing.Aliases)
	})

	t.Run("manager key missing with rows", func(t *testing.T) {
		ds := dataset(
			models.Entry{Name: "branches", Table: branchesTable("id")},
			models.Entry{Name: "managers", Table: models.NewTable([]string{"manager"}, []any{"Alice"})},
		)
		_, err := BranchManagerSummary(ds, DefaultOptions())
		var missing *sheetplug.MissingColumnError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "managers", missing.Table)
	})
}

func TestBranchManagerSummaryLogsDetectedColumns(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	opts := DefaultOptions()
	opts.Logger = zap.New(core)

	_, err := BranchManagerSummary(dataset(models.Entry{Name: "branches", Table: branchesTable("Branch_ID")}), opts)
	require.NoError(t, err)

	entries := logs.FilterMessage("detected branch columns").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Branch_ID", entries[0].ContextMap()["id"])
}

func TestBranchSummaryStep(t *testing.T) {
	ds := dataset(models.Entry{Name: "branches", Table: branchesTable("id")})

	out, err := NewBranchSummaryStep(DefaultOptions(), false).Run(ds)
	require.NoError(t, err)
	assert.Equal(t, []string{"branches", BranchSummarySheet}, out.Names())
	assert.False(t, ds.Has(BranchSummarySheet))

	empty := dataset()
	_, err = NewBranchSummaryStep(DefaultOptions(), false).Run(empty)
	assert.Error(t, err)

	same, err := NewBranchSummaryStep(DefaultOptions(), true).Run(empty)
	require.NoError(t, err)
	assert.Same(t, empty, same)
}
