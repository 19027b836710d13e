// Package extractions derives summary tables from a dataset.
package extractions

import (
	"errors"
	"sort"

	"github.com/ukaji3/sheetplug-go/pkg/sheetplug"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/columns"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/pipeline"
	"go.uber.org/zap"
)

// BranchSummarySheet is the name of the derived table.
const BranchSummarySheet = "BranchSummary"

// Column aliases, in priority order.
var (
	BranchIDAliases     = []string{"id", "branch_id"}
	BranchNameAliases   = []string{"name"}
	BranchRegionAliases = []string{"region"}
	ManagerKeyAliases   = []string{"id", "branch_id", "id_(branch)"}
	ManagerNameAliases  = []string{"manager", "manager_name", "lead"}
)

// SummaryColumns are the columns of the BranchSummary table.
var SummaryColumns = []string{"id", "name", "region", "manager"}

// Options configures the branch/manager join.
type Options struct {
	// BranchSheets are candidate names of the branches table.
	BranchSheets []string
	// ManagerSheets are candidate names of the managers table.
	ManagerSheets []string
	// Logger receives column detection events. Nil disables logging.
	Logger *zap.Logger
}

// DefaultOptions returns the default candidate table names.
func DefaultOptions() Options {
	return Options{
		BranchSheets:  []string{"branch", "branches"},
		ManagerSheets: []string{"managers", "manager", "branch_managers"},
	}
}

// BranchManagerSummary left-joins the branches table with the managers table
// and returns a table with one row per branch row, sorted by id.
// Branches without a manager get an empty manager.
func BranchManagerSummary(ds *models.Dataset, opts Options) (*models.Table, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	branchName, branches, ok := ds.First(opts.BranchSheets...)
	if !ok || branches == nil {
		return nil, &sheetplug.MissingTableError{Kind: "branches", Candidates: opts.BranchSheets}
	}

	managerName, managers, ok := ds.First(opts.ManagerSheets...)
	if !ok || managers == nil {
		managerName = "managers"
		managers = models.NewTable([]string{"branch_id", "manager"})
	}

	idCol, err := columns.Require(branches, branchName, BranchIDAliases...)
	if err != nil {
		return nil, err
	}
	nameCol, err := columns.Require(branches, branchName, BranchNameAliases...)
	if err != nil {
		return nil, err
	}
	regionCol, err := columns.Require(branches, branchName, BranchRegionAliases...)
	if err != nil {
		return nil, err
	}
	logger.Debug("detected branch columns",
		zap.String("table", branchName),
		zap.String("id", idCol),
		zap.String("name", nameCol),
		zap.String("region", regionCol))

	keyCol, keyFound := columns.Resolve(managers.Columns, ManagerKeyAliases...)
	if !keyFound && managers.NumRows() > 0 {
		return nil, &sheetplug.MissingColumnError{Table: managerName, Aliases: ManagerKeyAliases}
	}
	mgrCol, mgrFound := columns.Resolve(managers.Columns, ManagerNameAliases...)
	logger.Debug("detected manager columns",
		zap.String("table", managerName),
		zap.String("key", keyCol),
		zap.String("manager", mgrCol),
		zap.Bool("manager_synthesized", !mgrFound))

	lookup := managerLookup(managers, keyCol, keyFound, mgrCol, mgrFound)

	bi := branches.ColumnIndex(idCol)
	ni := branches.ColumnIndex(nameCol)
	ri := branches.ColumnIndex(regionCol)

	out := models.NewTable(SummaryColumns)
	out.Rows = make([][]any, 0, branches.NumRows())
	for r := range branches.Rows {
		id := branches.Value(r, bi)
		manager := ""
		if k, ok := models.JoinKey(id); ok {
			manager = lookup[k]
		}
		out.Rows = append(out.Rows, []any{id, branches.Value(r, ni), branches.Value(r, ri), manager})
	}

	sort.SliceStable(out.Rows, func(i, j int) bool {
		return models.CompareValues(out.Rows[i][0], out.Rows[j][0]) < 0
	})

	return out, nil
}

// managerLookup maps each foreign key to a single manager name. Rows are
// stable-sorted by key and the first row per key wins.
func managerLookup(managers *models.Table, keyCol string, keyFound bool, mgrCol string, mgrFound bool) map[string]string {
	lookup := make(map[string]string)
	if !keyFound {
		return lookup
	}

	ki := managers.ColumnIndex(keyCol)
	mi := -1
	if mgrFound {
		mi = managers.ColumnIndex(mgrCol)
	}

	order := make([]int, managers.NumRows())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return models.CompareValues(managers.Value(order[a], ki), managers.Value(order[b], ki)) < 0
	})

	for _, r := range order {
		k, ok := models.JoinKey(managers.Value(r, ki))
		if !ok {
			continue
		}
		if _, seen := lookup[k]; seen {
			continue
		}
		lookup[k] = models.FormatValue(managers.Value(r, mi))
	}
	return lookup
}

// NewBranchSummaryStep exposes the join as a pipeline step that stores the
// result under BranchSummarySheet. With optional set, a missing branches
// table passes the dataset through instead of failing.
func NewBranchSummaryStep(opts Options, optional bool) pipeline.Step {
	run := func(ds *models.Dataset) (*models.Dataset, error) {
		summary, err := BranchManagerSummary(ds, opts)
		if err != nil {
			var missing *sheetplug.MissingTableError
			if optional && errors.As(err, &missing) {
				if opts.Logger != nil {
					opts.Logger.Info("branch summary skipped", zap.Error(err))
				}
				return ds, nil
			}
			return nil, err
		}
		return ds.With(BranchSummarySheet, summary), nil
	}

	return pipeline.Step{
		Name: "branch_summary",
		Config: map[string]any{
			"branch_sheets":  opts.BranchSheets,
			"manager_sheets": opts.ManagerSheets,
			"optional":       optional,
		},
		Fn: run,
	}
}
