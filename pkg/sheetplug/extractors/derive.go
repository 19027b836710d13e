package extractors

import (
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/columns"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/output"
)

var (
	ruleSheets    = []string{"rules", "rule"}
	productSheets = []string{"products", "product"}
	feeSheets     = []string{"fees"}
)

// DeriveRules lists the rules sheet as id/expr pairs. A dataset without a
// rules sheet yields an empty list.
func DeriveRules(ds *models.Dataset) (any, error) {
	rules := []output.Map{}

	name, table, ok := ds.First(ruleSheets...)
	if !ok || table == nil {
		return rules, nil
	}

	idCol, err := columns.Require(table, name, "id", "rule_id")
	if err != nil {
		return nil, err
	}
	exprCol, err := columns.Require(table, name, "expr", "expression", "rule")
	if err != nil {
		return nil, err
	}

	ids, _ := table.Column(idCol)
	exprs, _ := table.Column(exprCol)
	for i := range ids {
		rules = append(rules, output.Map{
			{Key: "id", Value: ids[i]},
			{Key: "expr", Value: exprs[i]},
		})
	}
	return rules, nil
}

// DeriveProducts lists every product with the amounts of its fees.
func DeriveProducts(ds *models.Dataset) (any, error) {
	name, products, ok := ds.First(productSheets...)
	if !ok || products == nil {
		return nil, &sheetplug.MissingTableError{Kind: "products", Candidates: productSheets}
	}

	idCol, err := columns.Require(products, name, "product_id", "id")
	if err != nil {
		return nil, err
	}
	nameCol, nameFound := columns.Resolve(products.Columns, "name", "product_name")

	fees, err := feesByProduct(ds)
	if err != nil {
		return nil, err
	}

	ids, _ := products.Column(idCol)
	var names []any
	if nameFound {
		names, _ = products.Column(nameCol)
	}

	out := make([]output.Map, 0, len(ids))
	for i, id := range ids {
		amounts := []any{}
		if k, ok := models.JoinKey(id); ok && fees[k] != nil {
			amounts = fees[k]
		}
		var productName any
		if nameFound {
			productName = names[i]
		}
		out = append(out, output.Map{
			{Key: "product_id", Value: id},
			{Key: "name", Value: productName},
			{Key: "fees", Value: amounts},
		})
	}
	return out, nil
}

// feesByProduct groups fee amounts by product key, keeping row order.
func feesByProduct(ds *models.Dataset) (map[string][]any, error) {
	grouped := make(map[string][]any)

	name, fees, ok := ds.First(feeSheets...)
	if !ok || fees == nil || fees.NumRows() == 0 {
		return grouped, nil
	}

	keyCol, err := columns.Require(fees, name, "product_id")
	if err != nil {
		return nil, err
	}
	amountCol, err := columns.Require(fees, name, "amount", "fee")
	if err != nil {
		return nil, err
	}

	keys, _ := fees.Column(keyCol)
	amounts, _ := fees.Column(amountCol)
	for i, key := range keys {
		if k, ok := models.JoinKey(key); ok {
			grouped[k] = append(grouped[k], amounts[i])
		}
	}
	return grouped, nil
}

// DeriveSheet returns a derivation listing the rows of a table as ordered
// mappings keyed by column name.
func DeriveSheet(sheet string) func(ds *models.Dataset) (any, error) {
	return func(ds *models.Dataset) (any, error) {
		table, ok := ds.Get(sheet)
		if !ok || table == nil {
			return nil, &sheetplug.MissingTableError{Kind: sheet, Candidates: []string{sheet}}
		}
		return Rows(table), nil
	}
}

// Rows converts table rows to ordered mappings.
func Rows(t *models.Table) []output.Map {
	names := t.ColumnNames()
	rows := make([]output.Map, 0, t.NumRows())
	for r := range t.Rows {
		row := make(output.Map, 0, len(names))
		for c, n := range names {
			row = append(row, output.Entry{Key: n, Value: t.Value(r, c)})
		}
		rows = append(rows, row)
	}
	return rows
}
