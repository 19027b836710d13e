// Package columns resolves column names case-insensitively against lists of
// accepted aliases.
package columns

import (
	"strings"

	"github.com/ukaji3/sheetplug-go/pkg/sheetplug"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"
)

// Flatten returns the flattened name of a column label.
func Flatten(l models.Label) string {
	return l.Flatten()
}

// Resolve returns the actual column name matching the first alias, in
// priority order, that is present in cols. Matching ignores case. When two
// columns differ only by case, the first one wins.
func Resolve(cols []models.Label, aliases ...string) (string, bool) {
	lookup := make(map[string]string, len(cols))
	for _, c := range cols {
		name := Flatten(c)
		key := strings.ToLower(name)
		if _, ok := lookup[key]; !ok {
			lookup[key] = name
		}
	}

	for _, alias := range aliases {
		if name, ok := lookup[strings.ToLower(alias)]; ok {
			return name, true
		}
	}
	return "", false
}

// Require resolves a column of table or returns a *sheetplug.MissingColumnError.
func Require(table *models.Table, tableName string, aliases ...string) (string, error) {
	if name, ok := Resolve(table.Columns, aliases...); ok {
		return name, nil
	}
	return "", &sheetplug.MissingColumnError{Table: tableName, Aliases: aliases}
}
