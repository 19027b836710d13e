// Package transforms provides dataset transform steps.
package transforms

import "github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"

// Suffixes applied to overlapping non-key column names in a merge.
const (
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)

// LeftMerge joins every row of left with each row of right whose rightKey
// value equals its leftKey value, keeping left row order. Left rows without
// a match get nil for all right columns.
//
// Result columns are the left columns followed by the right columns. When
// both keys have the same name the right key column is dropped. Other names
// present on both sides get LeftSuffix and RightSuffix.
func LeftMerge(left, right *models.Table, leftKey, rightKey string) *models.Table {
	li := left.ColumnIndex(leftKey)
	ri := right.ColumnIndex(rightKey)

	index := make(map[string][]int)
	for r := range right.Rows {
		if k, ok := models.JoinKey(right.Value(r, ri)); ok {
			index[k] = append(index[k], r)
		}
	}

	sameKey := leftKey == rightKey
	rightCols := make([]int, 0, len(right.Columns))
	for c := range right.Columns {
		if sameKey && c == ri {
			continue
		}
		rightCols = append(rightCols, c)
	}

	columns := mergeLabels(left, right, rightCols, leftKey, sameKey)
	out := &models.Table{Columns: columns}

	for r := range left.Rows {
		var matches []int
		if k, ok := models.JoinKey(left.Value(r, li)); ok {
			matches = index[k]
		}
		if len(matches) == 0 {
			out.Rows = append(out.Rows, joinRow(left, r, right, -1, rightCols))
			continue
		}
		for _, m := range matches {
			out.Rows = append(out.Rows, joinRow(left, r, right, m, rightCols))
		}
	}

	return out
}

func joinRow(left *models.Table, lr int, right *models.Table, rr int, rightCols []int) []any {
	row := make([]any, 0, len(left.Columns)+len(rightCols))
	for c := range left.Columns {
		row = append(row, left.Value(lr, c))
	}
	for _, c := range rightCols {
		if rr < 0 {
			row = append(row, nil)
		} else {
			row = append(row, right.Value(rr, c))
		}
	}
	return row
}

func mergeLabels(left, right *models.Table, rightCols []int, key string, sameKey bool) []models.Label {
	leftNames := make(map[string]bool, len(left.Columns))
	for _, l := range left.Columns {
		leftNames[l.Flatten()] = true
	}
	rightNames := make(map[string]bool, len(rightCols))
	for _, c := range rightCols {
		rightNames[right.Columns[c].Flatten()] = true
	}
	overlaps := func(name string) bool {
		if sameKey && name == key {
			return false
		}
		return leftNames[name] && rightNames[name]
	}

	labels := make([]models.Label, 0, len(left.Columns)+len(rightCols))
	for _, l := range left.Columns {
		if name := l.Flatten(); overlaps(name) {
			l = models.Simple(name + LeftSuffix)
		}
		labels = append(labels, l)
	}
	for _, c := range rightCols {
		l := right.Columns[c]
		if name := l.Flatten(); overlaps(name) {
			l = models.Simple(name + RightSuffix)
		}
		labels = append(labels, l)
	}
	return labels
}
