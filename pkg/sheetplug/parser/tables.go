package parser

import (
	"github.com/xuri/excelize/v2"
)

// DetectRegion finds the cell region holding a sheet's table.
// A defined Excel table object takes precedence; otherwise the bounding box
// of all non-empty cells is used. It returns false for an empty sheet.
func DetectRegion(f *excelize.File, sheetName string, rows [][]string) (Area, bool, error) {
	tables, err := f.GetTables(sheetName)
	if err != nil {
		return Area{}, false, err
	}
	for _, tbl := range tables {
		if _, area, err := ParseRange(tbl.Range); err == nil {
			return area, true, nil
		}
	}

	area, ok := boundsOf(rows)
	return area, ok, nil
}

// boundsOf returns the bounding box of non-empty cells as a 1-based Area.
func boundsOf(rows [][]string) (Area, bool) {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return Area{}, false
	}
	return Area{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}, true
}

// findDataBounds finds the bounding box of non-empty cells (0-based).
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}
