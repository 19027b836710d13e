package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Area represents cell coordinate bounds of a table region.
type Area struct {
	// R1 is the start row (1-based).
	R1 int
	// C1 is the start column (1-based).
	C1 int
	// R2 is the end row (1-based, inclusive).
	R2 int
	// C2 is the end column (1-based, inclusive).
	C2 int
}

// String returns the area in A1 notation.
func (a Area) String() string {
	start, _ := excelize.CoordinatesToCellName(a.C1, a.R1)
	end, _ := excelize.CoordinatesToCellName(a.C2, a.R2)
	return fmt.Sprintf("%s:%s", start, end)
}

// Width returns the number of columns in the area.
func (a Area) Width() int {
	return a.C2 - a.C1 + 1
}

// ParseRange parses a reference like 'Sheet 1'!$A$1:$D$10 or A1:D10.
// The sheet name, if any, is returned without quotes.
func ParseRange(ref string) (string, Area, error) {
	ref = strings.TrimSpace(ref)

	var sheet string
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheet = strings.Trim(ref[:idx], "'")
		ref = ref[idx+1:]
	}

	area, ok := parseRangeToArea(ref)
	if !ok {
		return sheet, Area{}, fmt.Errorf("invalid range %q", ref)
	}
	return sheet, area, nil
}

// parseRangeToArea parses a range string like $A$1:$D$10 to Area.
// A single cell reference yields a one-cell area.
func parseRangeToArea(rangeStr string) (Area, bool) {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return Area{}, false
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return Area{}, false
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return Area{}, false
	}

	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return Area{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, true
}
