// Package parser reads spreadsheet sources into tables.
package parser

import (
	"strconv"

	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"
	"github.com/xuri/excelize/v2"
)

// ReadSheet reads the table region of a sheet. The first headerRows rows of
// the region become column labels; the rest become data rows.
// An empty sheet yields a table with no columns.
func ReadSheet(f *excelize.File, sheetName string, headerRows int) (*models.Table, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	area, ok, err := DetectRegion(f, sheetName, rows)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &models.Table{}, nil
	}

	return BuildTable(rows, area, headerRows), nil
}

// BuildTable converts raw string cells within area into a table.
func BuildTable(rows [][]string, area Area, headerRows int) *models.Table {
	if headerRows < 1 {
		headerRows = 1
	}
	width := area.Width()

	// Slice the region out of the raw rows (1-based area, 0-based rows).
	region := make([][]string, 0, area.R2-area.R1+1)
	for r := area.R1; r <= area.R2; r++ {
		cells := make([]string, width)
		if r-1 < len(rows) {
			row := rows[r-1]
			for c := area.C1; c <= area.C2 && c-1 < len(row); c++ {
				cells[c-area.C1] = row[c-1]
			}
		}
		region = append(region, cells)
	}

	if headerRows > len(region) {
		headerRows = len(region)
	}

	table := &models.Table{Columns: buildLabels(region[:headerRows], width)}
	for _, cells := range region[headerRows:] {
		values := make([]any, width)
		hasData := false
		for i, cell := range cells {
			if cell == "" {
				continue
			}
			hasData = true
			values[i] = parseValue(cell)
		}
		if hasData {
			table.Rows = append(table.Rows, values)
		}
	}

	return table
}

// buildLabels turns header rows into labels: a single header row gives
// simple labels, several rows give structured labels.
func buildLabels(header [][]string, width int) []models.Label {
	labels := make([]models.Label, width)
	for c := 0; c < width; c++ {
		parts := make([]string, len(header))
		for r, row := range header {
			parts[r] = row[c]
		}
		if len(parts) == 1 {
			labels[c] = models.Simple(parts[0])
		} else {
			labels[c] = models.Structured(parts...)
		}
	}
	return labels
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
