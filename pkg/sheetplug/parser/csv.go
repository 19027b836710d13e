package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"
)

// ReadCSV reads a comma separated table. Records may have differing widths;
// short rows are padded with empty cells.
func ReadCSV(r io.Reader, headerRows int) (*models.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}

	area, ok := boundsOf(rows)
	if !ok {
		return &models.Table{}, nil
	}
	return BuildTable(rows, area, headerRows), nil
}
