package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"
)

var (
	previewSheet    string
	previewLimit    int
	previewPipeline bool
)

func newPreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print a table of the dataset",
		Args:  cobra.NoArgs,
		RunE:  runPreview,
	}

	cmd.Flags().String("data", "", "Input workbook, CSV file or directory")
	cmd.Flags().StringVar(&previewSheet, "sheet", "", "Table to print (default: list tables)")
	cmd.Flags().IntVar(&previewLimit, "limit", 20, "Maximum rows to print (0 for all)")
	cmd.Flags().BoolVar(&previewPipeline, "pipeline", false, "Run the pipeline before printing")

	return cmd
}

func runPreview(cmd *cobra.Command, args []string) error {
	if cfg.Data == "" {
		return errors.New("missing input: set --data or data in the config file")
	}

	ds, err := sheetplug.LoadDataset(cfg.Data, loadOptions(cfg))
	if err != nil {
		return err
	}

	if previewPipeline {
		if ds, err = runPipeline(cfg, logger, ds); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if previewSheet == "" {
		renderTableList(w, ds)
		return nil
	}

	t, ok := ds.Get(previewSheet)
	if !ok || t == nil {
		return fmt.Errorf("table %q not found", previewSheet)
	}
	renderTable(w, t, previewLimit)
	return nil
}

func renderTableList(w io.Writer, ds *models.Dataset) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"table", "columns", "rows"})
	for _, e := range ds.Entries() {
		if e.Table == nil {
			tw.AppendRow(table.Row{e.Name, "-", "-"})
			continue
		}
		tw.AppendRow(table.Row{e.Name, e.Table.NumColumns(), e.Table.NumRows()})
	}
	tw.Render()
}

func renderTable(w io.Writer, t *models.Table, limit int) {
	if t.NumColumns() == 0 {
		_, _ = fmt.Fprintln(w, "(no columns)")
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, t.NumColumns())
	for i, l := range t.Columns {
		header[i] = l.String()
	}
	tw.AppendHeader(header)

	for r := range t.Rows {
		if limit > 0 && r >= limit {
			break
		}
		row := make(table.Row, t.NumColumns())
		for c := range row {
			row[c] = models.FormatValue(t.Value(r, c))
		}
		tw.AppendRow(row)
	}

	if limit > 0 && t.NumRows() > limit {
		tw.AppendFooter(table.Row{fmt.Sprintf("%d more rows", t.NumRows()-limit)})
	}
	tw.Render()
}
