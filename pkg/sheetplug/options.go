// Package sheetplug loads spreadsheet datasets and defines the errors shared
// by the post-processing steps.
package sheetplug

// Options configures dataset loading.
type Options struct {
	// HeaderRows is the number of header rows at the top of each table.
	// Values above 1 produce structured column labels. Zero means 1.
	HeaderRows int
	// Sheets restricts loading to the named tables. Empty loads all.
	Sheets []string
}

// DefaultOptions returns default load options.
func DefaultOptions() Options {
	return Options{
		HeaderRows: 1,
	}
}

// headerRows returns the effective header row count.
func (o Options) headerRows() int {
	if o.HeaderRows < 1 {
		return 1
	}
	return o.HeaderRows
}

// wants reports whether the named table should be loaded.
func (o Options) wants(name string) bool {
	if len(o.Sheets) == 0 {
		return true
	}
	for _, s := range o.Sheets {
		if s == name {
			return true
		}
	}
	return false
}
