package sheetplug

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/models"
	"github.com/ukaji3/sheetplug-go/pkg/sheetplug/parser"
	"github.com/xuri/excelize/v2"
)

// LoadDataset loads a workbook, a CSV file, or a directory of both into a
// dataset. Tables keep the order of sheets within a workbook and the lexical
// order of files within a directory.
func LoadDataset(path string, opts Options) (*models.Dataset, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, err
	}

	var entries []models.Entry
	if info.IsDir() {
		entries, err = loadDir(path, opts)
	} else {
		entries, err = loadFile(path, opts)
	}
	if err != nil {
		return nil, err
	}

	return models.NewDataset(entries...), nil
}

func loadDir(dir string, opts Options) ([]models.Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		if f.IsDir() || !isSupported(f.Name()) {
			continue
		}
		names = append(names, f.Name())
	}
	sort.Strings(names)

	var all []models.Entry
	seen := make(map[string]string)
	for _, name := range names {
		path := filepath.Join(dir, name)
		entries, err := loadFile(path, opts)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if prev, ok := seen[e.Name]; ok {
				return nil, &LoadError{
					Source: path,
					Sheet:  e.Name,
					Err:    fmt.Errorf("%w: also defined in %s", ErrDuplicateTable, prev),
				}
			}
			seen[e.Name] = path
			all = append(all, e)
		}
	}

	return all, nil
}

func loadFile(path string, opts Options) ([]models.Entry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return loadWorkbook(path, opts)
	case ".csv":
		return loadCSV(path, opts)
	default:
		return nil, &LoadError{Source: path, Err: ErrInvalidFormat}
	}
}

func loadWorkbook(path string, opts Options) ([]models.Entry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: fmt.Errorf("%w: %v", ErrInvalidFormat, err)}
	}
	defer f.Close()

	var entries []models.Entry
	for _, sheetName := range f.GetSheetList() {
		if !opts.wants(sheetName) {
			continue
		}
		table, err := parser.ReadSheet(f, sheetName, opts.headerRows())
		if err != nil {
			return nil, &LoadError{Source: path, Sheet: sheetName, Err: err}
		}
		entries = append(entries, models.Entry{Name: sheetName, Table: table})
	}

	return entries, nil
}

func loadCSV(path string, opts Options) ([]models.Entry, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if !opts.wants(name) {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	table, err := parser.ReadCSV(f, opts.headerRows())
	if err != nil {
		return nil, &LoadError{Source: path, Sheet: name, Err: err}
	}

	return []models.Entry{{Name: name, Table: table}}, nil
}

func isSupported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".csv":
		return !strings.HasPrefix(name, "~$")
	}
	return false
}
