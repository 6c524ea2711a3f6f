// Package datasource loads tabular data sets for the grid from CSV and
// JSON files. Column cell types are inferred from the values when the
// file does not name them.
package datasource

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/user/gridshow/pkg/grid"
	"github.com/user/gridshow/pkg/ports"
)

// ErrUnsupportedFormat is returned for file extensions other than .csv,
// .tsv and .json.
var ErrUnsupportedFormat = errors.New("unsupported data format")

// Table is an in-memory data set. Values are stored row-major in column
// order and the table implements grid.DataSource.
type Table struct {
	Columns []grid.Column
	Rows    [][]any
}

// Value implements grid.DataSource. Out-of-range positions yield nil.
func (t *Table) Value(row, col int) any {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// Column returns the column with the given id.
func (t *Table) Column(id string) (grid.Column, bool) {
	for _, c := range t.Columns {
		if c.ID == id {
			return c, true
		}
	}
	return grid.Column{}, false
}

// Load reads path through fs and parses it by extension.
func Load(fs ports.FileSystem, path string) (*Table, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data %s: %w", path, err)
	}

	var table *Table
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		table, err = ParseCSV(data, ',')
	case ".tsv":
		table, err = ParseCSV(data, '\t')
	case ".json":
		table, err = ParseJSON(data)
	default:
		return nil, fmt.Errorf("load %s: %w: %q", path, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse data %s: %w", path, err)
	}
	return table, nil
}

var _ grid.DataSource = (*Table)(nil)
