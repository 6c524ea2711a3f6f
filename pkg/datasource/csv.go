package datasource

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/user/gridshow/pkg/grid"
)

// ParseCSV parses delimited text whose first record is the header row.
// Short records are padded with empty cells.
func ParseCSV(data []byte, delimiter rune) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	header := records[0]
	body := records[1:]
	seen := make(map[string]bool, len(header))

	columns := make([]grid.Column, len(header))
	for i, h := range header {
		samples := make([]string, 0, len(body))
		for _, rec := range body {
			if i < len(rec) {
				samples = append(samples, rec[i])
			}
		}
		columns[i] = grid.Column{
			ID:       columnID(h, i, seen),
			Header:   h,
			CellType: inferType(samples),
		}
	}

	rows := make([][]any, len(body))
	for ri, rec := range body {
		row := make([]any, len(columns))
		for ci, c := range columns {
			var s string
			if ci < len(rec) {
				s = rec[ci]
			}
			row[ci] = convert(s, c.CellType)
		}
		rows[ri] = row
	}

	return &Table{Columns: columns, Rows: rows}, nil
}
