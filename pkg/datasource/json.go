package datasource

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/user/gridshow/pkg/grid"
)

var errInvalidJSON = errors.New("invalid json")

// ParseJSON parses a document of the form
//
//	{"columns": [{"id": "name", "header": "Name", "cellType": "text", "size": 120}],
//	 "rows": [{"name": "Ada"}]}
//
// A top-level array is treated as rows. When columns are absent they are
// taken from the keys of the rows in first-seen order and their types are
// inferred from the values.
func ParseJSON(data []byte) (*Table, error) {
	if !gjson.ValidBytes(data) {
		return nil, errInvalidJSON
	}
	doc := gjson.ParseBytes(data)

	rowsResult := doc.Get("rows")
	if doc.IsArray() {
		rowsResult = doc
	}
	if rowsResult.Exists() && !rowsResult.IsArray() {
		return nil, fmt.Errorf("%w: rows must be an array", errInvalidJSON)
	}
	records := rowsResult.Array()

	columns := declaredColumns(doc.Get("columns"))
	if len(columns) == 0 {
		columns = discoverColumns(records)
	}
	for i, c := range columns {
		if c.CellType != "" {
			continue
		}
		values := make([]gjson.Result, 0, len(records))
		for _, rec := range records {
			values = append(values, rec.Get(gjson.Escape(c.ID)))
		}
		columns[i].CellType = inferJSONType(values)
	}

	rows := make([][]any, len(records))
	for ri, rec := range records {
		row := make([]any, len(columns))
		for ci, c := range columns {
			row[ci] = jsonValue(rec.Get(gjson.Escape(c.ID)), c.CellType)
		}
		rows[ri] = row
	}
	return &Table{Columns: columns, Rows: rows}, nil
}

func declaredColumns(result gjson.Result) []grid.Column {
	var columns []grid.Column
	seen := make(map[string]bool)
	for i, c := range result.Array() {
		id := c.Get("id").String()
		if id == "" || seen[id] {
			id = columnID(c.Get("header").String(), i, seen)
		} else {
			seen[id] = true
		}
		header := c.Get("header").String()
		if header == "" {
			header = id
		}
		columns = append(columns, grid.Column{
			ID:       id,
			Header:   header,
			Size:     c.Get("size").Float(),
			CellType: c.Get("cellType").String(),
		})
	}
	return columns
}

func discoverColumns(records []gjson.Result) []grid.Column {
	var keys []string
	samples := make(map[string][]gjson.Result)
	for _, rec := range records {
		rec.ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			if _, ok := samples[k]; !ok {
				keys = append(keys, k)
			}
			samples[k] = append(samples[k], value)
			return true
		})
	}

	columns := make([]grid.Column, len(keys))
	for i, k := range keys {
		columns[i] = grid.Column{ID: k, Header: k, CellType: inferJSONType(samples[k])}
	}
	return columns
}

// inferJSONType uses the JSON kinds first and falls back to string
// inference for string values.
func inferJSONType(values []gjson.Result) string {
	var strs []string
	number, boolean := true, true
	for _, v := range values {
		switch v.Type {
		case gjson.Null:
			continue
		case gjson.Number:
			boolean = false
		case gjson.True, gjson.False:
			number = false
		case gjson.JSON:
			if v.IsArray() {
				return grid.CellSelect
			}
			return grid.CellText
		default:
			number, boolean = false, false
			strs = append(strs, v.String())
		}
	}
	switch {
	case len(strs) > 0:
		return inferType(strs)
	case number && !boolean:
		return grid.CellNumber
	case boolean && !number:
		return grid.CellCheckbox
	default:
		return grid.CellText
	}
}

func jsonValue(v gjson.Result, cellType string) any {
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.Number:
		return v.Float()
	case gjson.True, gjson.False:
		return v.Bool()
	case gjson.JSON:
		if v.IsArray() {
			var out []string
			for _, e := range v.Array() {
				out = append(out, e.String())
			}
			return out
		}
		return v.Raw
	default:
		return convert(v.String(), cellType)
	}
}
