// Package load implements the data loading stage.
package load

import (
	"context"
	"fmt"
	"slices"

	"github.com/user/gridshow/pkg/datasource"
	"github.com/user/gridshow/pkg/grid"
	"github.com/user/gridshow/pkg/pipeline"
	"github.com/user/gridshow/pkg/ports"
)

// Stage reads a data set and applies column overrides.
type Stage struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// NewStage creates a new load stage.
func NewStage(fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		fs:     fs,
		logger: logger.WithComponent("load"),
	}
}

// Execute loads input.Path and shapes its columns.
func (s *Stage) Execute(ctx context.Context, input pipeline.LoadInput) (pipeline.LoadResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.LoadResult{}, err
	}

	table, err := datasource.Load(s.fs, input.Path)
	if err != nil {
		return pipeline.LoadResult{}, err
	}
	s.logger.Debug("Loaded %d rows and %d columns from %s", table.RowCount(), len(table.Columns), input.Path)

	columns, data, err := Shape(table.Columns, table, input.Overrides)
	if err != nil {
		return pipeline.LoadResult{}, err
	}

	var order []string
	for _, id := range input.Order {
		if !slices.ContainsFunc(columns, func(c grid.Column) bool { return c.ID == id }) {
			s.logger.Warn("Unknown column %q in order, ignored", id)
			continue
		}
		order = append(order, id)
	}

	return pipeline.LoadResult{
		Columns:    columns,
		Data:       data,
		RowCount:   table.RowCount(),
		RowHeights: input.RowHeights,
		Order:      order,
	}, nil
}

// Shape applies overrides to columns and drops hidden ones. The returned
// data source reads the remaining columns by their new positions.
func Shape(columns []grid.Column, data grid.DataSource, overrides []pipeline.ColumnOverride) ([]grid.Column, grid.DataSource, error) {
	byID := make(map[string]pipeline.ColumnOverride, len(overrides))
	for _, o := range overrides {
		if !slices.ContainsFunc(columns, func(c grid.Column) bool { return c.ID == o.ID }) {
			return nil, nil, fmt.Errorf("override column %q: not found", o.ID)
		}
		if o.Size < 0 {
			return nil, nil, fmt.Errorf("override column %q: negative size %g", o.ID, o.Size)
		}
		byID[o.ID] = o
	}

	out := make([]grid.Column, 0, len(columns))
	source := make([]int, 0, len(columns))
	for i, c := range columns {
		o, ok := byID[c.ID]
		if ok {
			if o.Hidden {
				continue
			}
			if o.Header != "" {
				c.Header = o.Header
			}
			if o.Size > 0 {
				c.Size = o.Size
			}
			if o.CellType != "" {
				c.CellType = o.CellType
			}
		}
		out = append(out, c)
		source = append(source, i)
	}

	if len(source) == len(columns) {
		return out, data, nil
	}
	remapped := grid.DataFunc(func(row, col int) any {
		if col < 0 || col >= len(source) {
			return nil
		}
		return data.Value(row, source[col])
	})
	return out, remapped, nil
}
