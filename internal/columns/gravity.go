package columns

import "github.com/rocketscienceinc/columns/internal/entity"

// Compact closes every gap below a colored cell, keeping the order of the colors in each
// column. It is meant for the disposable grids of the speculative check.
func Compact(grid *entity.Grid) {
	for col := range grid.Cols() {
		collapse(grid, col, func(cell entity.Cell) bool {
			return !cell.IsEmpty()
		})
	}
}

// collapse removes the cells of col rejected by keep. Everything above a removed cell moves
// down one row and an empty cell is inserted at the top for each removal. It returns the
// number of removed cells.
func collapse(grid *entity.Grid, col int, keep func(entity.Cell) bool) int {
	column := grid.Column(col)

	kept := make([]entity.Cell, 0, len(column))
	for _, cell := range column {
		if keep(cell) {
			kept = append(kept, cell)
		}
	}

	removed := len(column) - len(kept)
	result := make([]entity.Cell, removed, len(column))
	result = append(result, kept...)
	grid.SetColumn(col, result)

	return removed
}
