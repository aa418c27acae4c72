package columns

import "github.com/rocketscienceinc/columns/internal/entity"

const minRun = 3

// directions holds the four axes, each walked both ways.
var directions = [8][2]int{
	{0, 1},
	{1, 1},
	{1, 0},
	{1, -1},
	{0, -1},
	{-1, -1},
	{-1, 0},
	{-1, 1},
}

// FlagMatches marks every cell that is part of a run of at least three cells of the same
// color, in any of the eight directions, and returns how many cells are marked.
func FlagMatches(grid *entity.Grid) int {
	marked := make(map[[2]int]struct{})

	for col := range grid.Cols() {
		for row := range grid.Rows() {
			if grid.At(col, row).IsEmpty() {
				continue
			}

			for _, dir := range directions {
				length := runLength(grid, col, row, dir[0], dir[1])
				if length < minRun {
					continue
				}

				for i := range length {
					marked[[2]int{col + dir[0]*i, row + dir[1]*i}] = struct{}{}
				}
			}
		}
	}

	for pos := range marked {
		cell := grid.At(pos[0], pos[1])
		cell.State = entity.StateMatched
		grid.Set(pos[0], pos[1], cell)
	}

	return len(marked)
}

// runLength counts the cells of the starting cell's color from (col, row) towards (dc, dr).
func runLength(grid *entity.Grid, col, row, dc, dr int) int {
	color := grid.At(col, row).Color

	length := 0
	for grid.InBounds(col, row) {
		cell := grid.At(col, row)
		if cell.IsEmpty() || cell.Color != color {
			break
		}

		length++
		col += dc
		row += dr
	}

	return length
}

// HasMatches reports whether any cell is marked as matched.
func HasMatches(grid *entity.Grid) bool {
	for col := range grid.Cols() {
		for row := range grid.Rows() {
			if grid.At(col, row).State == entity.StateMatched {
				return true
			}
		}
	}
	return false
}

// DeleteMatches removes every matched cell. The cells above a removed one move down a row
// and an empty cell takes the top of the column. It returns how many cells were removed.
func DeleteMatches(grid *entity.Grid) int {
	deleted := 0
	for col := range grid.Cols() {
		deleted += collapse(grid, col, func(cell entity.Cell) bool {
			return cell.State != entity.StateMatched
		})
	}
	return deleted
}
