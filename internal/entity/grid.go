package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDimensions = errors.New("invalid grid dimensions")

// Grid is a fixed-size board stored column by column. Row 0 is the top row.
type Grid struct {
	rows  int
	cells [][]Cell
}

func NewGrid(rows, cols int) *Grid {
	cells := make([][]Cell, cols)
	for col := range cells {
		cells[col] = make([]Cell, rows)
	}

	return &Grid{rows: rows, cells: cells}
}

// ParseGrid builds a grid from rows written top to bottom, one character per column.
// A '.' or ' ' is an empty cell, a palette letter is a frozen cell of that color.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}

	grid := NewGrid(len(rows), len(rows[0]))
	for row, line := range rows {
		if len(line) != grid.Cols() {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidDimensions, row, len(line), grid.Cols())
		}

		for col := range len(line) {
			ch := line[col : col+1]
			if ch == "." || ch == " " {
				continue
			}

			color, err := ParseColor(ch)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", row, col, err)
			}
			grid.cells[col][row] = Frozen(color)
		}
	}

	return grid, nil
}

// MustParseGrid is ParseGrid for fixtures known to be valid.
func MustParseGrid(rows ...string) *Grid {
	grid, err := ParseGrid(rows...)
	if err != nil {
		panic(err)
	}
	return grid
}

func (that *Grid) Rows() int {
	return that.rows
}

func (that *Grid) Cols() int {
	return len(that.cells)
}

func (that *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < that.Cols() && row >= 0 && row < that.rows
}

func (that *Grid) At(col, row int) Cell {
	return that.cells[col][row]
}

func (that *Grid) Set(col, row int, cell Cell) {
	that.cells[col][row] = cell
}

// Column returns a copy of the cells of col, top to bottom.
func (that *Grid) Column(col int) []Cell {
	column := make([]Cell, that.rows)
	copy(column, that.cells[col])
	return column
}

// SetColumn replaces the cells of col. The length must equal Rows.
func (that *Grid) SetColumn(col int, cells []Cell) {
	copy(that.cells[col], cells)
}

// HasRoom reports whether col holds at least one empty cell.
func (that *Grid) HasRoom(col int) bool {
	for _, cell := range that.cells[col] {
		if cell.IsEmpty() {
			return true
		}
	}
	return false
}

// OpenColumns lists the columns that still have an empty cell.
func (that *Grid) OpenColumns() []int {
	open := make([]int, 0, that.Cols())
	for col := range that.cells {
		if that.HasRoom(col) {
			open = append(open, col)
		}
	}
	return open
}

func (that *Grid) Clone() *Grid {
	clone := NewGrid(that.rows, that.Cols())
	for col := range that.cells {
		copy(clone.cells[col], that.cells[col])
	}
	return clone
}

// PadTop returns a copy with n empty rows added above row 0.
func (that *Grid) PadTop(n int) *Grid {
	padded := NewGrid(that.rows+n, that.Cols())
	for col := range that.cells {
		copy(padded.cells[col][n:], that.cells[col])
	}
	return padded
}

// CropTop returns a copy without its first n rows.
func (that *Grid) CropTop(n int) *Grid {
	cropped := NewGrid(that.rows-n, that.Cols())
	for col := range that.cells {
		copy(cropped.cells[col], that.cells[col][n:])
	}
	return cropped
}

func (that *Grid) Equal(other *Grid) bool {
	if that.rows != other.rows || that.Cols() != other.Cols() {
		return false
	}

	for col := range that.cells {
		for row := range that.cells[col] {
			if that.cells[col][row] != other.cells[col][row] {
				return false
			}
		}
	}
	return true
}

// String draws the colors row by row, using '.' for empty cells.
func (that *Grid) String() string {
	var sb strings.Builder
	for row := range that.rows {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := range that.cells {
			cell := that.cells[col][row]
			if cell.IsEmpty() {
				sb.WriteByte('.')
				continue
			}
			sb.WriteByte(byte(cell.Color))
		}
	}
	return sb.String()
}

type gridJSON struct {
	Rows    int      `json:"rows"`
	Columns int      `json:"columns"`
	Cells   [][]Cell `json:"cells"`
}

// MarshalJSON writes the cells row by row, top row first.
func (that *Grid) MarshalJSON() ([]byte, error) {
	cells := make([][]Cell, that.rows)
	for row := range cells {
		cells[row] = make([]Cell, that.Cols())
		for col := range that.cells {
			cells[row][col] = that.cells[col][row]
		}
	}

	return json.Marshal(gridJSON{
		Rows:    that.rows,
		Columns: that.Cols(),
		Cells:   cells,
	})
}
