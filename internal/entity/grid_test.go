package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrid(t *testing.T) {
	t.Run("Builds frozen cells from letters", func(t *testing.T) {
		// Given: rows written top to bottom
		rows := []string{
			"R. ",
			"GBY",
		}

		// When: parsing them
		grid, err := ParseGrid(rows...)

		// Then: letters become frozen cells and dots or spaces stay empty
		require.NoError(t, err)
		assert.Equal(t, 2, grid.Rows())
		assert.Equal(t, 3, grid.Cols())
		assert.Equal(t, Frozen(Red), grid.At(0, 0))
		assert.True(t, grid.At(1, 0).IsEmpty())
		assert.True(t, grid.At(2, 0).IsEmpty())
		assert.Equal(t, Frozen(Yellow), grid.At(2, 1))
		assert.Equal(t, "R..\nGBY", grid.String())
	})

	t.Run("Rejects ragged rows", func(t *testing.T) {
		// When: parsing rows of different length
		_, err := ParseGrid("RG", "R")

		// Then: ErrInvalidDimensions is returned
		require.ErrorIs(t, err, ErrInvalidDimensions)
	})

	t.Run("Rejects an empty board", func(t *testing.T) {
		// When: parsing nothing
		_, err := ParseGrid()

		// Then: ErrInvalidDimensions is returned
		require.ErrorIs(t, err, ErrInvalidDimensions)
	})

	t.Run("Rejects unknown letters", func(t *testing.T) {
		// When: parsing a letter outside of the palette
		_, err := ParseGrid("RX")

		// Then: ErrUnknownColor is returned
		require.ErrorIs(t, err, ErrUnknownColor)
	})
}

func TestGrid_OpenColumns(t *testing.T) {
	// Given: a grid with a full middle column and a gap in the last one
	grid := MustParseGrid(
		".R.",
		".GB",
		"RBR",
	)

	// When: looking for open columns
	open := grid.OpenColumns()

	// Then: the column with a gap on top is open
	assert.Equal(t, []int{0, 2}, open)
	assert.False(t, grid.HasRoom(1))
	assert.True(t, grid.HasRoom(2))
}

func TestGrid_PadTopAndCropTop(t *testing.T) {
	// Given: a small grid
	grid := MustParseGrid(
		"R.",
		"GB",
	)

	// When: padding two rows on top
	padded := grid.PadTop(2)

	// Then: the content moves down and the original is untouched
	assert.Equal(t, "..\n..\nR.\nGB", padded.String())
	assert.Equal(t, 2, grid.Rows())

	// When: cropping the padding away again
	cropped := padded.CropTop(2)

	// Then: the grid is the same as before
	assert.True(t, grid.Equal(cropped))
}

func TestGrid_Clone(t *testing.T) {
	// Given: a grid and its clone
	grid := MustParseGrid("R.", "GB")
	clone := grid.Clone()

	// When: changing the clone
	clone.Set(1, 0, Frozen(Purple))

	// Then: the original keeps its cells
	assert.True(t, grid.At(1, 0).IsEmpty())
	assert.False(t, grid.Equal(clone))
}

func TestGrid_Column(t *testing.T) {
	// Given: a grid
	grid := MustParseGrid("R.", "GB")

	// When: changing the copy of a column
	column := grid.Column(0)
	column[0] = EmptyCell

	// Then: the grid is not affected until the column is written back
	assert.Equal(t, Frozen(Red), grid.At(0, 0))
	grid.SetColumn(0, column)
	assert.Equal(t, ".B\nGB", grid.String())
}

func TestGrid_MarshalJSON(t *testing.T) {
	// Given: a grid with a falling jewel
	grid := MustParseGrid(".", "G")
	grid.Set(0, 0, Cell{Color: Red, State: StateFalling})

	// When: encoding it
	data, err := json.Marshal(grid)

	// Then: cells are written row by row
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"rows": 2,
		"columns": 1,
		"cells": [
			[{"color": "R", "state": "falling"}],
			[{"color": "G", "state": "frozen"}]
		]
	}`, string(data))
}
