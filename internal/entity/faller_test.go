package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFaller_Rotate(t *testing.T) {
	// Given: a red, green and blue faller
	faller := NewFaller([FallerSize]Color{Red, Green, Blue}, 0)

	// When: rotating it once
	faller.Rotate()

	// Then: the old second color is at the front
	assert.Equal(t, [FallerSize]Color{Green, Blue, Red}, faller.Colors)

	// When: rotating it twice more
	faller.Rotate()
	faller.Rotate()

	// Then: the order is back to the start
	assert.Equal(t, [FallerSize]Color{Red, Green, Blue}, faller.Colors)
}

func TestFaller_Drop(t *testing.T) {
	// Given: a faller that has not entered the board
	faller := NewFaller([FallerSize]Color{Red, Green, Blue}, 2)
	assert.Empty(t, faller.Rows())
	assert.Equal(t, []Color{Red, Green, Blue}, faller.Pending())

	// When: dropping it once
	faller.Drop()

	// Then: the front jewel is on row 0
	assert.Equal(t, []int{0}, faller.Rows())
	assert.Equal(t, []Color{Green, Blue}, faller.Pending())

	// When: dropping it twice more
	faller.Drop()
	faller.Drop()

	// Then: all three jewels are inside, front first
	assert.True(t, faller.FullyEntered())
	assert.Equal(t, []int{2, 1, 0}, faller.Rows())
	assert.Empty(t, faller.Pending())

	// When: dropping it again
	faller.Drop()

	// Then: the whole window shifts down
	assert.Equal(t, 3, faller.FrontRow)
	assert.Equal(t, []int{3, 2, 1}, faller.Rows())
}

func TestFaller_Cells(t *testing.T) {
	// Given: a faller with two entered jewels
	faller := NewFaller([FallerSize]Color{Red, Green, Blue}, 0)
	faller.Drop()
	faller.Drop()

	// Then: its cells follow the faller state
	assert.Equal(t, []Cell{{Red, StateFalling}, {Green, StateFalling}}, faller.Cells())

	faller.Land()
	assert.Equal(t, StateLanded, faller.CellState())

	faller.Fall()
	assert.Equal(t, StateFalling, faller.CellState())

	faller.Land()
	faller.Freeze()
	assert.Equal(t, []Cell{{Red, StateFrozen}, {Green, StateFrozen}}, faller.Cells())
}
