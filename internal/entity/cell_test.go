package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	for _, color := range Palette {
		t.Run(color.String(), func(t *testing.T) {
			// When: parsing the letter of a palette color
			parsed, err := ParseColor(color.String())

			// Then: the same color comes back
			require.NoError(t, err)
			assert.Equal(t, color, parsed)
		})
	}

	t.Run("Unknown letter", func(t *testing.T) {
		// When: parsing a letter outside of the palette
		_, err := ParseColor("Z")

		// Then: ErrUnknownColor is returned
		require.ErrorIs(t, err, ErrUnknownColor)
	})

	t.Run("More than one letter", func(t *testing.T) {
		_, err := ParseColor("RG")
		require.ErrorIs(t, err, ErrUnknownColor)
	})
}

func TestCell_IsEmpty(t *testing.T) {
	assert.True(t, EmptyCell.IsEmpty())
	assert.False(t, Frozen(Blue).IsEmpty())
	assert.False(t, Cell{Color: Blue, State: StateMatched}.IsEmpty())
}

func TestColor_Text(t *testing.T) {
	// Given: a faller with palette colors
	faller := NewFaller([FallerSize]Color{Indigo, Orange, Red}, 4)

	// When: encoding and decoding it
	data, err := json.Marshal(faller)
	require.NoError(t, err)

	var decoded Faller
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Then: colors travel as letters
	assert.Contains(t, string(data), `"colors":["I","O","R"]`)
	assert.Equal(t, *faller, decoded)
}
