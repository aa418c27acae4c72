package columns

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/columns/internal/entity"
)

// Source supplies the colors and spawn columns of new fallers.
type Source interface {
	DrawColor() entity.Color
	// DrawColumn picks one of candidates, which is never empty.
	DrawColumn(candidates []int) int
}

type randomSource struct {
	rnd *rand.Rand
}

func NewRandomSource(seed uint64) Source {
	return &randomSource{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (that *randomSource) DrawColor() entity.Color {
	return entity.Palette[that.rnd.IntN(len(entity.Palette))]
}

func (that *randomSource) DrawColumn(candidates []int) int {
	return candidates[that.rnd.IntN(len(candidates))]
}

// SequenceSource replays fixed colors and columns in a loop.
type SequenceSource struct {
	colors  []entity.Color
	columns []int

	nextColor  int
	nextColumn int
}

func NewSequenceSource(colors []entity.Color, columns ...int) *SequenceSource {
	return &SequenceSource{
		colors:  colors,
		columns: columns,
	}
}

func (that *SequenceSource) DrawColor() entity.Color {
	if len(that.colors) == 0 {
		return entity.Palette[0]
	}

	color := that.colors[that.nextColor%len(that.colors)]
	that.nextColor++
	return color
}

// DrawColumn returns the next scripted column when it is a candidate, otherwise the first candidate.
func (that *SequenceSource) DrawColumn(candidates []int) int {
	if len(that.columns) == 0 {
		return candidates[0]
	}

	column := that.columns[that.nextColumn%len(that.columns)]
	that.nextColumn++
	for _, candidate := range candidates {
		if candidate == column {
			return column
		}
	}
	return candidates[0]
}
