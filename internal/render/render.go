package render

import (
	"strings"

	"github.com/rocketscienceinc/columns/internal/entity"
)

const emptyGlyph = "   "

// Glyph is the three character picture of a cell.
func Glyph(cell entity.Cell) string {
	color := cell.Color.String()

	switch cell.State {
	case entity.StateFalling:
		return "[" + color + "]"
	case entity.StateLanded:
		return "|" + color + "|"
	case entity.StateFrozen:
		return " " + color + " "
	case entity.StateMatched:
		return "*" + color + "*"
	default:
		return emptyGlyph
	}
}

// Lines draws every row between side borders and closes the board with a bottom line.
func Lines(grid *entity.Grid) []string {
	lines := make([]string, 0, grid.Rows()+1)

	var sb strings.Builder
	for row := range grid.Rows() {
		sb.Reset()
		sb.WriteByte('|')
		for col := range grid.Cols() {
			sb.WriteString(Glyph(grid.At(col, row)))
		}
		sb.WriteByte('|')
		lines = append(lines, sb.String())
	}

	return append(lines, " "+strings.Repeat("-", len(emptyGlyph)*grid.Cols())+" ")
}

func Text(grid *entity.Grid) string {
	return strings.Join(Lines(grid), "\n") + "\n"
}
