package columns

import "github.com/rocketscienceinc/columns/internal/entity"

// SpeculativeResult is the outcome of EvaluateSpeculative.
type SpeculativeResult struct {
	// Fits is true when the pending jewels end up inside the board once matches are resolved.
	Fits bool
	// Grid is the resolved board without the padding rows. Nil unless Fits.
	Grid *entity.Grid
	// Cleared is the number of cells removed while resolving.
	Cleared int
}

// EvaluateSpeculative checks whether a faller frozen before fully entering the board can
// still fit. The jewels that never entered are stacked above column on a padded copy of
// grid, matches are resolved until none remain, and the padding must end up empty.
// grid itself is never modified.
func EvaluateSpeculative(grid *entity.Grid, column int, pending []entity.Color) SpeculativeResult {
	padding := len(pending)
	padded := grid.PadTop(padding)
	for i, color := range pending {
		padded.Set(column, padding-1-i, entity.Frozen(color))
	}

	if FlagMatches(padded) == 0 {
		return SpeculativeResult{}
	}

	cleared := 0
	for {
		cleared += DeleteMatches(padded)
		Compact(padded)
		if FlagMatches(padded) == 0 {
			break
		}
	}

	for col := range padded.Cols() {
		for row := range padding {
			if !padded.At(col, row).IsEmpty() {
				return SpeculativeResult{Cleared: cleared}
			}
		}
	}

	return SpeculativeResult{
		Fits:    true,
		Grid:    padded.CropTop(padding),
		Cleared: cleared,
	}
}
