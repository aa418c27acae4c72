package columns

import (
	"fmt"

	"github.com/rocketscienceinc/columns/internal/apperror"
	"github.com/rocketscienceinc/columns/internal/entity"
)

const (
	DefaultRows = 13
	DefaultCols = 6
)

type State int

const (
	StateAwaitingFaller State = iota
	StateFalling
	StateLanded
	StateFreezeProcessing
	StateMatching
	StateGameOver
)

func (that State) String() string {
	switch that {
	case StateAwaitingFaller:
		return "awaiting_faller"
	case StateFalling:
		return "falling"
	case StateLanded:
		return "landed"
	case StateFreezeProcessing:
		return "freeze_processing"
	case StateMatching:
		return "matching"
	case StateGameOver:
		return "game_over"
	default:
		return fmt.Sprintf("state(%d)", int(that))
	}
}

// Board runs one game. The grid only ever holds frozen and matched cells; the active
// faller is merged in by Snapshot. A Board is not safe for concurrent use.
type Board struct {
	grid   *entity.Grid
	faller *entity.Faller
	state  State
	source Source

	cleared int
}

func NewBoard(rows, cols int, source Source) *Board {
	return &Board{
		grid:   entity.NewGrid(rows, cols),
		state:  StateAwaitingFaller,
		source: source,
	}
}

// NewBoardFromGrid starts a game on a copy of grid. Frozen cells are kept as they are.
func NewBoardFromGrid(grid *entity.Grid, source Source) *Board {
	return &Board{
		grid:   grid.Clone(),
		state:  StateAwaitingFaller,
		source: source,
	}
}

func (that *Board) State() State {
	return that.state
}

func (that *Board) IsGameOver() bool {
	return that.state == StateGameOver
}

// NeedsNewFaller is true once the previous faller froze and every cascade has finished.
func (that *Board) NeedsNewFaller() bool {
	return that.state == StateAwaitingFaller
}

// Cleared is the number of cells removed by matches since the game started.
func (that *Board) Cleared() int {
	return that.cleared
}

// Faller returns a copy of the active faller.
func (that *Board) Faller() (entity.Faller, bool) {
	if !that.hasActiveFaller() {
		return entity.Faller{}, false
	}
	return *that.faller, true
}

// Snapshot returns a copy of the grid with the active faller drawn in.
func (that *Board) Snapshot() *entity.Grid {
	snapshot := that.grid.Clone()
	if !that.hasActiveFaller() {
		return snapshot
	}

	cells := that.faller.Cells()
	for i, row := range that.faller.Rows() {
		snapshot.Set(that.faller.Column, row, cells[i])
	}

	return snapshot
}

// CreateFaller spawns a faller in a column picked by the source among those with room.
func (that *Board) CreateFaller() error {
	if that.IsGameOver() {
		return apperror.ErrGameOver
	}

	open := that.grid.OpenColumns()
	if len(open) == 0 {
		return fmt.Errorf("%w: no column has room", apperror.ErrInvalidColumn)
	}

	if that.state != StateAwaitingFaller {
		return fmt.Errorf("%w: state %s", apperror.ErrFallerActive, that.state)
	}

	return that.CreateFallerAt(that.source.DrawColumn(open))
}

// CreateFallerAt spawns a faller above column.
func (that *Board) CreateFallerAt(column int) error {
	if that.IsGameOver() {
		return apperror.ErrGameOver
	}

	if column < 0 || column >= that.grid.Cols() {
		return fmt.Errorf("%w: column %d is outside the board", apperror.ErrInvalidColumn, column)
	}

	if !that.grid.HasRoom(column) {
		return fmt.Errorf("%w: column %d is full", apperror.ErrInvalidColumn, column)
	}

	if that.state != StateAwaitingFaller {
		return fmt.Errorf("%w: state %s", apperror.ErrFallerActive, that.state)
	}

	var colors [entity.FallerSize]entity.Color
	for i := range colors {
		colors[i] = that.source.DrawColor()
	}

	that.faller = entity.NewFaller(colors, column)
	that.state = StateFalling

	return nil
}

// AdvanceTick moves the game forward by one step: a cascade step while matching,
// otherwise the faller drops, lands or freezes.
func (that *Board) AdvanceTick() error {
	switch that.state {
	case StateGameOver:
		return apperror.ErrGameOver
	case StateMatching:
		that.cascade()
		return nil
	case StateAwaitingFaller:
		return nil
	}

	faller := that.faller
	switch {
	case !that.blocked(faller.Column):
		faller.Drop()
		that.settleFaller()
	case !faller.Landed:
		that.land()
	default:
		that.freeze()
	}

	return nil
}

// Rotate cycles the colors of the active faller. The occupied cells do not change.
func (that *Board) Rotate() error {
	if that.IsGameOver() {
		return apperror.ErrGameOver
	}

	if !that.hasActiveFaller() {
		return nil
	}

	that.faller.Rotate()
	return nil
}

func (that *Board) MoveLeft() error {
	return that.move(-1)
}

func (that *Board) MoveRight() error {
	return that.move(1)
}

func (that *Board) move(delta int) error {
	if that.IsGameOver() {
		return apperror.ErrGameOver
	}

	if !that.hasActiveFaller() {
		return nil
	}

	target := that.faller.Column + delta
	if target < 0 || target >= that.grid.Cols() {
		return fmt.Errorf("%w: column %d is outside the board", apperror.ErrInvalidMove, target)
	}

	rows := that.faller.Rows()
	if that.faller.Entered == 0 {
		rows = []int{0}
	}

	for _, row := range rows {
		if !that.grid.At(target, row).IsEmpty() {
			return fmt.Errorf("%w: column %d row %d is occupied", apperror.ErrInvalidMove, target, row)
		}
	}

	that.faller.Column = target
	that.settleFaller()

	return nil
}

func (that *Board) hasActiveFaller() bool {
	return that.faller != nil && !that.faller.Frozen
}

// blocked reports whether the faller cannot go further down in column. Before entering,
// the faller needs row 0 to be empty.
func (that *Board) blocked(column int) bool {
	if that.faller.Entered == 0 {
		return !that.grid.At(column, 0).IsEmpty()
	}

	below := that.faller.FrontRow + 1
	return below >= that.grid.Rows() || !that.grid.At(column, below).IsEmpty()
}

// settleFaller marks the faller as landed when it rests on something and as falling otherwise.
func (that *Board) settleFaller() {
	if that.blocked(that.faller.Column) {
		that.land()
		return
	}

	that.faller.Fall()
	that.state = StateFalling
}

func (that *Board) land() {
	that.faller.Land()
	that.state = StateLanded
}

func (that *Board) freeze() {
	that.state = StateFreezeProcessing

	faller := that.faller
	faller.Freeze()
	for i, row := range faller.Rows() {
		that.grid.Set(faller.Column, row, entity.Frozen(faller.Colors[i]))
	}

	if !faller.FullyEntered() {
		result := EvaluateSpeculative(that.grid, faller.Column, faller.Pending())
		if !result.Fits {
			that.state = StateGameOver
			return
		}

		that.grid = result.Grid
		that.cleared += result.Cleared
	}

	that.rescan()
}

func (that *Board) cascade() {
	that.cleared += DeleteMatches(that.grid)
	that.rescan()
}

// rescan looks for new matches. Without any, the faller is retired and a new one can spawn.
func (that *Board) rescan() {
	if FlagMatches(that.grid) > 0 {
		that.state = StateMatching
		return
	}

	that.faller = nil
	that.state = StateAwaitingFaller
}
