package entity

const FallerSize = 3

// Faller is the falling group of jewels. Colors are ordered front to back: Colors[0] is the
// bottom jewel and the first one to enter the board.
type Faller struct {
	Colors   [FallerSize]Color `json:"colors"`
	Column   int               `json:"column"`
	Entered  int               `json:"entered"`
	FrontRow int               `json:"front_row"`
	Landed   bool              `json:"landed"`
	Frozen   bool              `json:"frozen"`
}

func NewFaller(colors [FallerSize]Color, column int) *Faller {
	return &Faller{
		Colors: colors,
		Column: column,
	}
}

// Rotate moves every color one place towards the front; the front color goes to the back.
func (that *Faller) Rotate() {
	front := that.Colors[0]
	copy(that.Colors[:], that.Colors[1:])
	that.Colors[FallerSize-1] = front
}

// Drop moves the faller one row down. While entering, the front jewel appears on row 0
// first and every further drop reveals one more jewel behind it.
func (that *Faller) Drop() {
	if that.Entered == 0 {
		that.Entered = 1
		return
	}

	that.FrontRow++
	if that.Entered < FallerSize {
		that.Entered++
	}
}

func (that *Faller) Fall() {
	that.Landed = false
}

func (that *Faller) Land() {
	that.Landed = true
}

func (that *Faller) Freeze() {
	that.Frozen = true
}

func (that *Faller) FullyEntered() bool {
	return that.Entered == FallerSize
}

// Rows returns the rows taken by the entered jewels, front first.
func (that *Faller) Rows() []int {
	rows := make([]int, that.Entered)
	for i := range rows {
		rows[i] = that.FrontRow - i
	}
	return rows
}

// Pending returns the colors that have not entered the board yet, in entry order.
func (that *Faller) Pending() []Color {
	pending := make([]Color, 0, FallerSize-that.Entered)
	return append(pending, that.Colors[that.Entered:]...)
}

// CellState is the state the faller's jewels show on the board.
func (that *Faller) CellState() State {
	switch {
	case that.Frozen:
		return StateFrozen
	case that.Landed:
		return StateLanded
	default:
		return StateFalling
	}
}

// Cells returns the board cells of the entered jewels, in the same order as Rows.
func (that *Faller) Cells() []Cell {
	state := that.CellState()
	cells := make([]Cell, that.Entered)
	for i := range cells {
		cells[i] = Cell{Color: that.Colors[i], State: state}
	}
	return cells
}
