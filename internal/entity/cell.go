package entity

import (
	"errors"
	"fmt"
)

// Color is a jewel color. The zero value means no color.
type Color byte

const (
	NoColor Color = 0

	Red    Color = 'R'
	Orange Color = 'O'
	Yellow Color = 'Y'
	Green  Color = 'G'
	Blue   Color = 'B'
	Indigo Color = 'I'
	Purple Color = 'P'
)

// Palette lists the colors a faller can be made of.
var Palette = []Color{Red, Orange, Yellow, Green, Blue, Indigo, Purple}

var ErrUnknownColor = errors.New("unknown color")

func (that Color) String() string {
	if that == NoColor {
		return " "
	}
	return string(rune(that))
}

func (that Color) MarshalText() ([]byte, error) {
	if that == NoColor {
		return []byte{}, nil
	}
	return []byte{byte(that)}, nil
}

func (that *Color) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*that = NoColor
		return nil
	}

	color, err := ParseColor(string(text))
	if err != nil {
		return err
	}

	*that = color
	return nil
}

// ParseColor converts a single letter into a Color.
func ParseColor(s string) (Color, error) {
	if len(s) != 1 {
		return NoColor, fmt.Errorf("%w: %q", ErrUnknownColor, s)
	}

	c := Color(s[0])
	for _, known := range Palette {
		if c == known {
			return c, nil
		}
	}

	return NoColor, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// State is the logical state of a cell.
type State int

const (
	StateEmpty State = iota
	StateFalling
	StateLanded
	StateFrozen
	StateMatched
)

func (that State) String() string {
	switch that {
	case StateEmpty:
		return "empty"
	case StateFalling:
		return "falling"
	case StateLanded:
		return "landed"
	case StateFrozen:
		return "frozen"
	case StateMatched:
		return "matched"
	default:
		return fmt.Sprintf("state(%d)", int(that))
	}
}

func (that State) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

type Cell struct {
	Color Color `json:"color"`
	State State `json:"state"`
}

var EmptyCell = Cell{}

func Frozen(color Color) Cell {
	return Cell{Color: color, State: StateFrozen}
}

func (that Cell) IsEmpty() bool {
	return that.State == StateEmpty
}
