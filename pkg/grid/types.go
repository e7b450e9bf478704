// Package grid implements the structural half of the mini-crossword core:
// the cell/dimension data model, the BlockSet Validator, the Slot
// Extractor, and the BlockSet Enumerator.
package grid

import "fmt"

// Direction represents the direction of a crossword slot.
type Direction int

const (
	// ACROSS represents a horizontal word slot.
	ACROSS Direction = iota
	// DOWN represents a vertical word slot.
	DOWN
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case ACROSS:
		return "across"
	case DOWN:
		return "down"
	default:
		return "unknown"
	}
}

// Cell is an immutable grid coordinate. It is a plain value so it can be
// used directly as a map key and compared with ==.
type Cell struct {
	Row int
	Col int
}

// Dimensions is a grid's (width, height).
type Dimensions struct {
	W int
	H int
}

// String renders dimensions in the "WxH" form used by the canonical hash.
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.W, d.H)
}

// AllowedSizes is the fixed set of grid sizes the generator draws from.
var AllowedSizes = []Dimensions{
	{W: 5, H: 5},
	{W: 5, H: 6},
	{W: 6, H: 5},
	{W: 6, H: 6},
	{W: 7, H: 5},
	{W: 7, H: 6},
}

// Contains reports whether c lies within the grid.
func (d Dimensions) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < d.H && c.Col >= 0 && c.Col < d.W
}

// IsBorder reports whether c lies on the grid's border.
func (d Dimensions) IsBorder(c Cell) bool {
	return c.Row == 0 || c.Row == d.H-1 || c.Col == 0 || c.Col == d.W-1
}

// Corners returns the grid's four corner cells.
func (d Dimensions) Corners() [4]Cell {
	return [4]Cell{
		{Row: 0, Col: 0},
		{Row: 0, Col: d.W - 1},
		{Row: d.H - 1, Col: 0},
		{Row: d.H - 1, Col: d.W - 1},
	}
}

// BorderCells returns every cell on the grid's border, in row-major order.
func (d Dimensions) BorderCells() []Cell {
	var cells []Cell
	for r := 0; r < d.H; r++ {
		for c := 0; c < d.W; c++ {
			cell := Cell{Row: r, Col: c}
			if d.IsBorder(cell) {
				cells = append(cells, cell)
			}
		}
	}
	return cells
}

// BlockSet is an unordered set of blocked cells, represented as a slice
// for deterministic iteration; use ToMap for membership tests.
type BlockSet []Cell

// ToMap returns a membership set for fast lookup.
func (b BlockSet) ToMap() map[Cell]bool {
	m := make(map[Cell]bool, len(b))
	for _, c := range b {
		m[c] = true
	}
	return m
}

// Slot is a maximal run of non-blocked cells in one row (across) or
// column (down), of length at least 2.
type Slot struct {
	ID        int
	Direction Direction
	Number    int
	Cells     []Cell
}

// Length returns the number of cells (and thus the word length) of the slot.
func (s Slot) Length() int {
	return len(s.Cells)
}

// CellSlotRef binds a cell to one slot it belongs to, recording the
// cell's offset within that slot.
type CellSlotRef struct {
	SlotID int
	Offset int
}
