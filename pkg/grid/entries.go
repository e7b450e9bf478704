package grid

// ExtractSlots scans the grid in row-major order (§4.2). It returns the
// ordered list of across/down slots — numbered in the order their
// starting cell is encountered, with an across/down pair starting at the
// same cell sharing a number — and the cell-to-slot index built from
// each slot's cell list.
func ExtractSlots(dim Dimensions, blocks BlockSet) ([]Slot, map[Cell][]CellSlotRef) {
	blocked := blocks.ToMap()

	var slots []Slot
	index := make(map[Cell][]CellSlotRef)
	nextNumber := 1
	nextID := 0

	for r := 0; r < dim.H; r++ {
		for c := 0; c < dim.W; c++ {
			cell := Cell{Row: r, Col: c}
			if blocked[cell] {
				continue
			}

			startsAcross := (c == 0 || blocked[Cell{Row: r, Col: c - 1}]) &&
				(c+1 < dim.W && !blocked[Cell{Row: r, Col: c + 1}])
			startsDown := (r == 0 || blocked[Cell{Row: r - 1, Col: c}]) &&
				(r+1 < dim.H && !blocked[Cell{Row: r + 1, Col: c}])

			if !startsAcross && !startsDown {
				continue
			}
			number := nextNumber
			nextNumber++

			if startsAcross {
				cells := []Cell{}
				for cc := c; cc < dim.W && !blocked[Cell{Row: r, Col: cc}]; cc++ {
					cells = append(cells, Cell{Row: r, Col: cc})
				}
				slots = append(slots, Slot{ID: nextID, Direction: ACROSS, Number: number, Cells: cells})
				nextID++
			}
			if startsDown {
				cells := []Cell{}
				for rr := r; rr < dim.H && !blocked[Cell{Row: rr, Col: c}]; rr++ {
					cells = append(cells, Cell{Row: rr, Col: c})
				}
				slots = append(slots, Slot{ID: nextID, Direction: DOWN, Number: number, Cells: cells})
				nextID++
			}
		}
	}

	for _, slot := range slots {
		for offset, cell := range slot.Cells {
			index[cell] = append(index[cell], CellSlotRef{SlotID: slot.ID, Offset: offset})
		}
	}

	return slots, index
}
