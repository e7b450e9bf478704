package grid

// borderNeighbors returns the 4-neighbors of cell that also lie on the
// grid border, mirroring original_source/grid.py's border_neighbors: the
// component walk for the BlockSet Validator only ever steps along the
// border, never through the interior.
func borderNeighbors(dim Dimensions, cell Cell) []Cell {
	candidates := [4]Cell{
		{Row: cell.Row - 1, Col: cell.Col},
		{Row: cell.Row + 1, Col: cell.Col},
		{Row: cell.Row, Col: cell.Col - 1},
		{Row: cell.Row, Col: cell.Col + 1},
	}
	var neighbors []Cell
	for _, n := range candidates {
		if dim.Contains(n) && dim.IsBorder(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// borderComponents partitions blocks into maximally border-adjacent
// connected components, using 4-neighbor adjacency restricted to the
// border (§4.1 rule 4).
func borderComponents(dim Dimensions, blocks BlockSet) [][]Cell {
	inBlockSet := blocks.ToMap()
	visited := make(map[Cell]bool, len(blocks))
	var components [][]Cell

	for _, start := range blocks {
		if visited[start] {
			continue
		}
		var component []Cell
		stack := []Cell{start}
		for len(stack) > 0 {
			cell := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if visited[cell] {
				continue
			}
			visited[cell] = true
			component = append(component, cell)
			for _, n := range borderNeighbors(dim, cell) {
				if inBlockSet[n] && !visited[n] {
					stack = append(stack, n)
				}
			}
		}
		components = append(components, component)
	}
	return components
}

// validCornersForCell returns the corners that lie on the same edge(s) as
// cell — a corner cell itself returns the two corners of each edge it
// sits on. Ported from original_source/grid.py:valid_corners_for_cell.
func validCornersForCell(dim Dimensions, cell Cell) map[Cell]bool {
	valid := make(map[Cell]bool, 2)
	corners := dim.Corners() // {topLeft, topRight, bottomLeft, bottomRight}
	topLeft, topRight, bottomLeft, bottomRight := corners[0], corners[1], corners[2], corners[3]

	if cell.Row == 0 {
		valid[topLeft] = true
		valid[topRight] = true
	}
	if cell.Row == dim.H-1 {
		valid[bottomLeft] = true
		valid[bottomRight] = true
	}
	if cell.Col == 0 {
		valid[topLeft] = true
		valid[bottomLeft] = true
	}
	if cell.Col == dim.W-1 {
		valid[topRight] = true
		valid[bottomRight] = true
	}
	return valid
}

// componentsAnchorCorners checks §4.1 rule 4: every cell in every
// border-adjacent component must share a corner with that component's
// set of blocked corner cells.
func componentsAnchorCorners(dim Dimensions, blocks BlockSet) bool {
	cornerSet := make(map[Cell]bool, 4)
	for _, c := range dim.Corners() {
		cornerSet[c] = true
	}

	for _, component := range borderComponents(dim, blocks) {
		componentCorners := make(map[Cell]bool)
		for _, cell := range component {
			if cornerSet[cell] {
				componentCorners[cell] = true
			}
		}
		for _, cell := range component {
			valid := validCornersForCell(dim, cell)
			anchored := false
			for corner := range valid {
				if componentCorners[corner] {
					anchored = true
					break
				}
			}
			if !anchored {
				return false
			}
		}
	}
	return true
}
