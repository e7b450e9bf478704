package grid

// ValidateBlockSet tests whether blocks is a structurally legal block
// set for a grid of the given dimensions (spec §4.1). Rules are applied
// in order; any failure returns false.
func ValidateBlockSet(dim Dimensions, blocks BlockSet) bool {
	if len(blocks) > 4 {
		return false
	}
	for _, c := range blocks {
		if !dim.IsBorder(c) {
			return false
		}
	}
	if len(blocks) == 0 {
		return true
	}
	if !componentsAnchorCorners(dim, blocks) {
		return false
	}
	return validateNoSingletons(dim, blocks)
}

// validateNoSingletons is the §4.2 post-check: extracting slots must
// leave no non-blocked cell uncovered.
func validateNoSingletons(dim Dimensions, blocks BlockSet) bool {
	slots, index := ExtractSlots(dim, blocks)
	if len(slots) == 0 {
		return false
	}
	blocked := blocks.ToMap()
	for r := 0; r < dim.H; r++ {
		for c := 0; c < dim.W; c++ {
			cell := Cell{Row: r, Col: c}
			if blocked[cell] {
				continue
			}
			if len(index[cell]) == 0 {
				return false
			}
		}
	}
	return true
}
