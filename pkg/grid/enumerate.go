package grid

import "sync"

// Enumerator enumerates and caches all legal block sets of size 0..=4
// for a given grid size (§4.3). Enumeration depends only on dimensions
// and the deterministic validation rules in §4.1/§4.2, so results are
// cached per (W,H) for the enumerator's lifetime.
type Enumerator struct {
	mu    sync.Mutex
	cache map[Dimensions][]BlockSet
}

// NewEnumerator creates an empty, ready-to-use Enumerator.
func NewEnumerator() *Enumerator {
	return &Enumerator{cache: make(map[Dimensions][]BlockSet)}
}

// LegalBlockSets returns every legal block set for dim, computing and
// caching the result on first use. The returned slice is shared across
// callers and must not be mutated; callers pick an entry uniformly at
// random.
func (e *Enumerator) LegalBlockSets(dim Dimensions) []BlockSet {
	e.mu.Lock()
	defer e.mu.Unlock()

	if sets, ok := e.cache[dim]; ok {
		return sets
	}

	border := dim.BorderCells()
	var legal []BlockSet
	for count := 0; count <= 4; count++ {
		forEachCombination(border, count, func(combo []Cell) {
			blocks := BlockSet(append([]Cell(nil), combo...))
			if ValidateBlockSet(dim, blocks) {
				legal = append(legal, blocks)
			}
		})
	}

	e.cache[dim] = legal
	return legal
}

// forEachCombination calls fn once per k-combination of items, in
// lexicographic index order. The slice passed to fn is reused across
// calls and must not be retained.
func forEachCombination(items []Cell, k int, fn func(combo []Cell)) {
	n := len(items)
	if k == 0 {
		fn(nil)
		return
	}
	if k > n {
		return
	}

	indices := make([]int, k)
	for i := range indices {
		indices[i] = i
	}
	combo := make([]Cell, k)

	for {
		for i, idx := range indices {
			combo[i] = items[idx]
		}
		fn(combo)

		i := k - 1
		for i >= 0 && indices[i] == i+n-k {
			i--
		}
		if i < 0 {
			return
		}
		indices[i]++
		for j := i + 1; j < k; j++ {
			indices[j] = indices[j-1] + 1
		}
	}
}
