// Package fill implements the Fill Solver: MRV backtracking search that
// assigns a dictionary word to every slot of a block set (spec §4.5).
package fill

import (
	"errors"
	"math/rand"
	"time"

	"github.com/crossplay/mcwgen/pkg/grid"
	"github.com/crossplay/mcwgen/pkg/pattern"
)

var (
	// ErrSolverTimeout is returned when the wall-clock deadline is
	// exceeded mid-search. It always unwinds the entire solve attempt;
	// callers must not retry the same branch.
	ErrSolverTimeout = errors.New("fill: solver deadline exceeded")
	// ErrNoSolution is returned when the solver exhausts every branch
	// without completing an assignment.
	ErrNoSolution = errors.New("fill: no solution found")
)

// Result holds a completed slot assignment.
type Result struct {
	Slots   []grid.Slot
	Letters map[grid.Cell]byte
	Answers map[int]string // slot ID -> assigned word
}

// solver carries the state of one Solve invocation. It is never shared
// across invocations or goroutines.
type solver struct {
	slots     []grid.Slot
	slotByID  map[int]grid.Slot
	neighbors map[int]map[int]bool
	index     *pattern.Index
	rng       *rand.Rand
	deadline  time.Time

	letters  map[grid.Cell]byte
	assigned map[int]string
	used     map[string]bool
}

// Solve runs the fill algorithm over the slots implied by (dim, blocks),
// assigning each a word from index such that every crossing constraint is
// satisfied. If forcedWord is non-empty, the search first seeds a
// randomly chosen slot of matching length with it before backtracking
// (§4.5).
func Solve(dim grid.Dimensions, blocks grid.BlockSet, index *pattern.Index, rng *rand.Rand, deadline time.Time, forcedWord string) (*Result, error) {
	slots, cellIndex := grid.ExtractSlots(dim, blocks)
	if len(slots) == 0 {
		return nil, ErrNoSolution
	}

	s := &solver{
		slots:     slots,
		slotByID:  make(map[int]grid.Slot, len(slots)),
		neighbors: buildNeighbors(cellIndex),
		index:     index,
		rng:       rng,
		deadline:  deadline,
		letters:   make(map[grid.Cell]byte),
		assigned:  make(map[int]string),
		used:      make(map[string]bool),
	}
	for _, slot := range slots {
		s.slotByID[slot.ID] = slot
	}

	if forcedWord != "" {
		return s.solveWithForcedWord(forcedWord)
	}

	ok, err := s.backtrack()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSolution
	}
	return s.result(), nil
}

// buildNeighbors cross-links every pair of distinct slot ids that share at
// least one cell, from the cell-to-slot index (§4.5).
func buildNeighbors(cellIndex map[grid.Cell][]grid.CellSlotRef) map[int]map[int]bool {
	neighbors := make(map[int]map[int]bool)
	for _, refs := range cellIndex {
		if len(refs) < 2 {
			continue
		}
		for _, ref := range refs {
			if neighbors[ref.SlotID] == nil {
				neighbors[ref.SlotID] = make(map[int]bool)
			}
			for _, other := range refs {
				if other.SlotID != ref.SlotID {
					neighbors[ref.SlotID][other.SlotID] = true
				}
			}
		}
	}
	return neighbors
}

// solveWithForcedWord tries every slot whose length matches forcedWord, in
// random order, seeding it and then backtracking from there. It returns
// the first successful completion.
func (s *solver) solveWithForcedWord(forcedWord string) (*Result, error) {
	var seeds []grid.Slot
	for _, slot := range s.slots {
		if slot.Length() == len(forcedWord) {
			seeds = append(seeds, slot)
		}
	}
	s.rng.Shuffle(len(seeds), func(i, j int) { seeds[i], seeds[j] = seeds[j], seeds[i] })

	for _, seed := range seeds {
		s.letters = make(map[grid.Cell]byte)
		s.assigned = make(map[int]string)
		s.used = make(map[string]bool)

		for i, cell := range seed.Cells {
			s.letters[cell] = forcedWord[i]
		}
		s.assigned[seed.ID] = forcedWord
		s.used[forcedWord] = true

		ok, err := s.backtrack()
		if err != nil {
			return nil, err
		}
		if ok {
			return s.result(), nil
		}
	}
	return nil, ErrNoSolution
}

// patternFor computes the current pattern string for slot from s.letters,
// using '.' for unset cells.
func (s *solver) patternFor(slot grid.Slot) string {
	buf := make([]byte, slot.Length())
	for i, cell := range slot.Cells {
		if letter, ok := s.letters[cell]; ok {
			buf[i] = letter
		} else {
			buf[i] = '.'
		}
	}
	return string(buf)
}

// forwardCheck reports whether every unassigned neighbor of slotID still
// has at least one unused candidate word, given the current grid state.
func (s *solver) forwardCheck(slotID int) bool {
	for neighborID := range s.neighbors[slotID] {
		if _, done := s.assigned[neighborID]; done {
			continue
		}
		neighbor := s.slotByID[neighborID]
		candidates := s.index.Candidates(s.patternFor(neighbor))
		found := false
		for _, word := range candidates {
			if !s.used[word] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// backtrack performs the MRV search described in §4.5. It returns
// (true, nil) on success, (false, nil) if this branch has no solution,
// and a non-nil error only for ErrSolverTimeout, which must unwind the
// entire search rather than be treated as branch failure.
func (s *solver) backtrack() (bool, error) {
	if time.Now().After(s.deadline) {
		return false, ErrSolverTimeout
	}
	if len(s.assigned) == len(s.slots) {
		return true, nil
	}

	var chosen *grid.Slot
	var chosenCandidates []string
	for i := range s.slots {
		slot := s.slots[i]
		if _, done := s.assigned[slot.ID]; done {
			continue
		}
		raw := s.index.Candidates(s.patternFor(slot))
		var candidates []string
		for _, word := range raw {
			if !s.used[word] {
				candidates = append(candidates, word)
			}
		}
		if len(candidates) == 0 {
			return false, nil
		}
		if chosenCandidates == nil || len(candidates) < len(chosenCandidates) {
			chosen = &slot
			chosenCandidates = candidates
			if len(chosenCandidates) == 1 {
				break
			}
		}
	}
	if chosen == nil {
		return false, nil
	}

	s.rng.Shuffle(len(chosenCandidates), func(i, j int) {
		chosenCandidates[i], chosenCandidates[j] = chosenCandidates[j], chosenCandidates[i]
	})

	for _, word := range chosenCandidates {
		delta, ok := s.tryDelta(*chosen, word)
		if !ok {
			continue
		}

		for cell, letter := range delta {
			s.letters[cell] = letter
		}
		s.assigned[chosen.ID] = word
		s.used[word] = true

		if s.forwardCheck(chosen.ID) {
			ok, err := s.backtrack()
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}

		delete(s.used, word)
		delete(s.assigned, chosen.ID)
		for cell := range delta {
			delete(s.letters, cell)
		}
	}

	return false, nil
}

// tryDelta reports whether word can be placed on slot without conflicting
// with already-set letters, and if so returns the map of cells it would
// newly set.
func (s *solver) tryDelta(slot grid.Slot, word string) (map[grid.Cell]byte, bool) {
	delta := make(map[grid.Cell]byte)
	for i, cell := range slot.Cells {
		letter := word[i]
		if existing, ok := s.letters[cell]; ok {
			if existing != letter {
				return nil, false
			}
			continue
		}
		delta[cell] = letter
	}
	return delta, true
}

// result snapshots the solver's final state into a Result.
func (s *solver) result() *Result {
	letters := make(map[grid.Cell]byte, len(s.letters))
	for c, l := range s.letters {
		letters[c] = l
	}
	answers := make(map[int]string, len(s.assigned))
	for id, word := range s.assigned {
		answers[id] = word
	}
	return &Result{Slots: s.slots, Letters: letters, Answers: answers}
}
