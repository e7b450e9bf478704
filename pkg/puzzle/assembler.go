package puzzle

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/crossplay/mcwgen/pkg/fill"
	"github.com/crossplay/mcwgen/pkg/grid"
	"github.com/crossplay/mcwgen/pkg/pattern"
)

var (
	// ErrNoLegalBlockSets is returned when the enumerator has no legal
	// block set for a chosen size. Should not occur for the default
	// size set, but the Assembler defends against it (§7).
	ErrNoLegalBlockSets = errors.New("puzzle: no legal block sets for chosen size")
)

// Assembler drives size selection, block-set selection, and fill-solving
// to produce a complete Puzzle record (§4.6).
type Assembler struct {
	enumerator *grid.Enumerator
	index      *pattern.Index
}

// NewAssembler constructs an Assembler over a fixed Pattern Index. The
// enumerator's per-(W,H) legal-block-set cache is shared across all
// generation attempts made by this Assembler.
func NewAssembler(index *pattern.Index) *Assembler {
	return &Assembler{
		enumerator: grid.NewEnumerator(),
		index:      index,
	}
}

// Generate runs one end-to-end generation attempt: it draws a size and
// block set from rng, invokes the Fill Solver against deadline, and on
// success assembles and canonicalizes a Puzzle. A solver timeout or
// exhausted search both surface as the solver's own error value; callers
// that want to retry should call Generate again with a fresh deadline
// (§4.6, §7 — no partial puzzle is ever returned).
func (a *Assembler) Generate(rng *rand.Rand, deadline time.Time, forcedWord string) (*Puzzle, error) {
	dim := grid.AllowedSizes[rng.Intn(len(grid.AllowedSizes))]

	legal := a.enumerator.LegalBlockSets(dim)
	if len(legal) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoLegalBlockSets, dim)
	}
	blocks := legal[rng.Intn(len(legal))]

	result, err := fill.Solve(dim, blocks, a.index, rng, deadline, forcedWord)
	if err != nil {
		return nil, fmt.Errorf("puzzle: fill solver: %w", err)
	}

	return assemble(dim, blocks, result), nil
}

// assemble builds the externally-facing Puzzle record from a completed
// fill Result (§4.6 steps 4-7).
func assemble(dim grid.Dimensions, blocks grid.BlockSet, result *fill.Result) *Puzzle {
	blocked := blocks.ToMap()

	gridSolution := make([][]*string, dim.H)
	gridPreview := make([]string, dim.H)
	for r := 0; r < dim.H; r++ {
		row := make([]*string, dim.W)
		previewBytes := make([]byte, dim.W)
		for c := 0; c < dim.W; c++ {
			cell := grid.Cell{Row: r, Col: c}
			if blocked[cell] {
				row[c] = nil
				previewBytes[c] = '-'
				continue
			}
			letter := string(result.Letters[cell])
			row[c] = &letter
			previewBytes[c] = result.Letters[cell]
		}
		gridSolution[r] = row
		gridPreview[r] = string(previewBytes)
	}

	blackCells := make([][2]int, len(blocks))
	for i, c := range blocks {
		blackCells[i] = [2]int{c.Row, c.Col}
	}

	entries := Entries{}
	for _, slot := range result.Slots {
		cells := make([][2]int, len(slot.Cells))
		for i, c := range slot.Cells {
			cells[i] = [2]int{c.Row, c.Col}
		}
		entry := Entry{
			Number: slot.Number,
			Cells:  cells,
			Answer: result.Answers[slot.ID],
			Clue:   "",
		}
		switch slot.Direction {
		case grid.ACROSS:
			entries.Across = append(entries.Across, entry)
		case grid.DOWN:
			entries.Down = append(entries.Down, entry)
		}
	}
	sortEntries(entries.Across)
	sortEntries(entries.Down)

	hash := Hash(dim, blocks, result.Letters)

	return &Puzzle{
		GridPreview:  gridPreview,
		ID:           ID(hash),
		Date:         "",
		Width:        dim.W,
		Height:       dim.H,
		BlackCells:   blackCells,
		GridSolution: gridSolution,
		Entries:      entries,
	}
}

// sortEntries sorts entries ascending by number (§4.6 step 6). Entries
// that share a number within the same direction cannot occur by
// construction (slot numbering is unique per direction), so number alone
// is a total order here; across-before-down (the §9 Open Question) is
// resolved by keeping the two directions in separate slices rather than
// interleaving them.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Number < entries[j].Number })
}
