package puzzle

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/crossplay/mcwgen/pkg/grid"
	"github.com/crossplay/mcwgen/pkg/pattern"
)

// largeDict provides enough distinct words per allowed length (2..7) that
// Generate succeeds regardless of which size and block set the RNG draws,
// without requiring any single hand-verified word square: every string
// formed from the fixed alphabet below is registered as a word, so any
// crossing-consistent letter assignment is automatically valid, and the
// alphabet is large enough relative to slot counts (<= ~24 per §9) that
// the no-reuse-word constraint never exhausts the supply.
func largeDict() []string {
	const alphabet = "ABCDEF"
	var words []string
	for length := 2; length <= 7; length++ {
		words = append(words, allStrings(alphabet, length)...)
	}
	return words
}

// allStrings returns every string of length over alphabet (the full
// cross product), so that for any partial assignment of its positions,
// a matching candidate is always present.
func allStrings(alphabet string, length int) []string {
	var out []string
	n := len(alphabet)
	total := 1
	for i := 0; i < length; i++ {
		total *= n
	}
	for v := 0; v < total; v++ {
		buf := make([]byte, length)
		x := v
		for i := length - 1; i >= 0; i-- {
			buf[i] = alphabet[x%n]
			x /= n
		}
		out = append(out, string(buf))
	}
	return out
}

func TestAssembler_Generate(t *testing.T) {
	idx := pattern.New(largeDict())
	asm := NewAssembler(idx)
	rng := rand.New(rand.NewSource(7))
	deadline := time.Now().Add(10 * time.Second)

	puzzle, err := asm.Generate(rng, deadline, "")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if puzzle.Width < 5 || puzzle.Width > 7 || puzzle.Height < 5 || puzzle.Height > 6 {
		t.Errorf("unexpected dimensions %dx%d", puzzle.Width, puzzle.Height)
	}
	if len(puzzle.GridPreview) != puzzle.Height {
		t.Errorf("len(GridPreview) = %d, want %d", len(puzzle.GridPreview), puzzle.Height)
	}
	for _, row := range puzzle.GridPreview {
		if len(row) != puzzle.Width {
			t.Errorf("GridPreview row length = %d, want %d", len(row), puzzle.Width)
		}
	}
	if !strings.HasPrefix(puzzle.ID, "mcw_v1_") {
		t.Errorf("ID = %q, want mcw_v1_ prefix", puzzle.ID)
	}
	if got, want := len(puzzle.ID), len("mcw_v1_")+16; got != want {
		t.Errorf("len(ID) = %d, want %d", got, want)
	}

	for _, entry := range append(append([]Entry{}, puzzle.Entries.Across...), puzzle.Entries.Down...) {
		if len(entry.Answer) != len(entry.Cells) {
			t.Errorf("entry %+v answer length mismatch", entry)
		}
	}

	for i := 1; i < len(puzzle.Entries.Across); i++ {
		if puzzle.Entries.Across[i-1].Number > puzzle.Entries.Across[i].Number {
			t.Errorf("across entries not sorted ascending by number")
		}
	}
	for i := 1; i < len(puzzle.Entries.Down); i++ {
		if puzzle.Entries.Down[i-1].Number > puzzle.Entries.Down[i].Number {
			t.Errorf("down entries not sorted ascending by number")
		}
	}
}

func TestAssembler_Generate_Deterministic(t *testing.T) {
	idx := pattern.New(largeDict())

	run := func(seed int64) *Puzzle {
		asm := NewAssembler(idx)
		rng := rand.New(rand.NewSource(seed))
		deadline := time.Now().Add(10 * time.Second)
		p, err := asm.Generate(rng, deadline, "")
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		return p
	}

	a := run(99)
	b := run(99)
	if a.ID != b.ID {
		t.Errorf("same seed produced different puzzle IDs: %s vs %s", a.ID, b.ID)
	}
}

func TestAssembler_AllowedSizesHaveLegalBlockSets(t *testing.T) {
	e := grid.NewEnumerator()
	for _, dim := range grid.AllowedSizes {
		if len(e.LegalBlockSets(dim)) == 0 {
			t.Errorf("dimensions %s have no legal block sets", dim)
		}
	}
}
