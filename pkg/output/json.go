// Package output serializes a generated puzzle to the §6 JSON wire
// format.
package output

import (
	"encoding/json"

	"github.com/crossplay/mcwgen/pkg/puzzle"
)

// PuzzleJSON is the exported wire shape for a Puzzle record (§6).
type PuzzleJSON struct {
	GridPreview  []string        `json:"gridPreview"`
	ID           string          `json:"id"`
	Date         string          `json:"date"`
	Width        int             `json:"width"`
	Height       int             `json:"height"`
	BlackCells   [][2]int        `json:"blackCells"`
	GridSolution [][]*string     `json:"gridSolution"`
	Entries      EntriesJSON     `json:"entries"`
}

// EntriesJSON groups a puzzle's across and down entries for export.
type EntriesJSON struct {
	Across []EntryJSON `json:"across"`
	Down   []EntryJSON `json:"down"`
}

// EntryJSON is one across or down entry's export shape.
type EntryJSON struct {
	Number int      `json:"number"`
	Cells  [][2]int `json:"cells"`
	Answer string   `json:"answer"`
	Clue   string   `json:"clue"`
}

// FormatJSON converts a puzzle.Puzzle into its export shape.
func FormatJSON(p *puzzle.Puzzle) *PuzzleJSON {
	return &PuzzleJSON{
		GridPreview:  p.GridPreview,
		ID:           p.ID,
		Date:         p.Date,
		Width:        p.Width,
		Height:       p.Height,
		BlackCells:   p.BlackCells,
		GridSolution: p.GridSolution,
		Entries: EntriesJSON{
			Across: formatEntries(p.Entries.Across),
			Down:   formatEntries(p.Entries.Down),
		},
	}
}

func formatEntries(entries []puzzle.Entry) []EntryJSON {
	out := make([]EntryJSON, len(entries))
	for i, e := range entries {
		out[i] = EntryJSON{Number: e.Number, Cells: e.Cells, Answer: e.Answer, Clue: e.Clue}
	}
	return out
}

// ToJSON renders a puzzle.Puzzle as indented JSON bytes.
func ToJSON(p *puzzle.Puzzle) ([]byte, error) {
	return json.MarshalIndent(FormatJSON(p), "", "  ")
}
