// Package puzzle implements the Puzzle Assembler and Canonicalizer: it
// drives the grid and fill packages end to end and produces the
// externally-facing Puzzle record (spec §4.6, §4.7, §6).
package puzzle

// Puzzle is the generator's output record, matching the wire shape
// callers serialize as JSON (§6).
type Puzzle struct {
	GridPreview  []string   `json:"gridPreview"`
	ID           string     `json:"id"`
	Date         string     `json:"date"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	BlackCells   [][2]int   `json:"blackCells"`
	GridSolution [][]*string `json:"gridSolution"`
	Entries      Entries    `json:"entries"`
}

// Entries groups a puzzle's across and down clue entries.
type Entries struct {
	Across []Entry `json:"across"`
	Down   []Entry `json:"down"`
}

// Entry is one across or down slot's answer record.
type Entry struct {
	Number int      `json:"number"`
	Cells  [][2]int `json:"cells"`
	Answer string   `json:"answer"`
	Clue   string   `json:"clue"`
}
