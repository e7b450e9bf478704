package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crossplay/mcwgen/pkg/grid"
	"github.com/spf13/cobra"
)

var (
	validateWidth  int
	validateHeight int
	validateBlocks string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a block set against the structural grid rules",
	Long: `Validate checks whether a set of blocked border cells is a legal
block set for a given grid size (spec §4.1): cardinality at most 4, every
cell on the border, every blocked-cell chain anchored at a reachable
corner, and no non-blocked cell left outside every slot.

Examples:
  # Empty block set is always legal
  crossgen validate --width 5 --height 5

  # A single corner-adjacent chain
  crossgen validate --width 6 --height 6 --blocks "0,0;0,1"`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().IntVar(&validateWidth, "width", 5, "grid width")
	validateCmd.Flags().IntVar(&validateHeight, "height", 5, "grid height")
	validateCmd.Flags().StringVar(&validateBlocks, "blocks", "", `blocked cells as "row,col;row,col;..."`)
}

func runValidate(cmd *cobra.Command, args []string) error {
	dim := grid.Dimensions{W: validateWidth, H: validateHeight}

	blocks, err := parseBlocks(validateBlocks)
	if err != nil {
		return fmt.Errorf("invalid --blocks: %w", err)
	}

	fmt.Printf("Grid: %s, blocks: %d\n", dim, len(blocks))

	if !grid.ValidateBlockSet(dim, blocks) {
		fmt.Println("❌ INVALID: block set fails the structural validator")
		return fmt.Errorf("block set is not legal for %s", dim)
	}

	slots, index := grid.ExtractSlots(dim, blocks)
	uncovered := 0
	blocked := blocks.ToMap()
	for r := 0; r < dim.H; r++ {
		for c := 0; c < dim.W; c++ {
			cell := grid.Cell{Row: r, Col: c}
			if blocked[cell] {
				continue
			}
			if len(index[cell]) == 0 {
				uncovered++
			}
		}
	}

	fmt.Printf("✓ VALID: %d slots, %d cells, 0 uncovered\n", len(slots), dim.W*dim.H-len(blocks))
	if uncovered > 0 {
		// Unreachable given grid.ValidateBlockSet already enforces this,
		// but reported defensively since this command accepts arbitrary input.
		return fmt.Errorf("internal inconsistency: %d cells uncovered by any slot", uncovered)
	}
	return nil
}

// parseBlocks parses a "row,col;row,col" list into a grid.BlockSet.
func parseBlocks(s string) (grid.BlockSet, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	blocks := make(grid.BlockSet, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		coords := strings.Split(part, ",")
		if len(coords) != 2 {
			return nil, fmt.Errorf("cell %q: expected row,col", part)
		}
		row, err := strconv.Atoi(strings.TrimSpace(coords[0]))
		if err != nil {
			return nil, fmt.Errorf("cell %q: %w", part, err)
		}
		col, err := strconv.Atoi(strings.TrimSpace(coords[1]))
		if err != nil {
			return nil, fmt.Errorf("cell %q: %w", part, err)
		}
		blocks = append(blocks, grid.Cell{Row: row, Col: col})
	}
	return blocks, nil
}
