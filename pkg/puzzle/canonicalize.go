package puzzle

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/crossplay/mcwgen/pkg/grid"
)

// CanonicalBytes produces the deterministic byte serialization of a
// puzzle's shape and solution, ported verbatim from
// original_source/hashing.py:canonical_bytes for cross-implementation
// hash compatibility (§4.7). blocked and letters use #/? as placeholders
// for black cells and missing letters respectively.
func CanonicalBytes(dim grid.Dimensions, blocks grid.BlockSet, letters map[grid.Cell]byte) []byte {
	blocked := blocks.ToMap()

	sortedBlocks := append(grid.BlockSet(nil), blocks...)
	sort.Slice(sortedBlocks, func(i, j int) bool {
		a, b := sortedBlocks[i], sortedBlocks[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	})

	blackParts := make([]string, len(sortedBlocks))
	for i, c := range sortedBlocks {
		blackParts[i] = fmt.Sprintf("%d,%d", c.Row, c.Col)
	}
	blackPart := strings.Join(blackParts, ";")

	rows := make([]string, dim.H)
	for r := 0; r < dim.H; r++ {
		var row strings.Builder
		for c := 0; c < dim.W; c++ {
			cell := grid.Cell{Row: r, Col: c}
			switch {
			case blocked[cell]:
				row.WriteByte('#')
			default:
				if letter, ok := letters[cell]; ok {
					row.WriteByte(letter)
				} else {
					row.WriteByte('?')
				}
			}
		}
		rows[r] = row.String()
	}

	canonical := fmt.Sprintf("%s|%s|%s", dim.String(), blackPart, strings.Join(rows, "/"))
	return []byte(canonical)
}

// Hash returns the SHA-256 hex digest of the canonical serialization.
func Hash(dim grid.Dimensions, blocks grid.BlockSet, letters map[grid.Cell]byte) string {
	sum := sha256.Sum256(CanonicalBytes(dim, blocks, letters))
	return hex.EncodeToString(sum[:])
}

// ID derives the puzzle's public identifier from its hash: the
// "mcw_v1_" prefix plus the first 16 hex characters (§6).
func ID(hash string) string {
	n := 16
	if len(hash) < n {
		n = len(hash)
	}
	return "mcw_v1_" + hash[:n]
}
