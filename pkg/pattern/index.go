// Package pattern implements the Pattern Index: a word dictionary indexed
// by length and per-position letter, supporting fast candidate lookup for
// partially-filled crossword slots (spec §4.4).
package pattern

import "sync"

// Index is built once from a fixed word dictionary and queried many times
// during fill-solving. It is read-only after construction except for its
// internal memoization cache, which is guarded by a mutex so that one
// Index may be shared by concurrent solver invocations (internal/server
// shares one across all generate requests).
type Index struct {
	cacheMu sync.Mutex

	byLength map[int][]string
	// positions[L][p][ch] holds the ascending word-indices (into
	// byLength[L]) whose character at position p equals ch.
	positions map[int][]map[byte][]int
	all       map[int][]int
	cache     map[int]map[string][]string
}

// New builds an Index over words. Words of the same length retain their
// relative input order in byLength, which is what makes candidate
// iteration order reproducible from the input ordering (§4.4, §9).
func New(words []string) *Index {
	idx := &Index{
		byLength:  make(map[int][]string),
		positions: make(map[int][]map[byte][]int),
		all:       make(map[int][]int),
		cache:     make(map[int]map[string][]string),
	}

	for _, w := range words {
		idx.byLength[len(w)] = append(idx.byLength[len(w)], w)
	}

	for length, bucket := range idx.byLength {
		positions := make([]map[byte][]int, length)
		for p := range positions {
			positions[p] = make(map[byte][]int)
		}
		for i, word := range bucket {
			for p := 0; p < length; p++ {
				ch := word[p]
				positions[p][ch] = append(positions[p][ch], i)
			}
		}
		idx.positions[length] = positions

		all := make([]int, len(bucket))
		for i := range bucket {
			all[i] = i
		}
		idx.all[length] = all
		idx.cache[length] = make(map[string][]string)
	}

	return idx
}

// Words returns the dictionary's words of the given length, in their
// canonical (by_length) order. The returned slice must not be mutated.
func (idx *Index) Words(length int) []string {
	return idx.byLength[length]
}

// Candidates returns the words matching pattern, where '.' is a wildcard.
// Results are memoized per length and are returned in ascending
// word-index order, making output deterministic across repeated queries
// against the same Index (§4.4, §9).
func (idx *Index) Candidates(pattern string) []string {
	length := len(pattern)
	bucket, ok := idx.byLength[length]
	if !ok {
		return nil
	}

	idx.cacheMu.Lock()
	defer idx.cacheMu.Unlock()

	cache := idx.cache[length]
	if cached, ok := cache[pattern]; ok {
		return cached
	}

	indices := idx.all[length]
	positions := idx.positions[length]
	for p := 0; p < length; p++ {
		ch := pattern[p]
		if ch == '.' {
			continue
		}
		indices = intersectSorted(indices, positions[p][ch])
		if len(indices) == 0 {
			break
		}
	}

	words := make([]string, len(indices))
	for i, wordIdx := range indices {
		words[i] = bucket[wordIdx]
	}
	cache[pattern] = words
	return words
}

// intersectSorted returns the sorted intersection of two ascending,
// duplicate-free index slices.
func intersectSorted(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

