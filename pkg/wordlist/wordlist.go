// Package wordlist ingests newline-delimited word files into the
// normalized, de-duplicated word slice the Pattern Index expects (§6
// "Wordlist contract").
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

var wordPattern = regexp.MustCompile(`^[A-Z]+$`)

// Categories lists the default category files merged by Load, mirroring
// original_source/wordlist.py's CATEGORIES.
var Categories = []string{"core", "names", "geo", "slang", "abbreviations"}

// Config controls ingestion: which category files to merge, the allow
// and ban list paths, and the accepted word-length range.
type Config struct {
	Dir        string   // directory containing category/allowlist/banlist files
	MinLen     int      // default 2
	MaxLen     int      // default 7
	Categories []string // defaults to Categories
}

// Normalize trims, uppercases, and validates raw against [A-Z]+. It
// returns ("", false) for blank or non-alphabetic input, mirroring
// original_source/wordlist.py:normalize_word.
func Normalize(raw string) (string, bool) {
	word := strings.ToUpper(strings.TrimSpace(raw))
	if word == "" {
		return "", false
	}
	if !wordPattern.MatchString(word) {
		return "", false
	}
	return word, true
}

// readWordFile reads one newline-delimited word file, normalizing and
// length-filtering each line. A missing file yields an empty set rather
// than an error, matching the original's permissive category loading.
func readWordFile(path string, minLen, maxLen int) (map[string]bool, error) {
	words := make(map[string]bool)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return words, nil
		}
		return nil, fmt.Errorf("wordlist: open %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		normalized, ok := Normalize(scanner.Text())
		if !ok {
			continue
		}
		if len(normalized) < minLen || len(normalized) > maxLen {
			continue
		}
		words[normalized] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("wordlist: read %s: %w", path, err)
	}
	return words, nil
}

// Load merges every category file under cfg.Dir, applies the allowlist
// and banlist, and returns the sorted, de-duplicated word list ready for
// pattern.New (§6, original_source/wordlist.py:load_words).
func Load(cfg Config) ([]string, error) {
	minLen, maxLen := cfg.MinLen, cfg.MaxLen
	if minLen == 0 {
		minLen = 2
	}
	if maxLen == 0 {
		maxLen = 7
	}
	categories := cfg.Categories
	if categories == nil {
		categories = Categories
	}

	combined := make(map[string]bool)
	for _, category := range categories {
		words, err := readWordFile(cfg.Dir+"/"+category+".txt", minLen, maxLen)
		if err != nil {
			return nil, err
		}
		for w := range words {
			combined[w] = true
		}
	}

	allow, err := readWordFile(cfg.Dir+"/allowlist.txt", minLen, maxLen)
	if err != nil {
		return nil, err
	}
	for w := range allow {
		combined[w] = true
	}

	ban, err := readWordFile(cfg.Dir+"/banlist.txt", minLen, maxLen)
	if err != nil {
		return nil, err
	}
	for w := range ban {
		delete(combined, w)
	}

	words := make([]string, 0, len(combined))
	for w := range combined {
		words = append(words, w)
	}
	sort.Strings(words)
	return words, nil
}

// LoadFile reads a single plain word file (one word per line, no
// category/allow/ban merging) — the common case for a caller that
// already owns a curated dictionary.
func LoadFile(path string, minLen, maxLen int) ([]string, error) {
	set, err := readWordFile(path, minLen, maxLen)
	if err != nil {
		return nil, err
	}
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return words, nil
}
