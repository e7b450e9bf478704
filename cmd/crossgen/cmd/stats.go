package cmd

import (
	"fmt"
	"sort"

	"github.com/crossplay/mcwgen/pkg/pattern"
	"github.com/crossplay/mcwgen/pkg/wordlist"
	"github.com/spf13/cobra"
)

var (
	statsWordlist string
	statsMinLen   int
	statsMaxLen   int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report Pattern Index bucket sizes for a wordlist",
	Long: `Stats loads a wordlist, builds a Pattern Index over it, and reports
the per-length bucket sizes (spec §4.4) — useful for judging whether a
wordlist has enough words of a given length to fill the allowed grid
sizes (5-7 wide, 5-6 tall).

Examples:
  crossgen stats --wordlist words.txt`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsWordlist, "wordlist", "w", "", "path to a newline-delimited word file (required)")
	statsCmd.Flags().IntVar(&statsMinLen, "min-len", 2, "minimum accepted word length")
	statsCmd.Flags().IntVar(&statsMaxLen, "max-len", 7, "maximum accepted word length")
	statsCmd.MarkFlagRequired("wordlist")
}

func runStats(cmd *cobra.Command, args []string) error {
	words, err := wordlist.LoadFile(statsWordlist, statsMinLen, statsMaxLen)
	if err != nil {
		return fmt.Errorf("failed to load wordlist: %w", err)
	}
	if len(words) == 0 {
		return fmt.Errorf("wordlist %s has no words in length range [%d,%d]", statsWordlist, statsMinLen, statsMaxLen)
	}

	index := pattern.New(words)

	lengths := make(map[int]int)
	for _, w := range words {
		lengths[len(w)]++
	}

	var sorted []int
	for l := range lengths {
		sorted = append(sorted, l)
	}
	sort.Ints(sorted)

	fmt.Printf("Total words: %d\n\n", len(words))
	fmt.Println("Length  Count  Candidates(all '.')")
	for _, l := range sorted {
		allWildcard := make([]byte, l)
		for i := range allWildcard {
			allWildcard[i] = '.'
		}
		candidates := index.Candidates(string(allWildcard))
		fmt.Printf("%6d  %5d  %d\n", l, lengths[l], len(candidates))
	}
	return nil
}
