package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/crossplay/mcwgen/pkg/output"
	"github.com/crossplay/mcwgen/pkg/pattern"
	"github.com/crossplay/mcwgen/pkg/puzzle"
	"github.com/crossplay/mcwgen/pkg/wordlist"
	"github.com/spf13/cobra"
)

var (
	genCount      int
	genOutput     string
	genWordlist   string
	genMinLen     int
	genMaxLen     int
	genSeed       int64
	genTimeLimitS float64
	genForced     string
	genMaxRetries int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate mini-crossword puzzles",
	Long: `Generate one or more mini-crossword puzzles by running the fill
solver against a wordlist until a complete grid is found or the attempt
budget is exhausted.

Examples:
  # Generate 10 puzzles from a plain wordlist, one JSON file each
  crossgen generate --count 10 --wordlist words.txt --output ./puzzles

  # Generate deterministically from a fixed seed
  crossgen generate --seed 42 --wordlist words.txt --output ./puzzles

  # Force one particular word to appear in every generated puzzle
  crossgen generate --wordlist words.txt --forced-word HELLO`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&genCount, "count", "n", 1, "number of puzzles to generate")
	generateCmd.Flags().StringVarP(&genOutput, "output", "o", ".", "output directory for generated puzzle JSON files")
	generateCmd.Flags().StringVarP(&genWordlist, "wordlist", "w", "", "path to a newline-delimited word file (required)")
	generateCmd.Flags().IntVar(&genMinLen, "min-len", 2, "minimum accepted word length")
	generateCmd.Flags().IntVar(&genMaxLen, "max-len", 7, "maximum accepted word length")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "RNG seed (0 draws a time-based seed)")
	generateCmd.Flags().Float64Var(&genTimeLimitS, "time-limit", 2.0, "per-attempt wall-clock budget in seconds")
	generateCmd.Flags().StringVar(&genForced, "forced-word", "", "require this word to appear in every generated puzzle")
	generateCmd.Flags().IntVar(&genMaxRetries, "max-retries", 50, "maximum generation attempts per puzzle before giving up")
	generateCmd.MarkFlagRequired("wordlist")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if verbosity > 0 {
		fmt.Printf("Loading wordlist from: %s\n", genWordlist)
	}

	words, err := wordlist.LoadFile(genWordlist, genMinLen, genMaxLen)
	if err != nil {
		return fmt.Errorf("failed to load wordlist: %w", err)
	}
	if len(words) == 0 {
		return fmt.Errorf("wordlist %s has no words in length range [%d,%d]", genWordlist, genMinLen, genMaxLen)
	}
	if verbosity > 0 {
		fmt.Printf("Loaded %d words\n", len(words))
	}

	index := pattern.New(words)
	assembler := puzzle.NewAssembler(index)

	seed := genSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if err := os.MkdirAll(genOutput, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Printf("Generating %d puzzle(s) (seed=%d)\n", genCount, seed)

	for i := 1; i <= genCount; i++ {
		start := time.Now()
		fmt.Printf("[%d/%d] Generating puzzle... ", i, genCount)

		puz, attempts, err := generateOne(assembler, rng, genForced)
		if err != nil {
			fmt.Printf("FAILED (%d attempts)\n", attempts)
			return fmt.Errorf("failed to generate puzzle %d: %w", i, err)
		}

		filePath := filepath.Join(genOutput, fmt.Sprintf("puzzle_%03d.json", i))
		data, err := output.ToJSON(puz)
		if err != nil {
			return fmt.Errorf("failed to format puzzle %d: %w", i, err)
		}
		if err := os.WriteFile(filePath, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", filePath, err)
		}

		fmt.Printf("OK id=%s (%d attempts, %.1fs)\n", puz.ID, attempts, time.Since(start).Seconds())
	}

	fmt.Printf("\nSuccessfully generated %d puzzle(s) in %s\n", genCount, genOutput)
	return nil
}

// generateOne retries puzzle.Assembler.Generate up to genMaxRetries times,
// matching the caller-retries contract of spec §4.6/§7: a solver timeout
// or exhausted search both fail the attempt, not the whole generation.
func generateOne(assembler *puzzle.Assembler, rng *rand.Rand, forcedWord string) (*puzzle.Puzzle, int, error) {
	var lastErr error
	for attempt := 1; attempt <= genMaxRetries; attempt++ {
		deadline := time.Now().Add(time.Duration(genTimeLimitS * float64(time.Second)))
		puz, err := assembler.Generate(rng, deadline, forcedWord)
		if err == nil {
			return puz, attempt, nil
		}
		lastErr = err
	}
	return nil, genMaxRetries, lastErr
}
