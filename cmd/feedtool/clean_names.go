package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/giftshop/storefront/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type nameChange struct {
	Old string
	New string
}

// cleanStats summarizes one clean-names pass.
type cleanStats struct {
	Total   int
	Changed int
	Samples []nameChange
	Lengths []int
	Longest []string
}

func newCleanNamesCommand(opts *globalOptions) *cobra.Command {
	var (
		input   string
		output  string
		maxLen  int
		samples int
	)

	cmd := &cobra.Command{
		Use:   "clean-names",
		Short: "Shorten and tidy the name column of a product CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := opts.logger()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			cleaner := usecase.NewNameCleaner(maxLen, log)

			var stats cleanStats
			err = rewriteFile(input, output, func(r io.Reader, w io.Writer) error {
				var err error
				stats, err = cleanNames(r, w, cleaner, samples)
				return err
			})
			if err != nil {
				return err
			}

			log.Info("names cleaned",
				zap.String("input", input),
				zap.Int("total", stats.Total),
				zap.Int("changed", stats.Changed))
			printCleanReport(cmd.OutOrStdout(), stats, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "products.csv", "product CSV to read")
	cmd.Flags().StringVarP(&output, "output", "o", "products_cleaned.csv", "destination CSV (empty rewrites the input)")
	cmd.Flags().IntVar(&maxLen, "max-len", usecase.DefaultMaxNameLen, "maximum cleaned name length in characters")
	cmd.Flags().IntVar(&samples, "samples", 40, "number of sample changes to print")
	return cmd
}

// cleanNames rewrites the name column of the CSV read from r into w.
func cleanNames(r io.Reader, w io.Writer, cleaner *usecase.NameCleaner, sampleLimit int) (cleanStats, error) {
	var stats cleanStats

	header, rows, err := readTable(r)
	if err != nil {
		return stats, err
	}
	nameCol := columnIndex(header, "name")
	if nameCol < 0 {
		return stats, fmt.Errorf("no name column in header %v", header)
	}

	for i, row := range rows {
		old := cell(row, nameCol)
		cleaned := cleaner.Clean(old)

		stats.Total++
		if cleaned != old {
			stats.Changed++
			if len(stats.Samples) < sampleLimit {
				stats.Samples = append(stats.Samples, nameChange{Old: truncateRunes(old, 80), New: cleaned})
			}
		}
		rows[i] = setCell(row, nameCol, cleaned)
		stats.Lengths = append(stats.Lengths, utf8.RuneCountInString(cleaned))
	}

	stats.Longest = longestNames(rows, nameCol, 10)
	return stats, writeTable(w, header, rows)
}

func longestNames(rows [][]string, col, n int) []string {
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, cell(row, col))
	}
	sort.SliceStable(names, func(i, j int) bool {
		return utf8.RuneCountInString(names[i]) > utf8.RuneCountInString(names[j])
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func printCleanReport(w io.Writer, stats cleanStats, output string) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Product Name Cleaning Results")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total products: %d\n", stats.Total)
	fmt.Fprintf(w, "Names changed:  %d\n", stats.Changed)
	fmt.Fprintf(w, "Unchanged:      %d\n", stats.Total-stats.Changed)
	if output != "" {
		fmt.Fprintf(w, "\nOutput: %s\n", output)
	}

	if len(stats.Samples) > 0 {
		fmt.Fprintf(w, "\nSample changes (first %d):\n", len(stats.Samples))
		for _, s := range stats.Samples {
			fmt.Fprintf(w, "  OLD: %s\n  NEW: %s\n\n", s.Old, s.New)
		}
	}

	if len(stats.Lengths) == 0 {
		return
	}
	var buckets [5]int
	sum := 0
	for _, l := range stats.Lengths {
		sum += l
		switch {
		case l <= 25:
			buckets[0]++
		case l <= 35:
			buckets[1]++
		case l <= 45:
			buckets[2]++
		case l <= 50:
			buckets[3]++
		default:
			buckets[4]++
		}
	}
	fmt.Fprintln(w, "Length distribution:")
	fmt.Fprintf(w, "  <= 25 chars: %d\n", buckets[0])
	fmt.Fprintf(w, "  26-35 chars: %d\n", buckets[1])
	fmt.Fprintf(w, "  36-45 chars: %d\n", buckets[2])
	fmt.Fprintf(w, "  46-50 chars: %d\n", buckets[3])
	fmt.Fprintf(w, "  > 50 chars:  %d\n", buckets[4])
	fmt.Fprintf(w, "  Average:     %.1f chars\n", float64(sum)/float64(len(stats.Lengths)))

	fmt.Fprintf(w, "\nLongest %d names:\n", len(stats.Longest))
	for _, n := range stats.Longest {
		fmt.Fprintf(w, "  [%d] %s\n", utf8.RuneCountInString(n), n)
	}
}
