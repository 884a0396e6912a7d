package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/giftshop/storefront/internal/infrastructure/feed"
	"github.com/giftshop/storefront/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const productIDColumn = "product_id"

type priceChange struct {
	Name    string
	OldSell int
	NewSell int
	Profit  string
}

// repriceStats summarizes one reprice pass.
type repriceStats struct {
	Total    int
	Coded    int
	Repriced int
	Uncoded  []string
	Samples  []priceChange
	Endings  map[string]int
}

// Price ending buckets in report order.
var endingBuckets = []string{"x,000", "x,500", "x,900", "x9,900", "other"}

func newRepriceCommand(opts *globalOptions) *cobra.Command {
	var (
		input   string
		output  string
		samples int
	)

	cmd := &cobra.Command{
		Use:   "reprice",
		Short: "Assign product codes and round sell prices to attractive endings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := opts.logger()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			var stats repriceStats
			err = rewriteFile(input, output, func(r io.Reader, w io.Writer) error {
				var err error
				stats, err = repriceTable(r, w, samples, log)
				return err
			})
			if err != nil {
				return err
			}

			printRepriceReport(cmd.OutOrStdout(), stats, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "pricing_master.csv", "pricing CSV with image, sell_price and cost_price columns")
	cmd.Flags().StringVarP(&output, "output", "o", "pricing_master_coded.csv", "destination CSV (empty rewrites the input)")
	cmd.Flags().IntVar(&samples, "samples", 30, "number of sample price changes to print")
	return cmd
}

// repriceTable codes and reprices every row of the pricing CSV read from r.
// A product_id column is prepended unless the header already has one.
func repriceTable(r io.Reader, w io.Writer, sampleLimit int, log *zap.Logger) (repriceStats, error) {
	stats := repriceStats{Endings: make(map[string]int, len(endingBuckets))}

	header, rows, err := readTable(r)
	if err != nil {
		return stats, err
	}

	idCol := columnIndex(header, productIDColumn)
	if idCol < 0 {
		header = append([]string{productIDColumn}, header...)
		for i, row := range rows {
			rows[i] = append([]string{""}, row...)
		}
		idCol = 0
	}

	nameCol := columnIndex(header, "name")
	imageCol := columnIndex(header, "image")
	sellCol := columnIndex(header, "sell_price")
	costCol := columnIndex(header, "cost_price")
	profitCol := columnIndex(header, "profit")
	if imageCol < 0 || sellCol < 0 || costCol < 0 {
		return stats, fmt.Errorf("pricing csv needs image, sell_price and cost_price columns, got %v", header)
	}

	for i, row := range rows {
		stats.Total++
		name := cell(row, nameCol)

		pricing := usecase.PricingRow{
			Image:     cell(row, imageCol),
			SellPrice: cell(row, sellCol),
			CostPrice: cell(row, costCol),
			Profit:    cell(row, profitCol),
		}
		result, err := usecase.Reprice(&pricing)
		if err != nil {
			log.Warn("price left unchanged", zap.String("name", name), zap.Error(err))
		}

		if result.Coded {
			stats.Coded++
		} else {
			stats.Uncoded = append(stats.Uncoded, truncateRunes(name, 60))
		}
		if result.Repriced {
			stats.Repriced++
			if len(stats.Samples) < sampleLimit {
				stats.Samples = append(stats.Samples, priceChange{
					Name:    truncateRunes(name, 50),
					OldSell: result.OldSell,
					NewSell: result.NewSell,
					Profit:  pricing.Profit,
				})
			}
		}

		row = setCell(row, idCol, pricing.ProductID)
		row = setCell(row, sellCol, pricing.SellPrice)
		if profitCol >= 0 {
			row = setCell(row, profitCol, pricing.Profit)
		}
		rows[i] = row

		if sell := strings.TrimSpace(pricing.SellPrice); strings.HasPrefix(sell, feed.CurrencySymbol) {
			stats.Endings[endingBucket(feed.ParsePrice(sell))]++
		}
	}

	return stats, writeTable(w, header, rows)
}

// endingBucket names the price ending of value for the distribution report.
func endingBucket(value int) string {
	switch {
	case value%10000 == 9900:
		return "x9,900"
	case value%1000 == 900:
		return "x,900"
	case value%1000 == 500:
		return "x,500"
	case value%1000 == 0:
		return "x,000"
	default:
		return "other"
	}
}

func printRepriceReport(w io.Writer, stats repriceStats, output string) {
	fmt.Fprintln(w, "Results:")
	fmt.Fprintf(w, "  Rows with PROD IDs: %d/%d\n", stats.Coded, stats.Total)
	fmt.Fprintf(w, "  Prices updated: %d/%d\n", stats.Repriced, stats.Total)
	if output != "" {
		fmt.Fprintf(w, "  Output written to: %s\n", output)
	}

	for _, name := range stats.Uncoded {
		fmt.Fprintf(w, "WARNING: No image number found for: %s\n", name)
	}

	if len(stats.Samples) > 0 {
		rule := strings.Repeat("=", 100)
		fmt.Fprintf(w, "\n%s\nSAMPLE PRICE ADJUSTMENTS (first %d):\n%s\n", rule, len(stats.Samples), rule)
		fmt.Fprintf(w, "%-52s %12s %12s %8s %12s\n", "Product", "Old Sell", "New Sell", "Bump", "New Profit")
		for _, s := range stats.Samples {
			fmt.Fprintf(w, "%-52s %12s %12s %8s %12s\n",
				s.Name,
				feed.FormatPrice(s.OldSell),
				feed.FormatPrice(s.NewSell),
				"+"+feed.FormatPrice(s.NewSell-s.OldSell),
				s.Profit)
		}
	}

	fmt.Fprintln(w, "\nPrice ending distribution:")
	for _, bucket := range endingBuckets {
		fmt.Fprintf(w, "  %-7s %d\n", bucket+":", stats.Endings[bucket])
	}
}
