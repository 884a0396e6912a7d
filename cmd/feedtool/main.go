// Command feedtool runs maintenance passes over product CSV files before they
// are published as the storefront feed.
package main

import (
	"fmt"
	"os"

	"github.com/giftshop/storefront/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type globalOptions struct {
	logLevel string
}

func (o *globalOptions) logger() (*zap.Logger, error) {
	return logger.New(o.logLevel)
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "feedtool",
		Short:         "Maintenance tools for the storefront product feed",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newCleanNamesCommand(opts))
	root.AddCommand(newRepriceCommand(opts))
	return root
}
