package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/wbrown/ppmfilter"
)

var rootCmd = &cobra.Command{
	Use:   "ppmfilter <input-image> <kernel-file> <output-image>",
	Short: "Apply a convolution kernel to a plain-text PPM image",
	Long: `ppmfilter convolves a P3 PPM image with a square kernel read from a text
file (odd size, scale, then size*size integer weights) and writes the
filtered image as P3 PPM.

Arguments are matched against subcommand names (info, kernel, help,
completion) first. A file with one of those names must be given with a
directory prefix, e.g. ./kernel.`,
	Args:          cobra.ExactArgs(3),
	SilenceErrors: true,
	RunE:          runFilter,
}

func init() {
	rootCmd.Flags().IntP("workers", "w", 0,
		"Goroutines for the convolution pass (1 = sequential, 0 = GOMAXPROCS)")
	// Expose glog's -v, -logtostderr, ... on the cobra command line.
	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func runFilter(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	workers, _ := cmd.Flags().GetInt("workers")

	res, err := ppmfilter.Run(cmd.Context(), ppmfilter.Config{
		InputPath:  args[0],
		KernelPath: args[1],
		OutputPath: args[2],
		Workers:    workers,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Filtered %dx%d with %dx%d kernel → %s (%v)\n",
		res.Width, res.Height, res.KernelSize, res.KernelSize, args[2], res.Elapsed)
	return nil
}

// run executes the command tree and reports a failure once on stderr.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	defer glog.Flush()

	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		glog.V(1).Infof("ppmfilter failed: %v", err)
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}
