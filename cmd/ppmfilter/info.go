package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wbrown/ppmfilter/imageutil"
)

var infoCmd = &cobra.Command{
	Use:   "info <image>",
	Short: "Print the dimensions of a P3 PPM image",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	path := args[0]
	img, err := imageutil.LoadPPM(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:        %s\n", path)
	fmt.Fprintf(out, "Dimensions:  %d x %d\n", img.Width(), img.Height())
	fmt.Fprintf(out, "Max channel: %d\n", img.MaxChannel())
	return nil
}
