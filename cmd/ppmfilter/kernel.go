package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wbrown/ppmfilter/imageutil"
)

var kernelCmd = &cobra.Command{
	Use:   "kernel <preset> [output]",
	Short: "Write a preset kernel file (stdout if no output is given)",
	Long: "Write one of the built-in kernels in the kernel text format.\n" +
		"Presets: " + strings.Join(imageutil.PresetNames(), ", "),
	Args: func(cmd *cobra.Command, args []string) error {
		if list, _ := cmd.Flags().GetBool("list"); list {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.RangeArgs(1, 2)(cmd, args)
	},
	RunE: runKernel,
}

func init() {
	kernelCmd.Flags().BoolP("list", "l", false, "List the available presets")
	rootCmd.AddCommand(kernelCmd)
}

func runKernel(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	out := cmd.OutOrStdout()

	if list, _ := cmd.Flags().GetBool("list"); list {
		for _, name := range imageutil.PresetNames() {
			k, _ := imageutil.Preset(name)
			fmt.Fprintf(out, "%-10s %dx%d scale %d\n", name, k.Size(), k.Size(), k.Scale())
		}
		return nil
	}

	k, err := imageutil.Preset(args[0])
	if err != nil {
		return err
	}
	if len(args) == 1 {
		return imageutil.WriteKernel(out, k)
	}
	if err := imageutil.SaveKernel(k, args[1]); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s kernel → %s\n", args[0], args[1])
	return nil
}
