package cmd

import (
	"io"

	"github.com/spf13/cobra"
)

// rootCmd parses ONeSAMP's single-letter flags itself, so cobra's flag
// parsing is off and every argument reaches runOneSamp untouched.
var rootCmd = &cobra.Command{
	Use:   "onesamp -r<source> -l<loci> -i<individuals> [-b<lo,hi>] [-d<lo,hi>] -s|-m[n,...] [-t<n>] [-u<lo,hi>] [-v<lo,hi>] [-f<x>] [-o<x>] [-a] -x|-e|-w|-g|-p",
	Short: "ONeSAMP parameter parser and pre-sampler",
	Long: `ONeSAMP estimates effective population size from a genetic sample.
This front end reads the run parameters, validates them for the selected
operation and draws the per-iteration simulation parameters.

Ambient options use the long form and may also come from ONESAMP_*
environment variables:
  --log-level=<debug|info|warn|error>
  --no-color
  --seed=<n>          random seed (0 seeds from the clock)
  --report=<path>     write a YAML run report
  --show-draws        print the drawn parameters of every iteration`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
	RunE:               runOneSamp,
}

func init() {
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(flagsCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteArgs runs the root command with explicit arguments and output.
func ExecuteArgs(args []string, out io.Writer) error {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	}()
	return rootCmd.Execute()
}
