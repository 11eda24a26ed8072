package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/onesamp/onesamp/pkg/arguments"
	"github.com/onesamp/onesamp/pkg/random"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the operating modes",
	Long:  `List every operation flag with the parameters it draws`,
	Args:  cobra.NoArgs,
	RunE:  listModes,
}

var flagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "List the ONeSAMP flags",
	Long:  `List every single-letter flag with its payload`,
	Args:  cobra.NoArgs,
	RunE:  listFlags,
}

func listModes(cmd *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FLAG\tMODE\tDRAWS\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "----\t----\t-----\t-----------")

	for _, d := range arguments.Descriptors() {
		_, _ = fmt.Fprintf(w, "-%c\t%s\t%s\t%s\n",
			d.Flag,
			d.Name,
			d.Draws,
			d.Description,
		)
	}

	return w.Flush()
}

func listFlags(cmd *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FLAG\tPAYLOAD\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "----\t-------\t-----------")

	for _, f := range arguments.Flags {
		payload := f.Payload
		if f.Letter == 'r' {
			payload = fmt.Sprintf("%v", random.DefaultRegistry.Keywords())
		}
		if payload == "" {
			payload = "-"
		}
		_, _ = fmt.Fprintf(w, "-%c\t%s\t%s\n", f.Letter, payload, f.Description)
	}

	return w.Flush()
}
