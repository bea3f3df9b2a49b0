package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParseCmd(a *app) *cobra.Command {
	var opts sigOptions

	cmd := &cobra.Command{
		Use:   "parse <signature>",
		Short: "show how a signature is understood",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := opts.signature(args[0])
			if err != nil {
				return err
			}

			a.log.Debug("parsed signature", "length", sig.Len(), "wildcard", sig.Wildcard())
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pattern:  %s\n", sig)
			fmt.Fprintf(out, "length:   %d\n", sig.Len())
			fmt.Fprintf(out, "wildcard: 0x%02X\n", sig.Wildcard())
			return nil
		},
	}
	opts.register(cmd)

	return cmd
}
