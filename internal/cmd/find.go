package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/s-hammon/memsig/internal/scan"
	"github.com/s-hammon/memsig/internal/util"
	"github.com/s-hammon/p"
	"github.com/spf13/cobra"
)

func newFindCmd(a *app) *cobra.Command {
	var (
		opts    sigOptions
		section string
		context int
	)

	cmd := &cobra.Command{
		Use:   "find <signature> <file>",
		Short: "print the offset of the first match of a signature in a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := opts.signature(args[0])
			if err != nil {
				return err
			}

			m, err := scan.Map(args[1])
			if err != nil {
				return err
			}
			defer m.Close()

			regions, err := regionsFor(m, int64(m.Len()), section)
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}

			a.log.Info("searching", "file", args[1], "signature", sig.String(), "regions", len(regions))
			off, err := m.Find(regions, sig)
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}

			out := cmd.OutOrStdout()
			line := p.Format("0x%X", off)
			if reg := locate(regions, off); reg.Addr != 0 {
				line += p.Format(" (%s vaddr 0x%X)", reg.Name, reg.VirtualAddress(off))
			}
			fmt.Fprintln(out, line)

			if context > 0 {
				b, err := util.ReadBytes(m, int64(off)-int64(context), sig.Len()+2*context)
				if err != nil {
					return err
				}
				fmt.Fprint(out, hex.Dump(b))
			}

			return nil
		},
	}
	opts.register(cmd)
	cmd.Flags().StringVar(&section, "section", "", "search only this ELF section")
	cmd.Flags().IntVarP(&context, "context", "C", 0, "hex dump this many bytes around the match")

	return cmd
}
