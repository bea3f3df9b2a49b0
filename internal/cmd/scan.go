package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/s-hammon/memsig/internal/config"
	"github.com/s-hammon/memsig/internal/scan"
	"github.com/s-hammon/p"
	"github.com/spf13/cobra"
)

func newScanCmd(a *app) *cobra.Command {
	var (
		catalog string
		chunk   int
	)

	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "resolve every signature of a catalog in a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.LoadFile(catalog)
			if err != nil {
				return err
			}
			entries, err := c.Compile()
			if err != nil {
				return fmt.Errorf("%s: %w", catalog, err)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			fi, err := f.Stat()
			if err != nil {
				return err
			}

			scanner := a.scanner()
			if chunk > 0 {
				scanner.ChunkSize = chunk
			}

			a.log.Info("scanning", "file", args[0], "signatures", len(entries))
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			missing := 0
			for _, e := range entries {
				regions, err := regionsFor(f, fi.Size(), e.Section)
				if err != nil {
					return fmt.Errorf("%s: %w", e.Name, err)
				}

				off, err := scanner.Scan(cmd.Context(), f, regions, e.Signature)
				switch {
				case errors.Is(err, scan.ErrNotFound):
					missing++
					fmt.Fprintf(tw, "%s\tnot found\n", e.Name)
					continue
				case err != nil:
					return fmt.Errorf("%s: %w", e.Name, err)
				}

				addr := int64(locate(regions, off).VirtualAddress(off)) + e.Offset
				fmt.Fprintf(tw, "%s\t%s\n", e.Name, p.Format("0x%X", addr))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if missing > 0 {
				return fmt.Errorf("%d of %d signatures not found", missing, len(entries))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&catalog, "catalog", "c", "", "YAML signature catalog")
	cmd.Flags().IntVar(&chunk, "chunk", 0, "read size in bytes (default 1 MiB)")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}
