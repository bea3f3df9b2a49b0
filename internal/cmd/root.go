package cmd

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/s-hammon/memsig/internal/scan"
	"github.com/spf13/cobra"
)

const (
	Cols            = 16
	RefreshInterval = 250 * time.Millisecond
)

type app struct {
	verbose bool
	log     *slog.Logger
}

func (a *app) scanner() *scan.Scanner {
	return scan.New(a.log)
}

func newRootCmd() *cobra.Command {
	a := &app{log: slog.Default()}

	root := &cobra.Command{
		Use:           "memsig",
		Short:         "locate byte signatures with wildcards in binary images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log progress to stderr")

	root.AddCommand(
		newParseCmd(a),
		newFindCmd(a),
		newScanCmd(a),
		newViewCmd(a),
	)

	return root
}

func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	ctx := context.Background()
	if err := root.ExecuteContext(ctx); err != nil {
		root.PrintErrln("Error:", err)
		return 1
	}

	return 0
}
