package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/s-hammon/memsig/internal/ui"
	"github.com/spf13/cobra"
)

func newViewCmd(a *app) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "browse a file and try signatures against it interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			updates := make(chan ui.Update, 1)
			cfg := WorkerConfig{Path: args[0], Interval: interval}
			go func() {
				RunWorker(ctx, cfg, updates, a.log)
				close(updates)
			}()

			if err := ui.Run(updates, Cols); err != nil {
				return fmt.Errorf("tui: %v", err)
			}

			return nil
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", RefreshInterval, "how often to reload the file")

	return cmd
}

type WorkerConfig struct {
	Path     string
	Interval time.Duration
}

// RunWorker loads cfg.Path, then reloads it on every tick when its size or
// modification time changed, sending each snapshot to out until ctx is done.
func RunWorker(ctx context.Context, cfg WorkerConfig, out chan<- ui.Update, log *slog.Logger) {
	interval := cfg.Interval
	if interval <= 0 {
		interval = RefreshInterval
	}
	tick := time.NewTicker(interval)
	defer tick.Stop()

	var (
		name    = filepath.Base(cfg.Path)
		loaded  bool
		size    int64
		modTime time.Time
		lastErr string
	)

	send := func(u ui.Update) bool {
		select {
		case out <- u:
			return true
		case <-ctx.Done():
			return false
		}
	}

	// offline reports a failure once, not on every tick.
	offline := func(msg string, err error) bool {
		loaded = false
		if msg == lastErr {
			return true
		}

		lastErr = msg
		log.Debug("image unavailable", "path", cfg.Path, "err", err)
		return send(ui.Update{Online: false, Name: name, Error: msg})
	}

	load := func() bool {
		fi, err := os.Stat(cfg.Path)
		if err != nil {
			return offline("file not found", err)
		}
		if loaded && fi.Size() == size && fi.ModTime().Equal(modTime) {
			return true
		}

		data, err := os.ReadFile(cfg.Path)
		if err != nil {
			return offline("cannot read file", err)
		}

		loaded, size, modTime, lastErr = true, fi.Size(), fi.ModTime(), ""
		log.Debug("image loaded", "path", cfg.Path, "size", len(data))
		return send(ui.Update{Online: true, Name: name, Data: data})
	}

	if !load() {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if !load() {
				return
			}
		}
	}
}
