package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ferrylab/tagmind/internal/client"
	"github.com/ferrylab/tagmind/internal/events"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream applied scans as they happen",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		fmt.Fprintln(os.Stderr, "Watching for scans (Ctrl-C to stop)...")

		err := apiClient.WatchEvents(ctx, func(ev client.StreamEvent) {
			if jsonOutput {
				fmt.Println(string(ev.Data))
				return
			}
			var applied events.ScanApplied
			if json.Unmarshal(ev.Data, &applied) != nil {
				return
			}
			line := fmt.Sprintf("%s  tag=%s  updated=%s",
				applied.At.Format(time.TimeOnly),
				applied.TagID,
				strings.Join(applied.Reminders, ","),
			)
			if applied.ScannedBy != "" {
				line += "  by=" + applied.ScannedBy
			}
			fmt.Println(line)
		})
		if err != nil && ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return nil
	},
}
