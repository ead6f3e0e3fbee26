// Command tagmindd is the tag-scan reminder daemon. It loads the reminder
// registry, opens a scan record store, and serves reminder status over HTTP
// while ingesting scans from the HTTP API and, optionally, a NATS bus.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tagmindd",
	Short: "Tag-scan reminder tracking daemon",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
