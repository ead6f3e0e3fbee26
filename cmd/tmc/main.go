// Command tmc is the CLI client for a tagmindd server.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ferrylab/tagmind/internal/client"
	"github.com/ferrylab/tagmind/internal/ui"
)

var (
	serverURL  string
	authToken  string
	jsonOutput bool

	apiClient *client.HTTPClient
)

func defaultServerURL() string {
	if s := os.Getenv("TAGMIND_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

var rootCmd = &cobra.Command{
	Use:   "tmc <command>",
	Short: "CLI client for the tagmind reminder service",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !ui.ShouldUseColor() {
			ui.ForceNoColor()
		}
		apiClient = client.NewHTTPClient(serverURL, authToken)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServerURL(), "server base URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("TAGMIND_AUTH_TOKEN"), "bearer token for the server")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
