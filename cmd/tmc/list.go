package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders with their current status",
	RunE: func(cmd *cobra.Command, args []string) error {
		rems, err := apiClient.ListReminders(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(rems)
		} else {
			printReminderTable(rems)
		}
		return nil
	},
}
