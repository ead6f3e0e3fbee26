package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan <tag-id>",
	Short: "Submit a tag scan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		by, _ := cmd.Flags().GetString("by")

		result, err := apiClient.Scan(context.Background(), args[0], by)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(result)
			return nil
		}
		if len(result.Reminders) == 0 {
			fmt.Printf("Tag %s matched no reminders\n", result.TagID)
			return nil
		}
		fmt.Printf("Updated: %s\n", strings.Join(result.Reminders, ", "))
		return nil
	},
}

func init() {
	scanCmd.Flags().String("by", "", "who performed the scan")
}
