package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ferrylab/tagmind/internal/registry"
)

var checkCmd = &cobra.Command{
	Use:   "check <reminders.toml>",
	Short: "Validate a reminders file without starting the daemon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: OK (%d reminders)\n", args[0], reg.Len())
		for _, rem := range reg.Reminders() {
			fmt.Printf("  %-30s tag=%s every %d %s\n", rem.Key(), rem.Tag, rem.Interval, rem.Unit)
		}
		return nil
	},
}
