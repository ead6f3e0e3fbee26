package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ferrylab/tagmind/internal/config"
	"github.com/ferrylab/tagmind/internal/registry"
	"github.com/ferrylab/tagmind/internal/snapshot"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSONL snapshot of all scan records to stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		reg, err := registry.Load(cfg.RemindersFile)
		if err != nil {
			return err
		}
		store, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		defer store.Close()

		return snapshot.ExportJSONL(context.Background(), reg, store, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
