package main

import (
	"context"

	"github.com/AakashShahi/workday/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db and install the category catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			zap.S().Fatalw("reading configuration", "error", err)
		}

		undo := initLogger(cfg)
		defer undo()

		zap.S().Info("Starting db migration")
		defer zap.S().Info("Db migrated")

		s, err := openStore(context.Background(), cfg)
		if err != nil {
			return err
		}
		return s.Close()
	},
}
