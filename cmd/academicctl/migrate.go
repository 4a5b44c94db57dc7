package main

import (
	"github.com/spf13/cobra"

	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/helpers/logger"
)

func init() {
	rootCmd.AddCommand(newMigrateCmd())
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Jalankan AutoMigrate untuk semua tabel akademik",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(logger.L())
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			printInfo("✅ migrate selesai (%d tabel)\n", len(database.Models()))
			return nil
		},
	}
}
