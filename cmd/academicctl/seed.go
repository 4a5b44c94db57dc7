package main

import (
	"github.com/spf13/cobra"

	database "schoolku_backend/internals/databases"
	"schoolku_backend/internals/helpers/logger"
	seedAcademics "schoolku_backend/internals/seeds/academics"
)

func init() {
	rootCmd.AddCommand(newSeedCmd())
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Isi data awal (tahun ajaran, kelas, mapel, siswa) dari file YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(logger.L())
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			st, err := seedAcademics.SeedFromYAMLFile(cmd.Context(), db, file, logger.L())
			if err != nil {
				return err
			}
			printInfo("🌱 kelas: %d, mapel: %d, penawaran: %d, siswa: %d\n", st.Classes, st.Subjects, st.Offerings, st.Students)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "internals/seeds/academics/data_academics.yaml", "Path file seed YAML")
	return cmd
}
