package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	aggSvc "schoolku_backend/internals/features/school/grades/aggregation/service"
	"schoolku_backend/internals/helpers/locker"
	"schoolku_backend/internals/helpers/logger"
)

func init() {
	grades := &cobra.Command{
		Use:   "grades",
		Short: "Operasi nilai",
	}
	grades.AddCommand(newComputeCmd())
	rootCmd.AddCommand(grades)
}

func newComputeCmd() *cobra.Command {
	var classID, structureID string
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Hitung ulang nilai akhir satu kelas untuk satu struktur nilai",
		Long: `Contoh:
  academicctl grades compute --class <class_id> --structure <grade_structure_id>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(cmd.Context(), classID, structureID)
		},
	}
	cmd.Flags().StringVar(&classID, "class", "", "ID kelas (wajib)")
	cmd.Flags().StringVar(&structureID, "structure", "", "ID struktur nilai (wajib)")
	_ = cmd.MarkFlagRequired("class")
	_ = cmd.MarkFlagRequired("structure")
	return cmd
}

func runCompute(ctx context.Context, classRaw, structureRaw string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	classID, err := uuid.Parse(strings.TrimSpace(classRaw))
	if err != nil {
		return fmt.Errorf("--class tidak valid")
	}
	structureID, err := uuid.Parse(strings.TrimSpace(structureRaw))
	if err != nil {
		return fmt.Errorf("--structure tidak valid")
	}

	db, err := openDB(logger.L())
	if err != nil {
		return err
	}
	release, err := newLocker().Acquire(ctx, locker.ScopeGradeAggregation(classID, structureID), locker.DefaultTTL)
	if err != nil {
		return fmt.Errorf("perhitungan kelas ini sedang berjalan: %w", err)
	}
	defer func() { _ = release(ctx) }()

	res, err := aggSvc.NewEngine(db, logger.L()).ComputeFinal(ctx, classID, structureID)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(res)
	}

	printInfo("📊 nilai akhir: %d berhasil, %d belum lengkap, %d gagal\n",
		len(res.Success), len(res.SkippedIncomplete), len(res.Failed))
	for _, s := range res.SkippedIncomplete {
		printInfo("   - %s: %s %s\n", s.StudentName, s.Reason, strings.Join(s.Missing, ", "))
	}
	for _, s := range res.Failed {
		printInfo("   ✗ %s: %s %s\n", s.StudentName, s.Reason, strings.Join(s.InvalidKeys, ", "))
	}
	return nil
}
