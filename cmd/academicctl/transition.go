package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	termSvc "schoolku_backend/internals/features/school/academics/academic_terms/service"
	transitionSvc "schoolku_backend/internals/features/school/academics/year_transitions/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/locker"
	"schoolku_backend/internals/helpers/logger"
)

type transitionOpts struct {
	label        string
	repeat       []string
	repeatFile   string
	copyHomeroom bool
	dryRun       bool
	fromYear     string
}

func init() {
	rootCmd.AddCommand(newTransitionCmd())
}

func newTransitionCmd() *cobra.Command {
	var o transitionOpts
	cmd := &cobra.Command{
		Use:   "transition",
		Short: "Kenaikan kelas ke tahun ajaran berikutnya",
		Long: `Menaikkan seluruh siswa aktif ke tahun ajaran berikutnya.

Contoh:
  academicctl transition --dry-run
  academicctl transition --label 2026/2027 --repeat-file tinggal_kelas.yaml --copy-homeroom

Format --repeat-file (salah satu):
  repeat_student_ids:
    - 3f0c...
  # atau list biasa
  - 3f0c...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransition(cmd.Context(), o)
		},
	}
	cmd.Flags().StringVar(&o.label, "label", "", "Label tahun ajaran tujuan, mis. 2026/2027 (default: otomatis)")
	cmd.Flags().StringSliceVar(&o.repeat, "repeat", nil, "ID siswa yang tinggal kelas (boleh diulang / dipisah koma)")
	cmd.Flags().StringVar(&o.repeatFile, "repeat-file", "", "File YAML berisi ID siswa yang tinggal kelas")
	cmd.Flags().BoolVar(&o.copyHomeroom, "copy-homeroom", false, "Salin wali kelas ke tahun ajaran baru")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "Preview saja, tidak ada yang disimpan")
	cmd.Flags().StringVar(&o.fromYear, "from-year", "", "ID tahun ajaran asal (default: tahun aktif)")
	return cmd
}

type repeatFile struct {
	RepeatStudentIDs []string `yaml:"repeat_student_ids"`
}

// parseRepeatYAML menerima map {repeat_student_ids: [...]} atau list biasa.
func parseRepeatYAML(b []byte) ([]uuid.UUID, error) {
	var raw []string
	var doc repeatFile
	if err := yaml.Unmarshal(b, &doc); err == nil && doc.RepeatStudentIDs != nil {
		raw = doc.RepeatStudentIDs
	} else if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("format repeat file tidak dikenali: %w", err)
	}
	return parseIDs(raw)
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("id siswa tidak valid %q", s)
		}
		out = append(out, id)
	}
	return out, nil
}

func (o transitionOpts) request() (transitionSvc.Request, error) {
	ids, err := parseIDs(o.repeat)
	if err != nil {
		return transitionSvc.Request{}, err
	}
	if o.repeatFile != "" {
		b, err := os.ReadFile(o.repeatFile)
		if err != nil {
			return transitionSvc.Request{}, err
		}
		fromFile, err := parseRepeatYAML(b)
		if err != nil {
			return transitionSvc.Request{}, err
		}
		ids = append(ids, fromFile...)
	}
	return transitionSvc.Request{
		NewYearLabel:     strings.TrimSpace(o.label),
		RepeatStudentIDs: ids,
		CopyHomeroom:     o.copyHomeroom,
		DryRun:           o.dryRun,
	}, nil
}

func resolveContext(ctx context.Context, db *gorm.DB, fromYear string) (termSvc.AcademicContext, error) {
	if fromYear != "" {
		id, err := uuid.Parse(strings.TrimSpace(fromYear))
		if err != nil {
			return termSvc.AcademicContext{}, fmt.Errorf("--from-year tidak valid")
		}
		return termSvc.ContextForYear(ctx, db, id)
	}
	ac, err := termSvc.ResolveActiveContext(ctx, db)
	var pe *helper.PreconditionError
	if errors.As(err, &pe) {
		return termSvc.AcademicContext{}, nil
	}
	return ac, err
}

func runTransition(ctx context.Context, o transitionOpts) error {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := o.request()
	if err != nil {
		return err
	}
	db, err := openDB(logger.L())
	if err != nil {
		return err
	}
	ac, err := resolveContext(ctx, db, o.fromYear)
	if err != nil {
		return err
	}

	release, err := newLocker().Acquire(ctx, locker.ScopeYearTransition, locker.DefaultTTL)
	if err != nil {
		return fmt.Errorf("kenaikan kelas lain sedang berjalan: %w", err)
	}
	defer func() { _ = release(ctx) }()

	res, err := transitionSvc.NewEngine(db, logger.L()).Transition(ctx, ac, req)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(res)
	}

	mode := "COMMIT"
	if res.DryRun {
		mode = "DRY RUN"
	}
	s := res.Summary
	printInfo("🎓 [%s] %s → %s\n", mode, orDash(ac.YearLabel), res.TargetYear.Label)
	printInfo("   naik: %d, tinggal: %d, lulus: %d, tanpa kelas: %d, wali disalin: %d\n",
		s.Promoted, s.Repeated, s.Graduated, s.NoClassAssignedSkipped, s.CopiedWaliCount)
	if res.PreviewTruncated {
		printInfo("   (preview dipotong di %d baris, angka ringkasan di atas tetap mencakup semua siswa)\n", transitionSvc.PreviewCap)
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
