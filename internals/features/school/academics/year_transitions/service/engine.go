// file: internals/features/school/academics/year_transitions/service/engine.go
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	studentSvc "schoolku_backend/internals/features/lembaga/teachers_students/service"
	termSvc "schoolku_backend/internals/features/school/academics/academic_terms/service"
	histModel "schoolku_backend/internals/features/school/classes/class_histories/model"
	histSvc "schoolku_backend/internals/features/school/classes/class_histories/service"
	classSvc "schoolku_backend/internals/features/school/classes/classes/service"
	homeroomModel "schoolku_backend/internals/features/school/classes/homerooms/model"
	homeroomSvc "schoolku_backend/internals/features/school/classes/homerooms/service"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/logger"
)

// PreviewCap: batas baris preview yang dikembalikan ke operator.
const PreviewCap = 500

const maxLabelLen = 20

// errDryRun memaksa rollback transaksi dry run; tidak pernah keluar dari engine.
var errDryRun = errors.New("year transition: dry run rollback")

type Request struct {
	NewYearLabel     string
	RepeatStudentIDs []uuid.UUID
	CopyHomeroom     bool
	DryRun           bool
}

// Engine menjalankan kenaikan kelas dalam satu transaksi.
type Engine struct {
	db     *gorm.DB
	log    *zap.Logger
	tracer trace.Tracer
	now    func() time.Time
}

func NewEngine(db *gorm.DB, log *zap.Logger) *Engine {
	return &Engine{
		db:     db,
		log:    logger.OrNop(log).Named("year_transition"),
		tracer: otel.Tracer("schoolku_backend/year_transitions"),
		now:    time.Now,
	}
}

// WithClock mengganti sumber waktu (derivasi label tahun).
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Transition: keputusan naik/tinggal/lulus untuk semua siswa active non-alumni.
// Dry run menjalankan jalur yang sama lalu selalu di-rollback.
func (e *Engine) Transition(ctx context.Context, ac termSvc.AcademicContext, req Request) (*Result, error) {
	ctx, span := e.tracer.Start(ctx, "YearTransition.Transition",
		trace.WithAttributes(
			attribute.Bool("dry_run", req.DryRun),
			attribute.Bool("copy_homeroom", req.CopyHomeroom),
			attribute.Int("repeat_count", len(req.RepeatStudentIDs)),
		))
	defer span.End()

	out, err := e.transition(ctx, ac, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.log.Warn("❌ kenaikan kelas gagal", zap.Error(err), zap.Bool("dry_run", req.DryRun))
		return nil, err
	}

	span.SetAttributes(
		attribute.String("target_year", out.TargetYear.Label),
		attribute.Int("promoted", out.Summary.Promoted),
		attribute.Int("repeated", out.Summary.Repeated),
		attribute.Int("graduated", out.Summary.Graduated),
		attribute.Int("no_class_assigned_skipped", out.Summary.NoClassAssignedSkipped),
		attribute.Int("copied_wali_count", out.Summary.CopiedWaliCount),
	)
	e.log.Info("✅ kenaikan kelas selesai",
		zap.Bool("dry_run", out.DryRun),
		zap.String("target_year", out.TargetYear.Label),
		zap.Bool("target_created", out.TargetYear.Created),
		zap.Int("promoted", out.Summary.Promoted),
		zap.Int("repeated", out.Summary.Repeated),
		zap.Int("graduated", out.Summary.Graduated),
		zap.Int("no_class_assigned_skipped", out.Summary.NoClassAssignedSkipped),
		zap.Int("copied_wali_count", out.Summary.CopiedWaliCount),
	)
	return out, nil
}

func (e *Engine) transition(ctx context.Context, ac termSvc.AcademicContext, req Request) (*Result, error) {
	/* ===== Validasi (sebelum transaksi) ===== */
	outgoing, err := e.outgoingYear(ctx, ac)
	if err != nil {
		return nil, err
	}

	label := strings.TrimSpace(req.NewYearLabel)
	if label == "" {
		prev := ""
		if outgoing != nil {
			prev = outgoing.YearLabel
		}
		label = termSvc.NextYearLabel(prev, e.now())
	}
	if len(label) > maxLabelLen {
		return nil, helper.NewValidationError().Add("new_year_label", "maksimal 20 karakter")
	}
	if outgoing != nil && label == outgoing.YearLabel {
		return nil, helper.NewValidationError().Add("new_year_label", "tahun ajaran baru sama dengan tahun ajaran berjalan")
	}

	repeat := make(map[uuid.UUID]struct{}, len(req.RepeatStudentIDs))
	for _, id := range req.RepeatStudentIDs {
		repeat[id] = struct{}{}
	}

	/* ===== Transaksi ===== */
	var out *Result
	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := e.run(ctx, tx, outgoing, label, repeat, req.CopyHomeroom)
		if err != nil {
			return err
		}
		r.DryRun = req.DryRun
		out = r
		if req.DryRun {
			return errDryRun
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDryRun) {
		return nil, err
	}
	return out, nil
}

// outgoingYear: nil kalau belum ada tahun berjalan (transisi pertama).
func (e *Engine) outgoingYear(ctx context.Context, ac termSvc.AcademicContext) (*termSvc.AcademicContext, error) {
	if ac.IsZero() {
		return nil, nil
	}
	if ac.YearLabel != "" {
		return &ac, nil
	}
	y, err := termSvc.GetYear(ctx, e.db, ac.YearID)
	if err != nil {
		return nil, err
	}
	if y == nil {
		return nil, helper.NewValidationError().Add("from_academic_year_id", "tahun ajaran tidak ditemukan")
	}
	ac.YearLabel = y.AcademicYearLabel
	return &ac, nil
}

func (e *Engine) run(
	ctx context.Context,
	tx *gorm.DB,
	outgoing *termSvc.AcademicContext,
	label string,
	repeat map[uuid.UUID]struct{},
	copyHomeroom bool,
) (*Result, error) {
	out := &Result{
		Preview:         []PreviewRow{},
		HomeroomPreview: []HomeroomPreviewRow{},
	}

	/* 1) Tahun target: pakai ulang by label atau buat baru + 2 semester */
	target, err := termSvc.FindYearByLabel(ctx, tx, label)
	if err != nil {
		return nil, err
	}
	if target == nil {
		if target, err = termSvc.CreateYearWithTerms(ctx, tx, label); err != nil {
			return nil, err
		}
		out.TargetYear.Created = true
	}
	out.TargetYear.ID = target.AcademicYearID
	out.TargetYear.Label = target.AcademicYearLabel
	if outgoing != nil {
		if target.AcademicYearID == outgoing.YearID {
			return nil, helper.NewValidationError().Add("new_year_label", "tahun ajaran baru sama dengan tahun ajaran berjalan")
		}
		id := outgoing.YearID
		out.OutgoingYearID = &id
	}

	if err := termSvc.ActivateYear(ctx, tx, target.AcademicYearID); err != nil {
		return nil, err
	}

	/* 2) Siswa active non-alumni, urut id */
	students, err := studentSvc.ListForTransition(ctx, tx, target.AcademicYearID)
	if err != nil {
		return nil, err
	}
	// run ulang: keputusan dihitung dari posisi sebelum run pertama, bukan pointer yang sudah digeser
	prior, err := histSvc.MapByYear(ctx, tx, target.AcademicYearID)
	if err != nil {
		return nil, err
	}

	dir := classSvc.NewDirectory()
	for i := range students {
		st := &students[i]
		if h, ok := prior[st.StudentID]; ok {
			st.StudentCurrentClassID = h.ClassHistoryFromClassID
			st.StudentIsAlumnus = false
		}
		_, isRepeat := repeat[st.StudentID]

		d, err := decide(ctx, tx, dir, st, isRepeat)
		if err != nil {
			return nil, err
		}

		row := &histModel.ClassHistoryModel{
			ClassHistoryStudentID:      st.StudentID,
			ClassHistoryAcademicYearID: target.AcademicYearID,
			ClassHistoryClassID:        d.toID(),
			ClassHistoryFromClassID:    st.StudentCurrentClassID,
			ClassHistoryAction:         d.action,
		}
		if err := histSvc.Upsert(ctx, tx, row); err != nil {
			return nil, err
		}
		if err := studentSvc.SetPlacement(ctx, tx, st.StudentID, d.toID(), d.alumnus); err != nil {
			return nil, err
		}

		out.Summary.count(d.action)
		if len(out.Preview) < PreviewCap {
			out.Preview = append(out.Preview, d.preview(st))
		} else {
			out.PreviewTruncated = true
		}
	}

	/* 3) Salin wali kelas ke tahun target */
	if copyHomeroom && outgoing != nil {
		if err := e.copyHomerooms(ctx, tx, outgoing.YearID, target.AcademicYearID, out); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (e *Engine) copyHomerooms(ctx context.Context, tx *gorm.DB, fromYear, toYear uuid.UUID, out *Result) error {
	rows, err := homeroomSvc.ListByYear(ctx, tx, fromYear)
	if err != nil {
		return err
	}
	classIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		classIDs = append(classIDs, r.HomeroomClassID)
	}
	active, err := classSvc.ActiveIDs(ctx, tx, classIDs)
	if err != nil {
		return err
	}

	for _, r := range rows {
		p := HomeroomPreviewRow{
			TeacherID: r.HomeroomTeacherID,
			ClassID:   r.HomeroomClassID,
			IsPrimary: r.HomeroomIsPrimary,
		}
		switch {
		case !active[r.HomeroomClassID]:
			p.Status = HomeroomSkippedClassInactive
		default:
			inserted, err := homeroomSvc.InsertIfAbsent(ctx, tx, &homeroomModel.HomeroomModel{
				HomeroomTeacherID:      r.HomeroomTeacherID,
				HomeroomClassID:        r.HomeroomClassID,
				HomeroomAcademicYearID: toYear,
				HomeroomIsPrimary:      r.HomeroomIsPrimary,
				HomeroomSource:         homeroomModel.SourceCopied,
			})
			if err != nil {
				return err
			}
			if inserted {
				p.Status = HomeroomCopied
				out.Summary.CopiedWaliCount++
			} else {
				p.Status = HomeroomAlreadyExists
			}
		}
		if len(out.HomeroomPreview) < PreviewCap {
			out.HomeroomPreview = append(out.HomeroomPreview, p)
		}
	}
	return nil
}
