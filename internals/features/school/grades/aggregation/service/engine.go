// file: internals/features/school/grades/aggregation/service/engine.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	studentModel "schoolku_backend/internals/features/lembaga/teachers_students/model"
	studentSvc "schoolku_backend/internals/features/lembaga/teachers_students/service"
	subjectSvc "schoolku_backend/internals/features/school/academics/subjects/service"
	finalModel "schoolku_backend/internals/features/school/grades/final_grades/model"
	finalSvc "schoolku_backend/internals/features/school/grades/final_grades/service"
	compModel "schoolku_backend/internals/features/school/grades/grade_components/model"
	compSvc "schoolku_backend/internals/features/school/grades/grade_components/service"
	structModel "schoolku_backend/internals/features/school/grades/grade_structures/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/logger"
)

// Engine menghitung nilai akhir: round((rata2 formatif + PTS + PAS) / 3, 2).
type Engine struct {
	db     *gorm.DB
	log    *zap.Logger
	tracer trace.Tracer
	now    func() time.Time
}

func NewEngine(db *gorm.DB, log *zap.Logger) *Engine {
	return &Engine{
		db:     db,
		log:    logger.OrNop(log).Named("grade_aggregation"),
		tracer: otel.Tracer("schoolku_backend/grade_aggregation"),
		now:    time.Now,
	}
}

func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// ComputedNote: penanda nilai hasil hitung sistem.
func ComputedNote(structureID uuid.UUID) string {
	return "system:computed structure=" + structureID.String()
}

// ComputeFinal menghitung ulang nilai akhir seluruh siswa kelas untuk satu struktur.
// Guard dicek sebelum transaksi; error persistensi me-rollback seluruh run.
func (e *Engine) ComputeFinal(ctx context.Context, classID, structureID uuid.UUID) (*ComputeResult, error) {
	ctx, span := e.tracer.Start(ctx, "GradeAggregation.ComputeFinal",
		trace.WithAttributes(
			attribute.String("class_id", classID.String()),
			attribute.String("structure_id", structureID.String()),
		))
	defer span.End()

	out, err := e.computeFinal(ctx, classID, structureID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.log.Warn("❌ hitung nilai akhir gagal", zap.Error(err),
			zap.String("class_id", classID.String()), zap.String("structure_id", structureID.String()))
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("success", len(out.Success)),
		attribute.Int("skipped_incomplete", len(out.SkippedIncomplete)),
		attribute.Int("failed", len(out.Failed)),
	)
	e.log.Info("✅ nilai akhir dihitung",
		zap.String("structure_id", structureID.String()),
		zap.Int("success", len(out.Success)),
		zap.Int("skipped_incomplete", len(out.SkippedIncomplete)),
		zap.Int("failed", len(out.Failed)),
	)
	return out, nil
}

func (e *Engine) computeFinal(ctx context.Context, classID, structureID uuid.UUID) (*ComputeResult, error) {
	/* ===== Guard ===== */
	var st structModel.GradeStructureModel
	err := e.db.WithContext(ctx).Where("grade_structure_id = ?", structureID).Take(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &helper.PreconditionError{Message: "Struktur nilai tidak ditemukan"}
	}
	if err != nil {
		return nil, errors.Wrap(err, "ambil struktur nilai")
	}
	if st.GradeStructureClassID != classID {
		return nil, &helper.PreconditionError{Message: "Struktur nilai bukan milik kelas ini"}
	}
	offered, err := subjectSvc.IsActiveOffering(ctx, e.db, classID, st.GradeStructureSubjectID)
	if err != nil {
		return nil, err
	}
	if !offered {
		return nil, &helper.PreconditionError{Message: "Mapel sudah tidak diajarkan di kelas ini"}
	}

	schema := st.Schema()
	now := e.now()
	out := &ComputeResult{
		StructureID:       st.GradeStructureID,
		ClassID:           classID,
		SubjectID:         st.GradeStructureSubjectID,
		TermID:            st.GradeStructureTermID,
		AcademicYearID:    st.GradeStructureAcademicYearID,
		ComputedAt:        now,
		Success:           []StudentResult{},
		SkippedIncomplete: []StudentResult{},
		Failed:            []StudentResult{},
	}
	note := ComputedNote(st.GradeStructureID)

	/* ===== Transaksi ===== */
	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roster, err := studentSvc.Roster(ctx, tx, classID, st.GradeStructureAcademicYearID)
		if err != nil {
			return err
		}

		for i := range roster {
			s := &roster[i]
			comps, err := compSvc.ListForStudent(ctx, tx, s.StudentID, st.GradeStructureID)
			if err != nil {
				return err
			}

			r := evaluate(schema, s, comps)
			switch {
			case len(r.InvalidKeys) > 0:
				out.Failed = append(out.Failed, r)
				continue
			case r.Reason != "":
				out.SkippedIncomplete = append(out.SkippedIncomplete, r)
				continue
			}

			k := finalSvc.Key{
				StudentID:      s.StudentID,
				SubjectID:      st.GradeStructureSubjectID,
				TermID:         st.GradeStructureTermID,
				AcademicYearID: st.GradeStructureAcademicYearID,
			}
			prev, err := finalSvc.Get(ctx, tx, k)
			if err != nil {
				return err
			}
			if prev != nil && prev.FinalGradeSource == finalModel.SourceManual {
				r.OverrodeManual = true
			}
			if err := finalSvc.UpsertComputed(ctx, tx, k, classID, *r.FinalGrade, note, now); err != nil {
				return err
			}
			out.Success = append(out.Success, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type slot struct{ scope, key string }

// evaluate: Reason kosong & InvalidKeys kosong → sukses, FinalGrade terisi.
func evaluate(schema structModel.GradeSchema, s *studentModel.StudentModel, comps []compModel.GradeComponentModel) StudentResult {
	r := StudentResult{StudentID: s.StudentID, StudentName: s.StudentName}

	values := make(map[slot]float64, len(comps))
	for _, c := range comps {
		if !compModel.InRange(c.GradeComponentValue) {
			r.InvalidKeys = append(r.InvalidKeys, slotName(c.GradeComponentScopeKey, c.GradeComponentKey))
			continue
		}
		values[slot{c.GradeComponentScopeKey, c.GradeComponentKey}] = c.GradeComponentValue
	}
	if len(r.InvalidKeys) > 0 {
		r.Reason = ReasonValueOutOfRange
		return r
	}

	var formatives []float64
	for _, sc := range schema.Scopes {
		var missing []string
		for _, c := range sc.Components {
			if v, ok := values[slot{sc.ScopeKey, c.Key}]; ok {
				formatives = append(formatives, v)
			} else {
				missing = append(missing, c.Label)
			}
		}
		switch {
		case len(missing) == len(sc.Components):
			r.EmptyScopes = append(r.EmptyScopes, sc.ScopeLabel)
		case len(missing) > 0:
			r.PartialScopes = append(r.PartialScopes, ScopeGap{
				ScopeKey:      sc.ScopeKey,
				ScopeLabel:    sc.ScopeLabel,
				MissingLabels: missing,
			})
		}
	}

	mid, hasMid := lookupSingleton(values, schema.Midterm)
	fin, hasFin := lookupSingleton(values, schema.Final)
	if !hasMid && schema.Midterm != nil {
		r.Missing = append(r.Missing, schema.Midterm.Label)
	}
	if !hasFin && schema.Final != nil {
		r.Missing = append(r.Missing, schema.Final.Label)
	}
	if !hasMid || !hasFin {
		r.Reason = ReasonMissingRequired
		return r
	}
	r.Midterm, r.Final = &mid, &fin

	if len(formatives) == 0 {
		r.Reason = ReasonNoFormative
		return r
	}

	avg := mean(formatives)
	final := compModel.Round2((avg + mid + fin) / 3)
	avgR := compModel.Round2(avg)
	r.FormativeAverage = &avgR
	r.FinalGrade = &final
	return r
}

func lookupSingleton(values map[slot]float64, def *structModel.ComponentDef) (float64, bool) {
	if def == nil {
		return 0, false
	}
	v, ok := values[slot{"", def.Key}]
	return v, ok
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func slotName(scope, key string) string {
	if scope == "" {
		return key
	}
	return fmt.Sprintf("%s.%s", scope, key)
}
