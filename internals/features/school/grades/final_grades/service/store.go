// file: internals/features/school/grades/final_grades/service/store.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	studentSvc "schoolku_backend/internals/features/lembaga/teachers_students/service"
	termSvc "schoolku_backend/internals/features/school/academics/academic_terms/service"
	subjectSvc "schoolku_backend/internals/features/school/academics/subjects/service"
	compModel "schoolku_backend/internals/features/school/grades/grade_components/model"
	finalModel "schoolku_backend/internals/features/school/grades/final_grades/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/logger"
)

var upsertColumns = []clause.Column{
	{Name: "final_grade_student_id"},
	{Name: "final_grade_subject_id"},
	{Name: "final_grade_term_id"},
	{Name: "final_grade_academic_year_id"},
}

// Key: identitas unik nilai akhir.
type Key struct {
	StudentID      uuid.UUID
	SubjectID      uuid.UUID
	TermID         uuid.UUID
	AcademicYearID uuid.UUID
}

// Get: nil, nil kalau belum ada.
func Get(ctx context.Context, tx *gorm.DB, k Key) (*finalModel.FinalGradeModel, error) {
	var m finalModel.FinalGradeModel
	err := tx.WithContext(ctx).
		Where("final_grade_student_id = ? AND final_grade_subject_id = ?", k.StudentID, k.SubjectID).
		Where("final_grade_term_id = ? AND final_grade_academic_year_id = ?", k.TermID, k.AcademicYearID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "ambil nilai akhir")
	}
	return &m, nil
}

// UpsertComputed: tulis hasil engine (source=computed). Menimpa entri manual.
func UpsertComputed(ctx context.Context, tx *gorm.DB, k Key, classID uuid.UUID, value float64, note string, at time.Time) error {
	row := &finalModel.FinalGradeModel{
		FinalGradeStudentID:      k.StudentID,
		FinalGradeSubjectID:      k.SubjectID,
		FinalGradeTermID:         k.TermID,
		FinalGradeAcademicYearID: k.AcademicYearID,
		FinalGradeClassID:        &classID,
		FinalGradeValue:          &value,
		FinalGradeNote:           &note,
		FinalGradeSource:         finalModel.SourceComputed,
		FinalGradeComputedAt:     &at,
		FinalGradeUpdatedAt:      at,
	}
	err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: upsertColumns,
		DoUpdates: clause.AssignmentColumns([]string{
			"final_grade_class_id",
			"final_grade_value",
			"final_grade_note",
			"final_grade_source",
			"final_grade_computed_at",
			"final_grade_updated_at",
		}),
	}).Create(row).Error
	return errors.Wrap(err, "upsert nilai akhir (computed)")
}

/* =========================================================
   Manual
========================================================= */

type ManualInput struct {
	StudentID uuid.UUID
	SubjectID uuid.UUID
	TermID    uuid.UUID
	ClassID   *uuid.UUID
	Value     *float64 // nil = sengaja tanpa nilai
	Note      *string
}

// Store: entri nilai akhir manual oleh guru.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: logger.OrNop(log).Named("final_grades")}
}

// UpsertManual: source=manual, computed_at dikosongkan.
func (s *Store) UpsertManual(ctx context.Context, in ManualInput) (*finalModel.FinalGradeModel, error) {
	ve := helper.NewValidationError()
	var value *float64
	if in.Value != nil {
		if !compModel.InRange(*in.Value) {
			ve.Add("value", "harus di antara 0 dan 100")
		}
		v := compModel.Round2(*in.Value)
		value = &v
	}

	ok, err := studentSvc.Exists(ctx, s.db, in.StudentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		ve.Add("student_id", "siswa tidak ditemukan")
	}
	subj, err := subjectSvc.GetSubject(ctx, s.db, in.SubjectID)
	if err != nil {
		return nil, err
	}
	if subj == nil {
		ve.Add("subject_id", "mapel tidak ditemukan")
	}
	term, err := termSvc.GetTerm(ctx, s.db, in.TermID)
	if err != nil {
		return nil, err
	}
	if term == nil {
		ve.Add("term_id", "semester tidak ditemukan")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	k := Key{
		StudentID:      in.StudentID,
		SubjectID:      in.SubjectID,
		TermID:         in.TermID,
		AcademicYearID: term.AcademicTermAcademicYearID,
	}
	row := &finalModel.FinalGradeModel{
		FinalGradeStudentID:      k.StudentID,
		FinalGradeSubjectID:      k.SubjectID,
		FinalGradeTermID:         k.TermID,
		FinalGradeAcademicYearID: k.AcademicYearID,
		FinalGradeClassID:        in.ClassID,
		FinalGradeValue:          value,
		FinalGradeNote:           in.Note,
		FinalGradeSource:         finalModel.SourceManual,
		FinalGradeUpdatedAt:      time.Now(),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: upsertColumns,
		DoUpdates: clause.AssignmentColumns([]string{
			"final_grade_class_id",
			"final_grade_value",
			"final_grade_note",
			"final_grade_source",
			"final_grade_computed_at",
			"final_grade_updated_at",
		}),
	}).Create(row).Error
	if err != nil {
		return nil, errors.Wrap(err, "upsert nilai akhir (manual)")
	}

	s.log.Info("✍️ nilai akhir manual",
		zap.String("student_id", in.StudentID.String()),
		zap.String("subject_id", in.SubjectID.String()),
		zap.Bool("has_value", in.Value != nil),
	)
	return Get(ctx, s.db, k)
}

/* =========================================================
   List
========================================================= */

type ListFilter struct {
	ClassID   *uuid.UUID
	SubjectID *uuid.UUID
	TermID    *uuid.UUID
	StudentID *uuid.UUID
	Offset    int
	Limit     int
}

func List(ctx context.Context, db *gorm.DB, f ListFilter) ([]finalModel.FinalGradeModel, int64, error) {
	q := db.WithContext(ctx).Model(&finalModel.FinalGradeModel{})
	if f.ClassID != nil {
		q = q.Where("final_grade_class_id = ?", *f.ClassID)
	}
	if f.SubjectID != nil {
		q = q.Where("final_grade_subject_id = ?", *f.SubjectID)
	}
	if f.TermID != nil {
		q = q.Where("final_grade_term_id = ?", *f.TermID)
	}
	if f.StudentID != nil {
		q = q.Where("final_grade_student_id = ?", *f.StudentID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "hitung nilai akhir")
	}
	var rows []finalModel.FinalGradeModel
	if err := q.Order("final_grade_student_id ASC, final_grade_subject_id ASC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list nilai akhir")
	}
	return rows, total, nil
}
