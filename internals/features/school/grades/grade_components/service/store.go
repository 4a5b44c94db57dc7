// file: internals/features/school/grades/grade_components/service/store.go
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	studentSvc "schoolku_backend/internals/features/lembaga/teachers_students/service"
	compModel "schoolku_backend/internals/features/school/grades/grade_components/model"
	structModel "schoolku_backend/internals/features/school/grades/grade_structures/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/logger"
)

// Store: input nilai mentah. Upsert murni, tanpa cek kelengkapan.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStore(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: logger.OrNop(log).Named("grade_components")}
}

type RecordInput struct {
	StudentID    uuid.UUID
	StructureID  uuid.UUID
	ScopeKey     *string // nil untuk midterm/final
	ComponentKey string
	Value        float64
}

// Record: satu nilai per (siswa, struktur, scope, komponen); nilai terakhir menang.
func (s *Store) Record(ctx context.Context, in RecordInput) (*compModel.GradeComponentModel, error) {
	scope := ""
	if in.ScopeKey != nil {
		scope = strings.TrimSpace(*in.ScopeKey)
	}
	key := strings.TrimSpace(in.ComponentKey)

	ve := helper.NewValidationError()
	if !compModel.InRange(in.Value) {
		ve.Add("value", "harus di antara 0 dan 100")
	}
	if key == "" {
		ve.Add("component_key", "wajib diisi")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	var st structModel.GradeStructureModel
	err := s.db.WithContext(ctx).Where("grade_structure_id = ?", in.StructureID).Take(&st).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &helper.NotFoundError{Message: "Struktur nilai tidak ditemukan"}
	}
	if err != nil {
		return nil, errors.Wrap(err, "ambil struktur nilai")
	}

	if !st.Schema().Addressable(scope, key) {
		field := "component_key"
		if scope != "" {
			if _, ok := st.Schema().Scope(scope); !ok {
				field = "scope_key"
			}
		}
		return nil, ve.Add(field, "komponen tidak ada di struktur nilai")
	}

	student, err := studentSvc.GetActive(ctx, s.db, in.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ve.Add("student_id", "siswa tidak ditemukan atau tidak aktif")
	}
	ok, err := studentSvc.BelongsToClass(ctx, s.db, student, st.GradeStructureClassID, st.GradeStructureAcademicYearID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ve.Add("student_id", "siswa bukan anggota kelas struktur nilai ini")
	}

	value := compModel.Round2(in.Value)
	row := &compModel.GradeComponentModel{
		GradeComponentStudentID:   in.StudentID,
		GradeComponentStructureID: in.StructureID,
		GradeComponentScopeKey:    scope,
		GradeComponentKey:         key,
		GradeComponentValue:       value,
		GradeComponentUpdatedAt:   time.Now(),
	}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "grade_component_student_id"},
			{Name: "grade_component_structure_id"},
			{Name: "grade_component_scope_key"},
			{Name: "grade_component_key"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"grade_component_value", "grade_component_updated_at"}),
	}).Create(row).Error
	if err != nil {
		return nil, errors.Wrap(err, "upsert komponen nilai")
	}

	s.log.Debug("komponen nilai tersimpan",
		zap.String("student_id", in.StudentID.String()),
		zap.String("structure_id", in.StructureID.String()),
		zap.String("scope_key", scope),
		zap.String("component_key", key),
		zap.Float64("value", value),
	)
	return Get(ctx, s.db, in.StudentID, in.StructureID, scope, key)
}

// Get: nil, nil kalau belum diisi.
func Get(ctx context.Context, tx *gorm.DB, studentID, structureID uuid.UUID, scope, key string) (*compModel.GradeComponentModel, error) {
	var m compModel.GradeComponentModel
	err := tx.WithContext(ctx).
		Where("grade_component_student_id = ? AND grade_component_structure_id = ?", studentID, structureID).
		Where("grade_component_scope_key = ? AND grade_component_key = ?", scope, key).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "ambil komponen nilai")
	}
	return &m, nil
}

// ListForStudent: semua komponen siswa pada satu struktur.
func ListForStudent(ctx context.Context, tx *gorm.DB, studentID, structureID uuid.UUID) ([]compModel.GradeComponentModel, error) {
	var rows []compModel.GradeComponentModel
	err := tx.WithContext(ctx).
		Where("grade_component_student_id = ? AND grade_component_structure_id = ?", studentID, structureID).
		Order("grade_component_scope_key ASC, grade_component_key ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list komponen nilai siswa")
	}
	return rows, nil
}

// ListByStructure: semua komponen untuk satu struktur (tampilan guru).
func ListByStructure(ctx context.Context, db *gorm.DB, structureID uuid.UUID) ([]compModel.GradeComponentModel, error) {
	var rows []compModel.GradeComponentModel
	err := db.WithContext(ctx).
		Where("grade_component_structure_id = ?", structureID).
		Order("grade_component_student_id ASC, grade_component_scope_key ASC, grade_component_key ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list komponen nilai")
	}
	return rows, nil
}

// CountByStructure: jumlah komponen yang mengunci struktur.
func CountByStructure(ctx context.Context, tx *gorm.DB, structureID uuid.UUID) (int64, error) {
	var n int64
	err := tx.WithContext(ctx).Model(&compModel.GradeComponentModel{}).
		Where("grade_component_structure_id = ?", structureID).
		Count(&n).Error
	if err != nil {
		return 0, errors.Wrap(err, "hitung komponen nilai")
	}
	return n, nil
}
