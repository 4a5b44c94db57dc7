// file: internals/features/school/classes/homerooms/service/homerooms.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	termSvc "schoolku_backend/internals/features/school/academics/academic_terms/service"
	classSvc "schoolku_backend/internals/features/school/classes/classes/service"
	homeroomModel "schoolku_backend/internals/features/school/classes/homerooms/model"
	helper "schoolku_backend/internals/helpers"
)

// ListByYear: semua wali kelas pada tahun ajaran, urut kelas lalu guru.
func ListByYear(ctx context.Context, tx *gorm.DB, yearID uuid.UUID) ([]homeroomModel.HomeroomModel, error) {
	var rows []homeroomModel.HomeroomModel
	err := tx.WithContext(ctx).
		Where("homeroom_academic_year_id = ?", yearID).
		Order("homeroom_class_id ASC, homeroom_teacher_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list wali kelas")
	}
	return rows, nil
}

// InsertIfAbsent: ON CONFLICT DO NOTHING. true kalau baris benar-benar tertulis.
func InsertIfAbsent(ctx context.Context, tx *gorm.DB, row *homeroomModel.HomeroomModel) (bool, error) {
	res := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "homeroom_teacher_id"},
			{Name: "homeroom_class_id"},
			{Name: "homeroom_academic_year_id"},
		},
		DoNothing: true,
	}).Create(row)
	if res.Error != nil {
		return false, errors.Wrap(res.Error, "insert wali kelas")
	}
	return res.RowsAffected > 0, nil
}

// AssignInput: penugasan wali kelas manual oleh admin.
type AssignInput struct {
	TeacherID      uuid.UUID
	ClassID        uuid.UUID
	AcademicYearID uuid.UUID
	IsPrimary      bool
}

// Assign: kelas harus active, tahun ajaran harus ada, triple (teacher, class, year) unik.
func Assign(ctx context.Context, db *gorm.DB, in AssignInput) (*homeroomModel.HomeroomModel, error) {
	ve := helper.NewValidationError()
	if in.TeacherID == uuid.Nil {
		ve.Add("teacher_id", "wajib diisi")
	}
	if in.ClassID == uuid.Nil {
		ve.Add("class_id", "wajib diisi")
	}
	if in.AcademicYearID == uuid.Nil {
		ve.Add("academic_year_id", "wajib diisi")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	row := &homeroomModel.HomeroomModel{
		HomeroomTeacherID:      in.TeacherID,
		HomeroomClassID:        in.ClassID,
		HomeroomAcademicYearID: in.AcademicYearID,
		HomeroomIsPrimary:      in.IsPrimary,
		HomeroomSource:         homeroomModel.SourceManual,
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		active, err := classSvc.IsActive(ctx, tx, in.ClassID)
		if err != nil {
			return err
		}
		if !active {
			return helper.NewValidationError().Add("class_id", "kelas tidak ditemukan atau tidak aktif")
		}
		year, err := termSvc.GetYear(ctx, tx, in.AcademicYearID)
		if err != nil {
			return err
		}
		if year == nil {
			return helper.NewValidationError().Add("academic_year_id", "tahun ajaran tidak ditemukan")
		}

		created, err := InsertIfAbsent(ctx, tx, row)
		if err != nil {
			return err
		}
		if !created {
			return &helper.ConflictError{Message: "Guru sudah menjadi wali kelas ini pada tahun ajaran tersebut"}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}
