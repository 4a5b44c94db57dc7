// file: internals/features/lembaga/teachers_students/service/student_directory.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	studentModel "schoolku_backend/internals/features/lembaga/teachers_students/model"
)

// ListForTransition: siswa active & bukan alumni, urut id supaya keputusan deterministik.
// Siswa yang sudah punya baris ledger di tahun target ikut diambil walau sudah alumni
// (run ulang untuk pasangan tahun yang sama).
func ListForTransition(ctx context.Context, tx *gorm.DB, targetYearID uuid.UUID) ([]studentModel.StudentModel, error) {
	var rows []studentModel.StudentModel
	err := tx.WithContext(ctx).
		Where("student_status = ?", constants.StatusActive).
		Where(`
			student_is_alumnus = ?
			OR student_id IN (
				SELECT class_history_student_id FROM class_histories
				WHERE class_history_academic_year_id = ?
			)`, false, targetYearID).
		Order("student_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list siswa untuk kenaikan kelas")
	}
	return rows, nil
}

// SetPlacement menulis hasil keputusan kenaikan kelas ke siswa.
func SetPlacement(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, classID *uuid.UUID, alumnus bool) error {
	res := tx.WithContext(ctx).
		Model(&studentModel.StudentModel{}).
		Where("student_id = ?", studentID).
		Updates(map[string]any{
			"student_current_class_id": classID,
			"student_is_alumnus":       alumnus,
		})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "update kelas siswa %s", studentID)
	}
	return nil
}

// GetActive: nil, nil kalau siswa tidak ada atau tombstoned.
func GetActive(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*studentModel.StudentModel, error) {
	var m studentModel.StudentModel
	err := tx.WithContext(ctx).
		Where("student_id = ? AND student_status = ?", id, constants.StatusActive).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "ambil siswa")
	}
	return &m, nil
}

// Exists: termasuk tombstoned (untuk tampilan histori).
func Exists(ctx context.Context, db *gorm.DB, id uuid.UUID) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&studentModel.StudentModel{}).
		Where("student_id = ?", id).Count(&n).Error
	return n > 0, errors.Wrap(err, "cek siswa")
}

// Roster: siswa active yang tercatat di kelas pada tahun ajaran tsb.
// Sumber utama ledger class_histories; siswa tanpa baris ledger untuk tahun itu
// diambil dari kelas saat ini. Urut id.
func Roster(ctx context.Context, tx *gorm.DB, classID, yearID uuid.UUID) ([]studentModel.StudentModel, error) {
	var rows []studentModel.StudentModel
	err := tx.WithContext(ctx).
		Where("student_status = ?", constants.StatusActive).
		Where(`
			student_id IN (
				SELECT class_history_student_id FROM class_histories
				WHERE class_history_academic_year_id = ? AND class_history_class_id = ?
			)
			OR (
				student_current_class_id = ?
				AND student_id NOT IN (
					SELECT class_history_student_id FROM class_histories
					WHERE class_history_academic_year_id = ?
				)
			)`, yearID, classID, classID, yearID).
		Order("student_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "ambil roster kelas")
	}
	return rows, nil
}

// BelongsToClass: siswa tercatat di kelas untuk tahun tsb (ledger), atau tanpa ledger tapi kelas saat ini cocok.
func BelongsToClass(ctx context.Context, tx *gorm.DB, student *studentModel.StudentModel, classID, yearID uuid.UUID) (bool, error) {
	var ledgerClass struct {
		ClassID *uuid.UUID `gorm:"column:class_history_class_id"`
	}
	err := tx.WithContext(ctx).
		Table("class_histories").
		Select("class_history_class_id").
		Where("class_history_student_id = ? AND class_history_academic_year_id = ?", student.StudentID, yearID).
		Take(&ledgerClass).Error
	switch {
	case err == nil:
		return ledgerClass.ClassID != nil && *ledgerClass.ClassID == classID, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return student.StudentCurrentClassID != nil && *student.StudentCurrentClassID == classID, nil
	default:
		return false, errors.Wrap(err, "cek ledger kelas siswa")
	}
}

type ListFilter struct {
	ClassID       *uuid.UUID
	IncludeAlumni bool
	Offset        int
	Limit         int
}

// List: siswa active, opsional per kelas saat ini. Alumni disembunyikan kecuali diminta.
func List(ctx context.Context, db *gorm.DB, f ListFilter) ([]studentModel.StudentModel, int64, error) {
	q := db.WithContext(ctx).Model(&studentModel.StudentModel{}).
		Where("student_status = ?", constants.StatusActive)
	if f.ClassID != nil {
		q = q.Where("student_current_class_id = ?", *f.ClassID)
	}
	if !f.IncludeAlumni {
		q = q.Where("student_is_alumnus = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "hitung siswa")
	}
	var rows []studentModel.StudentModel
	if err := q.Order("student_name ASC, student_id ASC").
		Offset(f.Offset).Limit(f.Limit).Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list siswa")
	}
	return rows, total, nil
}
