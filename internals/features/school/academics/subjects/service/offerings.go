// file: internals/features/school/academics/subjects/service/offerings.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	subjectModel "schoolku_backend/internals/features/school/academics/subjects/model"
)

// IsActiveOffering: mapel masih diajarkan di kelas (class_subject aktif & subject active).
func IsActiveOffering(ctx context.Context, tx *gorm.DB, classID, subjectID uuid.UUID) (bool, error) {
	var n int64
	err := tx.WithContext(ctx).
		Model(&subjectModel.ClassSubjectModel{}).
		Joins("JOIN subjects ON subjects.subject_id = class_subjects.class_subject_subject_id").
		Where("class_subjects.class_subject_class_id = ?", classID).
		Where("class_subjects.class_subject_subject_id = ?", subjectID).
		Where("class_subjects.class_subject_is_active = ?", true).
		Where("subjects.subject_status = ?", constants.StatusActive).
		Count(&n).Error
	if err != nil {
		return false, errors.Wrap(err, "cek penawaran mapel")
	}
	return n > 0, nil
}

// GetSubject: nil, nil kalau tidak ada (termasuk tombstoned, untuk tampilan histori).
func GetSubject(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*subjectModel.SubjectModel, error) {
	var m subjectModel.SubjectModel
	err := tx.WithContext(ctx).Where("subject_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "ambil mapel")
	}
	return &m, nil
}

// OfferingRow: mapel aktif yang diajarkan di kelas.
type OfferingRow struct {
	ClassSubjectID uuid.UUID `gorm:"column:class_subject_id" json:"class_subject_id"`
	SubjectID      uuid.UUID `gorm:"column:subject_id" json:"subject_id"`
	SubjectCode    string    `gorm:"column:subject_code" json:"subject_code"`
	SubjectName    string    `gorm:"column:subject_name" json:"subject_name"`
}

// ListOfferings: penawaran aktif di kelas, urut kode mapel.
func ListOfferings(ctx context.Context, db *gorm.DB, classID uuid.UUID) ([]OfferingRow, error) {
	var rows []OfferingRow
	err := db.WithContext(ctx).
		Table("class_subjects").
		Select("class_subjects.class_subject_id, subjects.subject_id, subjects.subject_code, subjects.subject_name").
		Joins("JOIN subjects ON subjects.subject_id = class_subjects.class_subject_subject_id").
		Where("class_subjects.class_subject_class_id = ?", classID).
		Where("class_subjects.class_subject_is_active = ?", true).
		Where("subjects.subject_status = ?", constants.StatusActive).
		Order("subjects.subject_code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list penawaran mapel")
	}
	return rows, nil
}
