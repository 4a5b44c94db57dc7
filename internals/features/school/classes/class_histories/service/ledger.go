// file: internals/features/school/classes/class_histories/service/ledger.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	histModel "schoolku_backend/internals/features/school/classes/class_histories/model"
)

// Upsert menulis posisi akhir siswa untuk tahun ajaran tsb.
// Dijalankan ulang → baris yang sama diperbarui, tidak pernah dobel.
func Upsert(ctx context.Context, tx *gorm.DB, row *histModel.ClassHistoryModel) error {
	row.ClassHistoryUpdatedAt = time.Now()
	err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "class_history_student_id"},
			{Name: "class_history_academic_year_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"class_history_class_id",
			"class_history_from_class_id",
			"class_history_action",
			"class_history_updated_at",
		}),
	}).Create(row).Error
	return errors.Wrap(err, "upsert class_history")
}

// Get: nil, nil kalau belum ada baris untuk (student, year).
func Get(ctx context.Context, tx *gorm.DB, studentID, yearID uuid.UUID) (*histModel.ClassHistoryModel, error) {
	var m histModel.ClassHistoryModel
	err := tx.WithContext(ctx).
		Where("class_history_student_id = ? AND class_history_academic_year_id = ?", studentID, yearID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "ambil class_history")
	}
	return &m, nil
}

// MapByYear: baris ledger tahun tsb, per student id.
func MapByYear(ctx context.Context, tx *gorm.DB, yearID uuid.UUID) (map[uuid.UUID]histModel.ClassHistoryModel, error) {
	var rows []histModel.ClassHistoryModel
	err := tx.WithContext(ctx).
		Where("class_history_academic_year_id = ?", yearID).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list class_history per tahun")
	}
	out := make(map[uuid.UUID]histModel.ClassHistoryModel, len(rows))
	for _, r := range rows {
		out[r.ClassHistoryStudentID] = r
	}
	return out, nil
}

// HistoryRow: baris ledger + label tahun & nama kelas untuk tampilan.
type HistoryRow struct {
	histModel.ClassHistoryModel
	AcademicYearLabel string  `gorm:"column:academic_year_label" json:"academic_year_label"`
	ClassName         *string `gorm:"column:class_name" json:"class_name"`
}

// ListByStudent: seluruh histori siswa, urut label tahun ajaran.
// Kelas tombstoned tetap ditampilkan (tampilan histori).
func ListByStudent(ctx context.Context, db *gorm.DB, studentID uuid.UUID) ([]HistoryRow, error) {
	var rows []HistoryRow
	err := db.WithContext(ctx).
		Table("class_histories").
		Select("class_histories.*, academic_years.academic_year_label, classes.class_name").
		Joins("JOIN academic_years ON academic_years.academic_year_id = class_histories.class_history_academic_year_id").
		Joins("LEFT JOIN classes ON classes.class_id = class_histories.class_history_class_id").
		Where("class_histories.class_history_student_id = ?", studentID).
		Order("academic_years.academic_year_label ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "list histori kelas siswa")
	}
	return rows, nil
}
