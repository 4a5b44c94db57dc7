// file: internals/features/school/classes/class_histories/model/class_histories_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Aksi kenaikan kelas yang tercatat di ledger.
const (
	ActionRepeat          = "repeat"
	ActionPromote         = "promote"
	ActionGraduate        = "graduate"
	ActionGraduateNoNext  = "graduate_fallback_no_next_class"
	ActionNoClassAssigned = "no_class_assigned"
	ActionClassNotFound   = "kelas_not_found"
)

// ClassHistoryModel: posisi kelas siswa untuk satu tahun ajaran.
// Satu baris per (student, academic_year); class_id null untuk alumni / tanpa kelas.
type ClassHistoryModel struct {
	ClassHistoryID             uuid.UUID  `gorm:"type:uuid;primaryKey;column:class_history_id" json:"class_history_id"`
	ClassHistoryStudentID      uuid.UUID  `gorm:"type:uuid;not null;column:class_history_student_id;uniqueIndex:uq_class_histories_student_year,priority:1" json:"class_history_student_id"`
	ClassHistoryAcademicYearID uuid.UUID  `gorm:"type:uuid;not null;column:class_history_academic_year_id;uniqueIndex:uq_class_histories_student_year,priority:2;index:idx_class_histories_year_class,priority:1" json:"class_history_academic_year_id"`
	ClassHistoryClassID        *uuid.UUID `gorm:"type:uuid;column:class_history_class_id;index:idx_class_histories_year_class,priority:2" json:"class_history_class_id"`

	ClassHistoryFromClassID *uuid.UUID `gorm:"type:uuid;column:class_history_from_class_id" json:"class_history_from_class_id"`
	ClassHistoryAction      string     `gorm:"type:varchar(40);not null;column:class_history_action" json:"class_history_action"`

	ClassHistoryCreatedAt time.Time `gorm:"not null;autoCreateTime;column:class_history_created_at" json:"class_history_created_at"`
	ClassHistoryUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:class_history_updated_at" json:"class_history_updated_at"`
}

func (ClassHistoryModel) TableName() string { return "class_histories" }

func (m *ClassHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassHistoryID == uuid.Nil {
		m.ClassHistoryID = uuid.New()
	}
	return nil
}
