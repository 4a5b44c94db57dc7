// file: internals/features/lembaga/teachers_students/model/students_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
)

// StudentModel merepresentasikan tabel `students`.
// current_class_id & is_alumnus hanya diubah oleh kenaikan kelas atau edit admin.
type StudentModel struct {
	StudentID   uuid.UUID `gorm:"type:uuid;primaryKey;column:student_id" json:"student_id"`
	StudentName string    `gorm:"type:varchar(120);not null;column:student_name" json:"student_name"`
	StudentNIS  *string   `gorm:"type:varchar(40);column:student_nis" json:"student_nis,omitempty"`

	StudentCurrentClassID *uuid.UUID `gorm:"type:uuid;column:student_current_class_id;index:idx_students_current_class" json:"student_current_class_id,omitempty"`
	StudentIsAlumnus      bool       `gorm:"not null;default:false;column:student_is_alumnus" json:"student_is_alumnus"`

	StudentStatus constants.RecordStatus `gorm:"type:varchar(16);not null;default:'active';column:student_status;index:idx_students_status" json:"student_status"`

	StudentCreatedAt time.Time `gorm:"not null;autoCreateTime;column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:student_updated_at" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	if m.StudentStatus == "" {
		m.StudentStatus = constants.StatusActive
	}
	return nil
}

func (m *StudentModel) BeforeSave(tx *gorm.DB) error {
	m.StudentName = strings.TrimSpace(m.StudentName)
	if m.StudentNIS != nil {
		s := strings.TrimSpace(*m.StudentNIS)
		if s == "" {
			m.StudentNIS = nil
		} else {
			m.StudentNIS = &s
		}
	}
	return nil
}
