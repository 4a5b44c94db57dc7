// file: internals/features/school/academics/subjects/model/class_subject_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
)

type SubjectModel struct {
	SubjectID   uuid.UUID `gorm:"type:uuid;primaryKey;column:subject_id" json:"subject_id"`
	SubjectCode string    `gorm:"type:varchar(40);not null;column:subject_code;uniqueIndex:uq_subjects_code" json:"subject_code"`
	SubjectName string    `gorm:"type:varchar(160);not null;column:subject_name" json:"subject_name"`

	SubjectStatus constants.RecordStatus `gorm:"type:varchar(16);not null;default:'active';column:subject_status" json:"subject_status"`

	SubjectCreatedAt time.Time `gorm:"not null;autoCreateTime;column:subject_created_at" json:"subject_created_at"`
	SubjectUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:subject_updated_at" json:"subject_updated_at"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	if m.SubjectStatus == "" {
		m.SubjectStatus = constants.StatusActive
	}
	m.SubjectCode = strings.ToUpper(strings.TrimSpace(m.SubjectCode))
	return nil
}

/* ============ class_subjects ============ */

// ClassSubjectModel: mapel yang diajarkan di sebuah kelas.
// Penawaran dianggap aktif kalau is_active dan subject-nya masih active.
type ClassSubjectModel struct {
	ClassSubjectID        uuid.UUID `gorm:"type:uuid;primaryKey;column:class_subject_id" json:"class_subject_id"`
	ClassSubjectClassID   uuid.UUID `gorm:"type:uuid;not null;column:class_subject_class_id;uniqueIndex:uq_class_subjects_class_subject,priority:1" json:"class_subject_class_id"`
	ClassSubjectSubjectID uuid.UUID `gorm:"type:uuid;not null;column:class_subject_subject_id;uniqueIndex:uq_class_subjects_class_subject,priority:2" json:"class_subject_subject_id"`

	ClassSubjectIsActive bool `gorm:"not null;column:class_subject_is_active" json:"class_subject_is_active"`

	ClassSubjectCreatedAt time.Time `gorm:"not null;autoCreateTime;column:class_subject_created_at" json:"class_subject_created_at"`
	ClassSubjectUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:class_subject_updated_at" json:"class_subject_updated_at"`
}

func (ClassSubjectModel) TableName() string { return "class_subjects" }

func (m *ClassSubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSubjectID == uuid.Nil {
		m.ClassSubjectID = uuid.New()
	}
	return nil
}
