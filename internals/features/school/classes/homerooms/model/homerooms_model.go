// file: internals/features/school/classes/homerooms/model/homerooms_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Asal baris wali kelas.
const (
	SourceManual = "manual"
	SourceCopied = "copied"
)

// HomeroomModel: wali kelas (guru) untuk satu kelas pada satu tahun ajaran.
type HomeroomModel struct {
	HomeroomID             uuid.UUID `gorm:"type:uuid;primaryKey;column:homeroom_id" json:"homeroom_id"`
	HomeroomTeacherID      uuid.UUID `gorm:"type:uuid;not null;column:homeroom_teacher_id;uniqueIndex:uq_homerooms_teacher_class_year,priority:1" json:"homeroom_teacher_id"`
	HomeroomClassID        uuid.UUID `gorm:"type:uuid;not null;column:homeroom_class_id;uniqueIndex:uq_homerooms_teacher_class_year,priority:2" json:"homeroom_class_id"`
	HomeroomAcademicYearID uuid.UUID `gorm:"type:uuid;not null;column:homeroom_academic_year_id;uniqueIndex:uq_homerooms_teacher_class_year,priority:3;index:idx_homerooms_year" json:"homeroom_academic_year_id"`

	HomeroomIsPrimary bool   `gorm:"not null;column:homeroom_is_primary" json:"homeroom_is_primary"`
	HomeroomSource    string `gorm:"type:varchar(16);not null;column:homeroom_source" json:"homeroom_source"`

	HomeroomCreatedAt time.Time `gorm:"not null;autoCreateTime;column:homeroom_created_at" json:"homeroom_created_at"`
	HomeroomUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:homeroom_updated_at" json:"homeroom_updated_at"`
}

func (HomeroomModel) TableName() string { return "homerooms" }

func (m *HomeroomModel) BeforeCreate(tx *gorm.DB) error {
	if m.HomeroomID == uuid.Nil {
		m.HomeroomID = uuid.New()
	}
	if m.HomeroomSource == "" {
		m.HomeroomSource = SourceManual
	}
	return nil
}
