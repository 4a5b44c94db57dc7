// models/class_model.go
package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
)

const (
	MinClassLevel = 1
	// TopClassLevel: siswa di level ini lulus saat kenaikan kelas.
	TopClassLevel = 6
)

// ClassModel merepresentasikan tabel `classes` (rombel, mis. "3A": level 3, section "A").
type ClassModel struct {
	ClassID      uuid.UUID `gorm:"type:uuid;primaryKey;column:class_id" json:"class_id"`
	ClassName    string    `gorm:"type:varchar(120);not null;column:class_name" json:"class_name"`
	ClassLevel   int       `gorm:"not null;column:class_level;index:idx_classes_level_section,priority:1" json:"class_level"`
	ClassSection string    `gorm:"type:varchar(20);not null;column:class_section;index:idx_classes_level_section,priority:2" json:"class_section"`

	ClassStatus constants.RecordStatus `gorm:"type:varchar(16);not null;default:'active';column:class_status" json:"class_status"`

	ClassCreatedAt time.Time `gorm:"not null;autoCreateTime;column:class_created_at" json:"class_created_at"`
	ClassUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:class_updated_at" json:"class_updated_at"`
}

func (ClassModel) TableName() string {
	return "classes"
}

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	if m.ClassStatus == "" {
		m.ClassStatus = constants.StatusActive
	}
	return nil
}

func (m *ClassModel) BeforeSave(tx *gorm.DB) error {
	m.ClassName = strings.TrimSpace(m.ClassName)
	m.ClassSection = strings.TrimSpace(m.ClassSection)
	if m.ClassName == "" {
		m.ClassName = strings.TrimSpace(strconv.Itoa(m.ClassLevel) + m.ClassSection)
	}
	return nil
}
