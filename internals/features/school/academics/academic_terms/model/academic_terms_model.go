// file: internals/features/school/academics/academic_terms/model/academic_terms_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Nama semester yang diterima. Tepat dua term per tahun ajaran.
const (
	TermGanjil = "ganjil"
	TermGenap  = "genap"
)

var TermNames = []string{TermGanjil, TermGenap}

// ============ academic_years ============

type AcademicYearModel struct {
	AcademicYearID uuid.UUID `gorm:"type:uuid;primaryKey;column:academic_year_id" json:"academic_year_id"`
	// Example label: "2026/2027"
	AcademicYearLabel    string `gorm:"type:varchar(20);not null;column:academic_year_label;uniqueIndex:uq_academic_years_label" json:"academic_year_label"`
	AcademicYearIsActive bool   `gorm:"not null;column:academic_year_is_active;index:idx_academic_years_active" json:"academic_year_is_active"`

	AcademicYearCreatedAt time.Time `gorm:"not null;autoCreateTime;column:academic_year_created_at" json:"academic_year_created_at"`
	AcademicYearUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:academic_year_updated_at" json:"academic_year_updated_at"`
}

func (AcademicYearModel) TableName() string { return "academic_years" }

func (m *AcademicYearModel) BeforeCreate(tx *gorm.DB) error {
	if m.AcademicYearID == uuid.Nil {
		m.AcademicYearID = uuid.New()
	}
	return nil
}

func (m *AcademicYearModel) BeforeSave(tx *gorm.DB) error {
	m.AcademicYearLabel = strings.TrimSpace(m.AcademicYearLabel)
	return nil
}

// ============ academic_terms ============

type AcademicTermModel struct {
	AcademicTermID             uuid.UUID `gorm:"type:uuid;primaryKey;column:academic_term_id" json:"academic_term_id"`
	AcademicTermAcademicYearID uuid.UUID `gorm:"type:uuid;not null;column:academic_term_academic_year_id;uniqueIndex:uq_academic_terms_year_name,priority:1" json:"academic_term_academic_year_id"`
	// "ganjil" | "genap"
	AcademicTermName     string `gorm:"type:varchar(16);not null;column:academic_term_name;uniqueIndex:uq_academic_terms_year_name,priority:2" json:"academic_term_name"`
	AcademicTermIsActive bool   `gorm:"not null;column:academic_term_is_active" json:"academic_term_is_active"`

	AcademicTermCreatedAt time.Time `gorm:"not null;autoCreateTime;column:academic_term_created_at" json:"academic_term_created_at"`
	AcademicTermUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:academic_term_updated_at" json:"academic_term_updated_at"`
}

func (AcademicTermModel) TableName() string { return "academic_terms" }

func (m *AcademicTermModel) BeforeCreate(tx *gorm.DB) error {
	if m.AcademicTermID == uuid.Nil {
		m.AcademicTermID = uuid.New()
	}
	m.AcademicTermName = strings.ToLower(strings.TrimSpace(m.AcademicTermName))
	return nil
}
