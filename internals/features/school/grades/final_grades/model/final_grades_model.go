// file: internals/features/school/grades/final_grades/model/final_grades_model.go
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sumber nilai akhir. Hasil hitung engine selalu "computed".
const (
	SourceComputed = "computed"
	SourceManual   = "manual"
)

// FinalGradeModel: satu nilai akhir per (siswa, mapel, semester, tahun ajaran).
type FinalGradeModel struct {
	FinalGradeID             uuid.UUID `gorm:"type:uuid;primaryKey;column:final_grade_id" json:"final_grade_id"`
	FinalGradeStudentID      uuid.UUID `gorm:"type:uuid;not null;column:final_grade_student_id;uniqueIndex:uq_final_grades_entry,priority:1" json:"final_grade_student_id"`
	FinalGradeSubjectID      uuid.UUID `gorm:"type:uuid;not null;column:final_grade_subject_id;uniqueIndex:uq_final_grades_entry,priority:2" json:"final_grade_subject_id"`
	FinalGradeTermID         uuid.UUID `gorm:"type:uuid;not null;column:final_grade_term_id;uniqueIndex:uq_final_grades_entry,priority:3" json:"final_grade_term_id"`
	FinalGradeAcademicYearID uuid.UUID `gorm:"type:uuid;not null;column:final_grade_academic_year_id;uniqueIndex:uq_final_grades_entry,priority:4" json:"final_grade_academic_year_id"`

	// kelas saat nilai ditulis (filter list)
	FinalGradeClassID *uuid.UUID `gorm:"type:uuid;column:final_grade_class_id;index:idx_final_grades_class" json:"final_grade_class_id,omitempty"`

	FinalGradeValue      *float64   `gorm:"type:numeric(5,2);column:final_grade_value" json:"final_grade_value"`
	FinalGradeNote       *string    `gorm:"type:text;column:final_grade_note" json:"final_grade_note,omitempty"`
	FinalGradeSource     string     `gorm:"type:varchar(16);not null;column:final_grade_source" json:"final_grade_source"`
	FinalGradeComputedAt *time.Time `gorm:"column:final_grade_computed_at" json:"final_grade_computed_at,omitempty"`

	FinalGradeCreatedAt time.Time `gorm:"not null;autoCreateTime;column:final_grade_created_at" json:"final_grade_created_at"`
	FinalGradeUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:final_grade_updated_at" json:"final_grade_updated_at"`
}

func (FinalGradeModel) TableName() string { return "final_grades" }

func (m *FinalGradeModel) BeforeCreate(tx *gorm.DB) error {
	if m.FinalGradeID == uuid.Nil {
		m.FinalGradeID = uuid.New()
	}
	if m.FinalGradeSource == "" {
		m.FinalGradeSource = SourceManual
	}
	if m.FinalGradeNote != nil {
		n := strings.TrimSpace(*m.FinalGradeNote)
		if n == "" {
			m.FinalGradeNote = nil
		} else {
			m.FinalGradeNote = &n
		}
	}
	return nil
}
