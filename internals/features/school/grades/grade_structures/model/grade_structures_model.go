// file: internals/features/school/grades/grade_structures/model/grade_structures_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// GradeStructureModel: schema penilaian per (mapel, kelas, semester, tahun ajaran).
// Beku begitu ada grade_components yang merujuk.
type GradeStructureModel struct {
	GradeStructureID             uuid.UUID `gorm:"type:uuid;primaryKey;column:grade_structure_id" json:"grade_structure_id"`
	GradeStructureSubjectID      uuid.UUID `gorm:"type:uuid;not null;column:grade_structure_subject_id;uniqueIndex:uq_grade_structures_scope,priority:1" json:"grade_structure_subject_id"`
	GradeStructureClassID        uuid.UUID `gorm:"type:uuid;not null;column:grade_structure_class_id;uniqueIndex:uq_grade_structures_scope,priority:2" json:"grade_structure_class_id"`
	GradeStructureTermID         uuid.UUID `gorm:"type:uuid;not null;column:grade_structure_term_id;uniqueIndex:uq_grade_structures_scope,priority:3" json:"grade_structure_term_id"`
	GradeStructureAcademicYearID uuid.UUID `gorm:"type:uuid;not null;column:grade_structure_academic_year_id;uniqueIndex:uq_grade_structures_scope,priority:4" json:"grade_structure_academic_year_id"`

	GradeStructureSchema datatypes.JSONType[GradeSchema] `gorm:"not null;column:grade_structure_schema" json:"grade_structure_schema"`

	GradeStructureCreatedAt time.Time `gorm:"not null;autoCreateTime;column:grade_structure_created_at" json:"grade_structure_created_at"`
	GradeStructureUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:grade_structure_updated_at" json:"grade_structure_updated_at"`
}

func (GradeStructureModel) TableName() string { return "grade_structures" }

func (m *GradeStructureModel) BeforeCreate(tx *gorm.DB) error {
	if m.GradeStructureID == uuid.Nil {
		m.GradeStructureID = uuid.New()
	}
	return nil
}

// Schema: akses cepat ke schema bertipe.
func (m *GradeStructureModel) Schema() GradeSchema {
	return m.GradeStructureSchema.Data()
}
