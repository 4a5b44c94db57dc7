// file: internals/features/school/grades/grade_structures/dto/grade_structure_dto.go
package dto

import (
	"github.com/google/uuid"

	compSvc "schoolku_backend/internals/features/school/grades/grade_components/service"
	structModel "schoolku_backend/internals/features/school/grades/grade_structures/model"
	structSvc "schoolku_backend/internals/features/school/grades/grade_structures/service"
)

// POST /api/t/grade-structures
type CreateGradeStructureRequest struct {
	ClassID   uuid.UUID               `json:"class_id"   validate:"required"`
	SubjectID uuid.UUID               `json:"subject_id" validate:"required"`
	TermID    uuid.UUID               `json:"term_id"    validate:"required"`
	Schema    structModel.GradeSchema `json:"schema"`
}

func (r CreateGradeStructureRequest) ToInput() structSvc.DefineInput {
	return structSvc.DefineInput{
		ClassID:   r.ClassID,
		SubjectID: r.SubjectID,
		TermID:    r.TermID,
		Schema:    r.Schema,
	}
}

// PATCH /api/t/grade-structures/:id
type UpdateGradeStructureRequest struct {
	Schema structModel.GradeSchema `json:"schema"`
}

// PUT /api/t/grade-structures/:id/components
type RecordComponentRequest struct {
	StudentID    uuid.UUID `json:"student_id"    validate:"required"`
	ScopeKey     *string   `json:"scope_key"     validate:"omitempty,max=60"`
	ComponentKey string    `json:"component_key" validate:"required,max=60"`
	Value        *float64  `json:"value"         validate:"required"`
}

func (r RecordComponentRequest) ToInput(structureID uuid.UUID) compSvc.RecordInput {
	return compSvc.RecordInput{
		StudentID:    r.StudentID,
		StructureID:  structureID,
		ScopeKey:     r.ScopeKey,
		ComponentKey: r.ComponentKey,
		Value:        *r.Value,
	}
}
