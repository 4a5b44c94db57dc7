// file: internals/features/school/grades/final_grades/dto/final_grade_dto.go
package dto

import (
	"github.com/google/uuid"

	finalSvc "schoolku_backend/internals/features/school/grades/final_grades/service"
)

// PUT /api/t/final-grades
// value null = sengaja dikosongkan (mis. siswa pindahan), note disarankan diisi.
type ManualFinalGradeRequest struct {
	StudentID uuid.UUID  `json:"student_id" validate:"required"`
	SubjectID uuid.UUID  `json:"subject_id" validate:"required"`
	TermID    uuid.UUID  `json:"term_id"    validate:"required"`
	ClassID   *uuid.UUID `json:"class_id"`
	Value     *float64   `json:"value"      validate:"omitempty,gte=0,lte=100"`
	Note      *string    `json:"note"       validate:"omitempty,max=500"`
}

func (r ManualFinalGradeRequest) ToInput() finalSvc.ManualInput {
	return finalSvc.ManualInput{
		StudentID: r.StudentID,
		SubjectID: r.SubjectID,
		TermID:    r.TermID,
		ClassID:   r.ClassID,
		Value:     r.Value,
		Note:      r.Note,
	}
}
