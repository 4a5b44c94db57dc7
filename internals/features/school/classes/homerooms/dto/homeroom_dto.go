// file: internals/features/school/classes/homerooms/dto/homeroom_dto.go
package dto

import (
	"github.com/google/uuid"

	homeroomSvc "schoolku_backend/internals/features/school/classes/homerooms/service"
)

type CreateHomeroomRequest struct {
	TeacherID      uuid.UUID `json:"teacher_id"       validate:"required"`
	ClassID        uuid.UUID `json:"class_id"         validate:"required"`
	AcademicYearID uuid.UUID `json:"academic_year_id" validate:"required"`
	IsPrimary      *bool     `json:"is_primary"`
}

func (r CreateHomeroomRequest) ToInput() homeroomSvc.AssignInput {
	primary := true
	if r.IsPrimary != nil {
		primary = *r.IsPrimary
	}
	return homeroomSvc.AssignInput{
		TeacherID:      r.TeacherID,
		ClassID:        r.ClassID,
		AcademicYearID: r.AcademicYearID,
		IsPrimary:      primary,
	}
}
