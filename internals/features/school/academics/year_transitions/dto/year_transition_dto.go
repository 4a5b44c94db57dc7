// file: internals/features/school/academics/year_transitions/dto/year_transition_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	service "schoolku_backend/internals/features/school/academics/year_transitions/service"
)

// TransitionRequest: POST /api/a/year-transitions
type TransitionRequest struct {
	NewYearLabel       *string     `json:"new_year_label"        validate:"omitempty,max=20"`
	RepeatStudentIDs   []uuid.UUID `json:"repeat_student_ids"`
	CopyHomeroom       bool        `json:"copy_homeroom"`
	DryRun             bool        `json:"dry_run"`
	FromAcademicYearID *uuid.UUID  `json:"from_academic_year_id"`
}

func (r TransitionRequest) ToService() service.Request {
	label := ""
	if r.NewYearLabel != nil {
		label = strings.TrimSpace(*r.NewYearLabel)
	}
	return service.Request{
		NewYearLabel:     label,
		RepeatStudentIDs: r.RepeatStudentIDs,
		CopyHomeroom:     r.CopyHomeroom,
		DryRun:           r.DryRun,
	}
}
