// file: internals/features/school/academics/academic_terms/dto/academic_terms_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/academics/academic_terms/model"
)

type AcademicTermResponse struct {
	AcademicTermID       uuid.UUID `json:"academic_term_id"`
	AcademicTermName     string    `json:"academic_term_name"`
	AcademicTermIsActive bool      `json:"academic_term_is_active"`
}

type AcademicYearResponse struct {
	AcademicYearID        uuid.UUID              `json:"academic_year_id"`
	AcademicYearLabel     string                 `json:"academic_year_label"`
	AcademicYearIsActive  bool                   `json:"academic_year_is_active"`
	AcademicYearCreatedAt time.Time              `json:"academic_year_created_at"`
	Terms                 []AcademicTermResponse `json:"terms,omitempty"`
}

func FromYear(m model.AcademicYearModel, terms []model.AcademicTermModel) AcademicYearResponse {
	out := AcademicYearResponse{
		AcademicYearID:        m.AcademicYearID,
		AcademicYearLabel:     m.AcademicYearLabel,
		AcademicYearIsActive:  m.AcademicYearIsActive,
		AcademicYearCreatedAt: m.AcademicYearCreatedAt,
	}
	for _, t := range terms {
		out.Terms = append(out.Terms, AcademicTermResponse{
			AcademicTermID:       t.AcademicTermID,
			AcademicTermName:     t.AcademicTermName,
			AcademicTermIsActive: t.AcademicTermIsActive,
		})
	}
	return out
}
