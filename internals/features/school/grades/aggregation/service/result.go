// file: internals/features/school/grades/aggregation/service/result.go
package service

import (
	"time"

	"github.com/google/uuid"
)

// Alasan siswa dilewati / gagal.
const (
	ReasonMissingRequired = "missing_required_component"
	ReasonNoFormative     = "no_formative_component"
	ReasonValueOutOfRange = "value_out_of_range"
)

// ScopeGap: lingkup yang terisi sebagian (diagnostik, tidak menggagalkan hitungan).
type ScopeGap struct {
	ScopeKey      string   `json:"scope_key"`
	ScopeLabel    string   `json:"scope_label"`
	MissingLabels []string `json:"missing_labels"`
}

type StudentResult struct {
	StudentID   uuid.UUID `json:"student_id"`
	StudentName string    `json:"student_name"`

	FinalGrade       *float64 `json:"final_grade,omitempty"`
	FormativeAverage *float64 `json:"formative_average,omitempty"`
	Midterm          *float64 `json:"midterm,omitempty"`
	Final            *float64 `json:"final,omitempty"`
	OverrodeManual   bool     `json:"overrode_manual,omitempty"`

	Reason        string     `json:"reason,omitempty"`
	Missing       []string   `json:"missing,omitempty"`
	InvalidKeys   []string   `json:"invalid_keys,omitempty"`
	PartialScopes []ScopeGap `json:"partial_scopes,omitempty"`
	EmptyScopes   []string   `json:"empty_scopes,omitempty"`
}

type ComputeResult struct {
	StructureID    uuid.UUID `json:"structure_id"`
	ClassID        uuid.UUID `json:"class_id"`
	SubjectID      uuid.UUID `json:"subject_id"`
	TermID         uuid.UUID `json:"term_id"`
	AcademicYearID uuid.UUID `json:"academic_year_id"`
	ComputedAt     time.Time `json:"computed_at"`

	Success           []StudentResult `json:"success"`
	SkippedIncomplete []StudentResult `json:"skipped_incomplete"`
	Failed            []StudentResult `json:"failed"`
}
