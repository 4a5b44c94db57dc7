// file: internals/features/school/academics/year_transitions/service/result.go
package service

import (
	"github.com/google/uuid"

	histModel "schoolku_backend/internals/features/school/classes/class_histories/model"
)

// Status baris preview wali kelas.
const (
	HomeroomCopied               = "copied"
	HomeroomAlreadyExists        = "already_exists"
	HomeroomSkippedClassInactive = "skipped_class_inactive"
)

type Summary struct {
	Promoted               int `json:"promoted"`
	Repeated               int `json:"repeated"`
	Graduated              int `json:"graduated"`
	NoClassAssignedSkipped int `json:"no_class_assigned_skipped"`
	CopiedWaliCount        int `json:"copied_wali_count"`
}

func (s *Summary) count(action string) {
	switch action {
	case histModel.ActionPromote:
		s.Promoted++
	case histModel.ActionRepeat:
		s.Repeated++
	case histModel.ActionGraduate, histModel.ActionGraduateNoNext:
		s.Graduated++
	case histModel.ActionNoClassAssigned, histModel.ActionClassNotFound:
		s.NoClassAssignedSkipped++
	}
}

type PreviewRow struct {
	StudentID     uuid.UUID  `json:"student_id"`
	StudentName   string     `json:"student_name"`
	FromClassID   *uuid.UUID `json:"from_class_id"`
	FromClassName string     `json:"from_class_name,omitempty"`
	ToClassID     *uuid.UUID `json:"to_class_id"`
	ToClassName   string     `json:"to_class_name,omitempty"`
	Action        string     `json:"action"`
}

type HomeroomPreviewRow struct {
	TeacherID uuid.UUID `json:"teacher_id"`
	ClassID   uuid.UUID `json:"class_id"`
	IsPrimary bool      `json:"is_primary"`
	Status    string    `json:"status"`
}

type TargetYear struct {
	ID      uuid.UUID `json:"academic_year_id"`
	Label   string    `json:"academic_year_label"`
	Created bool      `json:"created"`
}

type Result struct {
	DryRun           bool                 `json:"dry_run"`
	TargetYear       TargetYear           `json:"target_year"`
	OutgoingYearID   *uuid.UUID           `json:"outgoing_academic_year_id"`
	Summary          Summary              `json:"summary"`
	Preview          []PreviewRow         `json:"preview"`
	PreviewTruncated bool                 `json:"preview_truncated"`
	HomeroomPreview  []HomeroomPreviewRow `json:"homeroom_preview"`
}
