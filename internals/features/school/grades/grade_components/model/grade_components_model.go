// file: internals/features/school/grades/grade_components/model/grade_components_model.go
package model

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MinValue = 0.0
	MaxValue = 100.0

	// Scale mengikuti kolom numeric(5,2).
	Scale = 2
)

// InRange: [0, 100]. NaN dan ±Inf selalu di luar rentang.
func InRange(v float64) bool {
	return v >= MinValue && v <= MaxValue
}

// Round2: pembulatan ke Scale desimal, half away from zero, dihitung di representasi desimal
// (1.005 → 1.01) supaya postgres dan sqlite menyimpan angka yang sama.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(Scale).InexactFloat64()
}

// GradeComponentModel: satu nilai mentah.
// scope_key disimpan "" untuk midterm/final (NULL tidak pernah bentrok di unique index).
type GradeComponentModel struct {
	GradeComponentID          uuid.UUID `gorm:"type:uuid;primaryKey;column:grade_component_id" json:"grade_component_id"`
	GradeComponentStudentID   uuid.UUID `gorm:"type:uuid;not null;column:grade_component_student_id;uniqueIndex:uq_grade_components_entry,priority:1" json:"grade_component_student_id"`
	GradeComponentStructureID uuid.UUID `gorm:"type:uuid;not null;column:grade_component_structure_id;uniqueIndex:uq_grade_components_entry,priority:2;index:idx_grade_components_structure" json:"grade_component_structure_id"`
	GradeComponentScopeKey    string    `gorm:"type:varchar(60);not null;column:grade_component_scope_key;uniqueIndex:uq_grade_components_entry,priority:3" json:"-"`
	GradeComponentKey         string    `gorm:"type:varchar(60);not null;column:grade_component_key;uniqueIndex:uq_grade_components_entry,priority:4" json:"grade_component_key"`

	GradeComponentValue float64 `gorm:"type:numeric(5,2);not null;column:grade_component_value" json:"grade_component_value"`

	GradeComponentCreatedAt time.Time `gorm:"not null;autoCreateTime;column:grade_component_created_at" json:"grade_component_created_at"`
	GradeComponentUpdatedAt time.Time `gorm:"not null;autoUpdateTime;column:grade_component_updated_at" json:"grade_component_updated_at"`
}

func (GradeComponentModel) TableName() string { return "grade_components" }

func (m *GradeComponentModel) BeforeCreate(tx *gorm.DB) error {
	if m.GradeComponentID == uuid.Nil {
		m.GradeComponentID = uuid.New()
	}
	return nil
}

// ScopeKeyPtr: nil untuk midterm/final (bentuk yang dipakai API).
func (m *GradeComponentModel) ScopeKeyPtr() *string {
	if m.GradeComponentScopeKey == "" {
		return nil
	}
	s := m.GradeComponentScopeKey
	return &s
}
