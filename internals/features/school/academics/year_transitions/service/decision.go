// file: internals/features/school/academics/year_transitions/service/decision.go
package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	studentModel "schoolku_backend/internals/features/lembaga/teachers_students/model"
	histModel "schoolku_backend/internals/features/school/classes/class_histories/model"
	classModel "schoolku_backend/internals/features/school/classes/classes/model"
	classSvc "schoolku_backend/internals/features/school/classes/classes/service"
)

type decision struct {
	action  string
	from    *classModel.ClassModel
	to      *classModel.ClassModel
	alumnus bool
	// repeat tanpa kelas aktif tetap menyimpan pointer lama
	keepID *uuid.UUID
}

func (d decision) toID() *uuid.UUID {
	if d.to != nil {
		id := d.to.ClassID
		return &id
	}
	return d.keepID
}

// decide: aturan pertama yang cocok menang.
//  1. repeat → kelas tetap (termasuk level teratas)
//  2. tanpa kelas → no_class_assigned
//  3. kelas tidak active → kelas_not_found
//  4. level teratas → graduate
//  5. level+1 (section sama, lalu mana saja) → promote; tidak ada → graduate_fallback_no_next_class
func decide(ctx context.Context, tx *gorm.DB, dir *classSvc.Directory, st *studentModel.StudentModel, isRepeat bool) (decision, error) {
	var (
		cur *classModel.ClassModel
		err error
	)
	if st.StudentCurrentClassID != nil {
		if cur, err = dir.FindActive(ctx, tx, *st.StudentCurrentClassID); err != nil {
			return decision{}, err
		}
	}

	switch {
	case isRepeat:
		return decision{action: histModel.ActionRepeat, from: cur, to: cur, keepID: st.StudentCurrentClassID}, nil
	case st.StudentCurrentClassID == nil:
		return decision{action: histModel.ActionNoClassAssigned}, nil
	case cur == nil:
		return decision{action: histModel.ActionClassNotFound}, nil
	case cur.ClassLevel >= classModel.TopClassLevel:
		return decision{action: histModel.ActionGraduate, from: cur, alumnus: true}, nil
	}

	next, err := dir.FindNextLevel(ctx, tx, cur)
	if err != nil {
		return decision{}, err
	}
	if next == nil {
		return decision{action: histModel.ActionGraduateNoNext, from: cur, alumnus: true}, nil
	}
	return decision{action: histModel.ActionPromote, from: cur, to: next}, nil
}

func (d decision) preview(st *studentModel.StudentModel) PreviewRow {
	p := PreviewRow{
		StudentID:   st.StudentID,
		StudentName: st.StudentName,
		FromClassID: st.StudentCurrentClassID,
		ToClassID:   d.toID(),
		Action:      d.action,
	}
	if d.from != nil {
		p.FromClassName = d.from.ClassName
	}
	if d.to != nil {
		p.ToClassName = d.to.ClassName
	}
	return p
}
