package testutil

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	studentModel "schoolku_backend/internals/features/lembaga/teachers_students/model"
	termModel "schoolku_backend/internals/features/school/academics/academic_terms/model"
	subjectModel "schoolku_backend/internals/features/school/academics/subjects/model"
	classModel "schoolku_backend/internals/features/school/classes/classes/model"
	homeroomModel "schoolku_backend/internals/features/school/classes/homerooms/model"
	structModel "schoolku_backend/internals/features/school/grades/grade_structures/model"
)

func mustCreate(tb testing.TB, db *gorm.DB, v any) {
	tb.Helper()
	if err := db.Create(v).Error; err != nil {
		tb.Fatalf("fixture %T: %v", v, err)
	}
}

// Year membuat tahun ajaran + dua semester. Semester ganjil ikut aktif kalau tahun aktif.
func Year(tb testing.TB, db *gorm.DB, label string, active bool) (termModel.AcademicYearModel, []termModel.AcademicTermModel) {
	tb.Helper()
	y := termModel.AcademicYearModel{AcademicYearLabel: label, AcademicYearIsActive: active}
	mustCreate(tb, db, &y)

	terms := make([]termModel.AcademicTermModel, 0, len(termModel.TermNames))
	for _, name := range termModel.TermNames {
		t := termModel.AcademicTermModel{
			AcademicTermAcademicYearID: y.AcademicYearID,
			AcademicTermName:           name,
			AcademicTermIsActive:       active && name == termModel.TermGanjil,
		}
		mustCreate(tb, db, &t)
		terms = append(terms, t)
	}
	return y, terms
}

func Class(tb testing.TB, db *gorm.DB, level int, section string) classModel.ClassModel {
	tb.Helper()
	c := classModel.ClassModel{ClassLevel: level, ClassSection: section}
	mustCreate(tb, db, &c)
	return c
}

// Tombstone menandai baris kelas/siswa/mapel sebagai tombstoned.
func Tombstone(tb testing.TB, db *gorm.DB, model any, column string, id uuid.UUID) {
	tb.Helper()
	statusCol := column[:len(column)-len("_id")] + "_status"
	if err := db.Model(model).Where(column+" = ?", id).Update(statusCol, constants.StatusTombstoned).Error; err != nil {
		tb.Fatalf("tombstone %T: %v", model, err)
	}
}

func Student(tb testing.TB, db *gorm.DB, name string, classID *uuid.UUID) studentModel.StudentModel {
	tb.Helper()
	s := studentModel.StudentModel{StudentName: name, StudentCurrentClassID: classID}
	mustCreate(tb, db, &s)
	return s
}

// StudentWithID: id tetap supaya urutan roster bisa ditebak.
func StudentWithID(tb testing.TB, db *gorm.DB, id uuid.UUID, name string, classID *uuid.UUID) studentModel.StudentModel {
	tb.Helper()
	s := studentModel.StudentModel{StudentID: id, StudentName: name, StudentCurrentClassID: classID}
	mustCreate(tb, db, &s)
	return s
}

// Offering: mapel + penawarannya di kelas.
func Offering(tb testing.TB, db *gorm.DB, classID uuid.UUID, code string) (subjectModel.SubjectModel, subjectModel.ClassSubjectModel) {
	tb.Helper()
	s := subjectModel.SubjectModel{SubjectCode: code, SubjectName: "Mapel " + code}
	mustCreate(tb, db, &s)
	cs := subjectModel.ClassSubjectModel{
		ClassSubjectClassID:   classID,
		ClassSubjectSubjectID: s.SubjectID,
		ClassSubjectIsActive:  true,
	}
	mustCreate(tb, db, &cs)
	return s, cs
}

func Homeroom(tb testing.TB, db *gorm.DB, teacherID, classID, yearID uuid.UUID) homeroomModel.HomeroomModel {
	tb.Helper()
	h := homeroomModel.HomeroomModel{
		HomeroomTeacherID:      teacherID,
		HomeroomClassID:        classID,
		HomeroomAcademicYearID: yearID,
		HomeroomIsPrimary:      true,
	}
	mustCreate(tb, db, &h)
	return h
}

// SimpleSchema: satu lingkup dua formatif (f1, f2) + uts + uas.
func SimpleSchema() structModel.GradeSchema {
	return structModel.GradeSchema{
		Scopes: []structModel.LearningScope{{
			ScopeKey:   "lm1",
			ScopeLabel: "Lingkup Materi 1",
			Components: []structModel.ComponentDef{
				{Key: "f1", Label: "Formatif 1", Kind: structModel.KindFormative},
				{Key: "f2", Label: "Formatif 2", Kind: structModel.KindFormative},
			},
		}},
		Midterm: &structModel.ComponentDef{Key: "uts", Label: "UTS", Kind: structModel.KindMidterm},
		Final:   &structModel.ComponentDef{Key: "uas", Label: "UAS", Kind: structModel.KindFinal},
	}
}

// Structure menyimpan struktur langsung (tanpa validasi catalog).
func Structure(tb testing.TB, db *gorm.DB, subjectID, classID uuid.UUID, term termModel.AcademicTermModel, schema structModel.GradeSchema) structModel.GradeStructureModel {
	tb.Helper()
	norm, err := schema.Normalized()
	if err != nil {
		tb.Fatalf("schema fixture: %v", err)
	}
	m := structModel.GradeStructureModel{
		GradeStructureSubjectID:      subjectID,
		GradeStructureClassID:        classID,
		GradeStructureTermID:         term.AcademicTermID,
		GradeStructureAcademicYearID: term.AcademicTermAcademicYearID,
		GradeStructureSchema:         datatypes.NewJSONType(norm),
	}
	mustCreate(tb, db, &m)
	return m
}

func Ptr[T any](v T) *T { return &v }
