package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	studentModel "schoolku_backend/internals/features/lembaga/teachers_students/model"
	subjectModel "schoolku_backend/internals/features/school/academics/subjects/model"
	histModel "schoolku_backend/internals/features/school/classes/class_histories/model"
	finalModel "schoolku_backend/internals/features/school/grades/final_grades/model"
	finalSvc "schoolku_backend/internals/features/school/grades/final_grades/service"
	compModel "schoolku_backend/internals/features/school/grades/grade_components/model"
	compSvc "schoolku_backend/internals/features/school/grades/grade_components/service"
	structModel "schoolku_backend/internals/features/school/grades/grade_structures/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/testutil"
)

type aggFixture struct {
	db        *gorm.DB
	engine    *Engine
	store     *compSvc.Store
	classID   uuid.UUID
	subject   subjectModel.SubjectModel
	offering  subjectModel.ClassSubjectModel
	structure structModel.GradeStructureModel
}

func newAggFixture(t *testing.T) *aggFixture {
	t.Helper()
	db := testutil.DB(t)
	_, terms := testutil.Year(t, db, "2025/2026", true)
	class := testutil.Class(t, db, 5, "A")
	subj, cs := testutil.Offering(t, db, class.ClassID, "MTK")
	st := testutil.Structure(t, db, subj.SubjectID, class.ClassID, terms[0], testutil.SimpleSchema())
	return &aggFixture{
		db:        db,
		engine:    NewEngine(db, testutil.Logger(t)),
		store:     compSvc.NewStore(db, testutil.Logger(t)),
		classID:   class.ClassID,
		subject:   subj,
		offering:  cs,
		structure: st,
	}
}

// record: map key "scope.key" atau "key" untuk uts/uas.
func (f *aggFixture) record(t *testing.T, s studentModel.StudentModel, values map[string]float64) {
	t.Helper()
	for k, v := range values {
		in := compSvc.RecordInput{StudentID: s.StudentID, StructureID: f.structure.GradeStructureID, ComponentKey: k, Value: v}
		if k == "f1" || k == "f2" {
			in.ScopeKey = testutil.Ptr("lm1")
		}
		_, err := f.store.Record(context.Background(), in)
		require.NoError(t, err)
	}
}

func (f *aggFixture) finals(t *testing.T) []finalModel.FinalGradeModel {
	t.Helper()
	var rows []finalModel.FinalGradeModel
	require.NoError(t, f.db.Order("final_grade_student_id").Find(&rows).Error)
	return rows
}

func TestComputeFinal_ExampleFormula(t *testing.T) {
	f := newAggFixture(t)
	s := testutil.Student(t, f.db, "Wati", &f.classID)
	f.record(t, s, map[string]float64{"f1": 80, "f2": 90, "uts": 70, "uas": 85})

	res, err := f.engine.ComputeFinal(context.Background(), f.classID, f.structure.GradeStructureID)
	require.NoError(t, err)
	require.Len(t, res.Success, 1)
	assert.Empty(t, res.SkippedIncomplete)
	assert.Empty(t, res.Failed)

	r := res.Success[0]
	assert.Equal(t, 85.0, *r.FormativeAverage)
	assert.Equal(t, 80.0, *r.FinalGrade)
	assert.False(t, r.OverrodeManual)

	rows := f.finals(t)
	require.Len(t, rows, 1)
	assert.Equal(t, 80.0, *rows[0].FinalGradeValue)
	assert.Equal(t, finalModel.SourceComputed, rows[0].FinalGradeSource)
	assert.Equal(t, ComputedNote(f.structure.GradeStructureID), *rows[0].FinalGradeNote)
	assert.NotNil(t, rows[0].FinalGradeComputedAt)
	assert.Equal(t, f.structure.GradeStructureTermID, rows[0].FinalGradeTermID)
}

func TestComputeFinal_IsIdempotent(t *testing.T) {
	f := newAggFixture(t)
	s := testutil.Student(t, f.db, "Yusuf", &f.classID)
	f.record(t, s, map[string]float64{"f1": 77, "f2": 81, "uts": 68, "uas": 91})

	first, err := f.engine.ComputeFinal(context.Background(), f.classID, f.structure.GradeStructureID)
	require.NoError(t, err)
	second, err := f.engine.ComputeFinal(context.Background(), f.classID, f.structure.GradeStructureID)
	require.NoError(t, err)

	assert.Equal(t, *first.Success[0].FinalGrade, *second.Success[0].FinalGrade)
	assert.Equal(t, 79.33, *second.Success[0].FinalGrade)
	assert.Len(t, f.finals(t), 1)
}

func TestComputeFinal_MissingMidtermIsSkipped(t *testing.T) {
	f := newAggFixture(t)
	s := testutil.Student(t, f.db, "Zaki", &f.classID)
	f.record(t, s, map[string]float64{"f1": 100, "f2": 100, "uas": 100})

	res, err := f.engine.ComputeFinal(context.Background(), f.classID, f.structure.GradeStructureID)
	require.NoError(t, err)
	assert.Empty(t, res.Success)
	require.Len(t, res.SkippedIncomplete, 1)
	assert.Equal(t, ReasonMissingRequired, res.SkippedIncomplete[0].Reason)
	assert.Equal(t, []string{"UTS"}, res.SkippedIncomplete[0].Missing)
	assert.Empty(t, f.finals(t))
}

func TestComputeFinal_NoFormativeIsSkipped(t *testing.T) {
	f := newAggFixture(t)
	s := testutil.Student(t, f.db, "Agus", &f.classID)
	f.record(t, s, map[string]float64{"uts": 70, "uas": 80})

	res, err := f.engine.ComputeFinal(context.Background(), f.classID, f.structure.GradeStructureID)
	require.NoError(t, err)
	require.Len(t, res.SkippedIncomplete, 1)
	r := res.SkippedIncomplete[0]
	assert.Equal(t, ReasonNoFormative, r.Reason)
	assert.Equal(t, []string{"Lingkup Materi 1"}, r.EmptyScopes)
}

func TestComputeFinal_PartialScopeStillComputes(t *testing.T) {
	f := newAggFixture(t)
	s := testutil.Student(t, f.db, "Bayu", &f.classID)
	f.record(t, s, map[string]float64{"f1": 90, "uts": 60, "uas": 75})

	res, err := f.engine.ComputeFinal(context.Background(), f.classID, f.structure.GradeStructureID)
	require.NoError(t, err)
	require.Len(t, res.Success, 1)
	r := res.Success[0]
	assert.Equal(t, 75.0, *r.FinalGrade)
	require.Len(t, r.PartialScopes, 1)
	assert.Equal(t, []string{"Formatif 2"}, r.PartialScopes[0].MissingLabels)
}

func TestComputeFinal_OutOfRangeValueFails(t *testing.T) {
	f := newAggFixture(t)
	s := testutil.Student(t, f.db, "Cahya", &f.classID)
	f.record(t, s, map[string]float64{"f1": 90, "f2": 90, "uts": 60})
	// nilai rusak ditulis langsung (bypass validasi input)
	require.NoError(t, f.db.Create(&compModel.GradeComponentModel{
		GradeComponentStudentID:   s.StudentID,
		GradeComponentStructureID: f.structure.GradeStructureID,
		GradeComponentKey:         "uas",
		GradeComponentValue:       140,
	}).Error)

	res, err := f.engine.ComputeFinal(context.Background(), f.classID, f.structure.GradeStructureID)
	require.NoError(t, err)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, ReasonValueOutOfRange, res.Failed[0].Reason)
	assert.Equal(t, []string{"uas"}, res.Failed[0].InvalidKeys)
	assert.Empty(t, f.finals(t))
}

func TestComputeFinal_RosterFromLedgerAndCurrentClass(t *testing.T) {
	f := newAggFixture(t)
	next := testutil.Class(t, f.db, 6, "A")

	// a: sudah pindah kelas, ledger tahun struktur masih di kelas ini
	a := testutil.StudentWithID(t, f.db, uuid.MustParse("00000000-0000-0000-0000-00000000000a"), "Ani", &next.ClassID)
	// b: tanpa ledger, kelas saat ini cocok
	b := testutil.StudentWithID(t, f.db, uuid.MustParse("00000000-0000-0000-0000-00000000000b"), "Beni", &f.classID)
	// c: kelas saat ini cocok, tapi ledger tahun struktur di kelas lain
	c := testutil.StudentWithID(t, f.db, uuid.MustParse("00000000-0000-0000-0000-00000000000c"), "Caca", &f.classID)

	classID, nextID := f.classID, next.ClassID
	for _, h := range []histModel.ClassHistoryModel{
		{ClassHistoryStudentID: a.StudentID, ClassHistoryAcademicYearID: f.structure.GradeStructureAcademicYearID, ClassHistoryClassID: &classID, ClassHistoryAction: histModel.ActionPromote},
		{ClassHistoryStudentID: c.StudentID, ClassHistoryAcademicYearID: f.structure.GradeStructureAcademicYearID, ClassHistoryClassID: &nextID, ClassHistoryAction: histModel.ActionPromote},
	} {
		require.NoError(t, f.db.Create(&h).Error)
	}

	res, err := f.engine.ComputeFinal(context.Background(), f.classID, f.structure.GradeStructureID)
	require.NoError(t, err)
	require.Len(t, res.SkippedIncomplete, 2)
	assert.Equal(t, a.StudentID, res.SkippedIncomplete[0].StudentID)
	assert.Equal(t, b.StudentID, res.SkippedIncomplete[1].StudentID)
}

func TestComputeFinal_OverwritesManualAndFlagsIt(t *testing.T) {
	f := newAggFixture(t)
	s := testutil.Student(t, f.db, "Dodi", &f.classID)
	f.record(t, s, map[string]float64{"f1": 80, "f2": 90, "uts": 70, "uas": 85})

	_, err := finalSvc.NewStore(f.db, nil).UpsertManual(context.Background(), finalSvc.ManualInput{
		StudentID: s.StudentID,
		SubjectID: f.subject.SubjectID,
		TermID:    f.structure.GradeStructureTermID,
		Value:     testutil.Ptr(95.0),
		Note:      testutil.Ptr("remedial"),
	})
	require.NoError(t, err)

	res, err := f.engine.ComputeFinal(context.Background(), f.classID, f.structure.GradeStructureID)
	require.NoError(t, err)
	require.Len(t, res.Success, 1)
	assert.True(t, res.Success[0].OverrodeManual)

	rows := f.finals(t)
	require.Len(t, rows, 1)
	assert.Equal(t, 80.0, *rows[0].FinalGradeValue)
	assert.Equal(t, finalModel.SourceComputed, rows[0].FinalGradeSource)
}

func TestComputeFinal_Guards(t *testing.T) {
	f := newAggFixture(t)
	other := testutil.Class(t, f.db, 5, "B")
	var pe *helper.PreconditionError

	_, err := f.engine.ComputeFinal(context.Background(), other.ClassID, f.structure.GradeStructureID)
	assert.ErrorAs(t, err, &pe)

	_, err = f.engine.ComputeFinal(context.Background(), f.classID, uuid.New())
	assert.ErrorAs(t, err, &pe)

	require.NoError(t, f.db.Model(&subjectModel.ClassSubjectModel{}).
		Where("class_subject_id = ?", f.offering.ClassSubjectID).
		Update("class_subject_is_active", false).Error)
	_, err = f.engine.ComputeFinal(context.Background(), f.classID, f.structure.GradeStructureID)
	assert.ErrorAs(t, err, &pe)
}

