package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	subjectModel "schoolku_backend/internals/features/school/academics/subjects/model"
	compSvc "schoolku_backend/internals/features/school/grades/grade_components/service"
	structModel "schoolku_backend/internals/features/school/grades/grade_structures/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/testutil"
)

func TestCatalog_DefineAndConflict(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	_, terms := testutil.Year(t, db, "2025/2026", true)
	class := testutil.Class(t, db, 4, "A")
	subj, _ := testutil.Offering(t, db, class.ClassID, "MTK")
	cat := NewCatalog(db, testutil.Logger(t))

	in := DefineInput{
		ClassID:   class.ClassID,
		SubjectID: subj.SubjectID,
		TermID:    terms[0].AcademicTermID,
		Schema:    testutil.SimpleSchema(),
	}
	st, err := cat.Define(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, terms[0].AcademicTermAcademicYearID, st.GradeStructureAcademicYearID)

	got, err := cat.Get(ctx, st.GradeStructureID)
	require.NoError(t, err)
	assert.Equal(t, "uts", got.Schema().Midterm.Key)
	assert.Equal(t, "Formatif 1", got.Schema().Scopes[0].Components[0].Label)

	_, err = cat.Define(ctx, in)
	var ce *helper.ConflictError
	assert.ErrorAs(t, err, &ce)
}

func TestCatalog_DefineValidatesReferences(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	class := testutil.Class(t, db, 4, "A")
	other := testutil.Class(t, db, 5, "A")
	subj, _ := testutil.Offering(t, db, other.ClassID, "IPA")
	cat := NewCatalog(db, testutil.Logger(t))

	bad := testutil.SimpleSchema()
	bad.Final = nil

	_, err := cat.Define(ctx, DefineInput{
		ClassID:   class.ClassID,
		SubjectID: subj.SubjectID,
		TermID:    uuid.New(),
		Schema:    bad,
	})
	var ve *helper.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "subject_id")
	assert.Contains(t, ve.Fields, "term_id")
	assert.Contains(t, ve.Fields, "schema.final")

	_, err = cat.Define(ctx, DefineInput{ClassID: uuid.New(), SubjectID: subj.SubjectID, TermID: uuid.New(), Schema: testutil.SimpleSchema()})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "class_id")
}

func TestCatalog_DefineRejectsInactiveOffering(t *testing.T) {
	db := testutil.DB(t)
	_, terms := testutil.Year(t, db, "2025/2026", true)
	class := testutil.Class(t, db, 4, "A")
	subj, cs := testutil.Offering(t, db, class.ClassID, "IPS")
	require.NoError(t, db.Model(&subjectModel.ClassSubjectModel{}).
		Where("class_subject_id = ?", cs.ClassSubjectID).
		Update("class_subject_is_active", false).Error)

	_, err := NewCatalog(db, nil).Define(context.Background(), DefineInput{
		ClassID: class.ClassID, SubjectID: subj.SubjectID, TermID: terms[0].AcademicTermID, Schema: testutil.SimpleSchema(),
	})
	var ve *helper.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "subject_id")
}

func TestCatalog_FrozenOnceComponentsExist(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	_, terms := testutil.Year(t, db, "2025/2026", true)
	class := testutil.Class(t, db, 4, "A")
	subj, _ := testutil.Offering(t, db, class.ClassID, "BIN")
	student := testutil.Student(t, db, "Putri", &class.ClassID)
	cat := NewCatalog(db, testutil.Logger(t))

	st, err := cat.Define(ctx, DefineInput{
		ClassID: class.ClassID, SubjectID: subj.SubjectID, TermID: terms[0].AcademicTermID, Schema: testutil.SimpleSchema(),
	})
	require.NoError(t, err)

	// belum ada komponen: update boleh
	changed := testutil.SimpleSchema()
	changed.Scopes[0].ScopeLabel = "LM 1"
	_, err = cat.Update(ctx, st.GradeStructureID, changed)
	require.NoError(t, err)

	_, err = cat.Update(ctx, st.GradeStructureID, structModel.GradeSchema{})
	var ve *helper.ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = compSvc.NewStore(db, nil).Record(ctx, compSvc.RecordInput{
		StudentID:    student.StudentID,
		StructureID:  st.GradeStructureID,
		ScopeKey:     testutil.Ptr("lm1"),
		ComponentKey: "f1",
		Value:        88,
	})
	require.NoError(t, err)

	again := testutil.SimpleSchema()
	again.Scopes[0].Components = again.Scopes[0].Components[:1]
	_, err = cat.Update(ctx, st.GradeStructureID, again)
	var ce *helper.ConflictError
	require.ErrorAs(t, err, &ce)
	assert.EqualValues(t, 1, ce.Blocking)

	// schema rusak tetap 409 selama masih dirujuk
	_, err = cat.Update(ctx, st.GradeStructureID, structModel.GradeSchema{})
	require.ErrorAs(t, err, &ce)
	assert.EqualValues(t, 1, ce.Blocking)

	err = cat.Delete(ctx, st.GradeStructureID)
	require.ErrorAs(t, err, &ce)
	assert.EqualValues(t, 1, ce.Blocking)

	got, err := cat.Get(ctx, st.GradeStructureID)
	require.NoError(t, err)
	assert.Equal(t, "LM 1", got.Schema().Scopes[0].ScopeLabel)
	assert.Len(t, got.Schema().Scopes[0].Components, 2)
}

func TestCatalog_DeleteAndNotFound(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	_, terms := testutil.Year(t, db, "2025/2026", true)
	class := testutil.Class(t, db, 4, "A")
	subj, _ := testutil.Offering(t, db, class.ClassID, "PAI")
	st := testutil.Structure(t, db, subj.SubjectID, class.ClassID, terms[1], testutil.SimpleSchema())
	cat := NewCatalog(db, nil)

	require.NoError(t, cat.Delete(ctx, st.GradeStructureID))

	var nf *helper.NotFoundError
	_, err := cat.Get(ctx, st.GradeStructureID)
	assert.ErrorAs(t, err, &nf)
	assert.ErrorAs(t, cat.Delete(ctx, st.GradeStructureID), &nf)

	var n int64
	require.NoError(t, db.Model(&structModel.GradeStructureModel{}).Count(&n).Error)
	assert.Zero(t, n)
}
