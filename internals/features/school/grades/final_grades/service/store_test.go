package service

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	finalModel "schoolku_backend/internals/features/school/grades/final_grades/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/testutil"
)

func TestUpsertManual_WritesAndReplaces(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	_, terms := testutil.Year(t, db, "2025/2026", true)
	class := testutil.Class(t, db, 1, "A")
	subj, _ := testutil.Offering(t, db, class.ClassID, "SBK")
	s := testutil.Student(t, db, "Eli", &class.ClassID)
	store := NewStore(db, testutil.Logger(t))

	in := ManualInput{
		StudentID: s.StudentID,
		SubjectID: subj.SubjectID,
		TermID:    terms[1].AcademicTermID,
		ClassID:   &class.ClassID,
		Value:     testutil.Ptr(77.5),
		Note:      testutil.Ptr("  susulan  "),
	}
	got, err := store.UpsertManual(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, finalModel.SourceManual, got.FinalGradeSource)
	assert.Equal(t, 77.5, *got.FinalGradeValue)
	assert.Equal(t, "susulan", *got.FinalGradeNote)
	assert.Nil(t, got.FinalGradeComputedAt)
	assert.Equal(t, terms[1].AcademicTermAcademicYearID, got.FinalGradeAcademicYearID)

	// null = sengaja tanpa nilai
	in.Value = nil
	got, err = store.UpsertManual(ctx, in)
	require.NoError(t, err)
	assert.Nil(t, got.FinalGradeValue)

	rows, total, err := List(ctx, db, ListFilter{ClassID: &class.ClassID, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
}

func TestUpsertManual_Validation(t *testing.T) {
	db := testutil.DB(t)
	_, err := NewStore(db, nil).UpsertManual(context.Background(), ManualInput{
		StudentID: uuid.New(),
		SubjectID: uuid.New(),
		TermID:    uuid.New(),
		Value:     testutil.Ptr(101.0),
	})
	var ve *helper.ValidationError
	require.ErrorAs(t, err, &ve)
	for _, f := range []string{"value", "student_id", "subject_id", "term_id"} {
		assert.Contains(t, ve.Fields, f)
	}
}

func TestUpsertManual_RejectsNaN(t *testing.T) {
	db := testutil.DB(t)
	_, err := NewStore(db, nil).UpsertManual(context.Background(), ManualInput{
		StudentID: uuid.New(),
		SubjectID: uuid.New(),
		TermID:    uuid.New(),
		Value:     testutil.Ptr(math.NaN()),
	})
	var ve *helper.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "value")
}
