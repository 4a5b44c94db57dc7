package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	termModel "schoolku_backend/internals/features/school/academics/academic_terms/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/testutil"
)

func TestResolveActiveContext(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	_, err := ResolveActiveContext(ctx, db)
	var pe *helper.PreconditionError
	require.ErrorAs(t, err, &pe)

	testutil.Year(t, db, "2024/2025", false)
	y, terms := testutil.Year(t, db, "2025/2026", true)

	ac, err := ResolveActiveContext(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, y.AcademicYearID, ac.YearID)
	assert.Equal(t, "2025/2026", ac.YearLabel)
	assert.Equal(t, terms[0].AcademicTermID, ac.TermID)
	assert.Equal(t, termModel.TermGanjil, ac.TermName)
}

func TestContextForYear(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	y, _ := testutil.Year(t, db, "2023/2024", false)

	ac, err := ContextForYear(ctx, db, y.AcademicYearID)
	require.NoError(t, err)
	assert.Equal(t, "2023/2024", ac.YearLabel)
	assert.Equal(t, uuid.Nil, ac.TermID)

	_, err = ContextForYear(ctx, db, uuid.New())
	var ve *helper.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestCreateAndActivateYear(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	old, _ := testutil.Year(t, db, "2025/2026", true)

	y, err := CreateYearWithTerms(ctx, db, " 2026/2027 ")
	require.NoError(t, err)
	assert.Equal(t, "2026/2027", y.AcademicYearLabel)
	require.NoError(t, ActivateYear(ctx, db, y.AcademicYearID))

	terms, err := ListTerms(ctx, db, y.AcademicYearID)
	require.NoError(t, err)
	require.Len(t, terms, 2)
	for _, tm := range terms {
		assert.Equal(t, tm.AcademicTermName == termModel.TermGanjil, tm.AcademicTermIsActive, tm.AcademicTermName)
	}

	prev, err := GetYear(ctx, db, old.AcademicYearID)
	require.NoError(t, err)
	assert.False(t, prev.AcademicYearIsActive)

	found, err := FindYearByLabel(ctx, db, "2026/2027")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.AcademicYearIsActive)

	rows, total, err := ListYears(ctx, db, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "2026/2027", rows[0].AcademicYearLabel)
}
