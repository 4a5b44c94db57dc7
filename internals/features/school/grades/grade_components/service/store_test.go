package service

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	histModel "schoolku_backend/internals/features/school/classes/class_histories/model"
	compModel "schoolku_backend/internals/features/school/grades/grade_components/model"
	structModel "schoolku_backend/internals/features/school/grades/grade_structures/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/testutil"
)

type storeFixture struct {
	db        *gorm.DB
	store     *Store
	structure structModel.GradeStructureModel
	classID   uuid.UUID
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()
	db := testutil.DB(t)
	_, terms := testutil.Year(t, db, "2025/2026", true)
	class := testutil.Class(t, db, 2, "A")
	subj, _ := testutil.Offering(t, db, class.ClassID, "MTK")
	st := testutil.Structure(t, db, subj.SubjectID, class.ClassID, terms[0], testutil.SimpleSchema())
	return &storeFixture{db: db, store: NewStore(db, testutil.Logger(t)), structure: st, classID: class.ClassID}
}

func TestRecord_UpsertKeepsLatestValue(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	s := testutil.Student(t, f.db, "Rina", &f.classID)

	in := RecordInput{StudentID: s.StudentID, StructureID: f.structure.GradeStructureID, ScopeKey: testutil.Ptr("lm1"), ComponentKey: "f1", Value: 70}
	_, err := f.store.Record(ctx, in)
	require.NoError(t, err)

	in.Value = 92.5
	got, err := f.store.Record(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 92.5, got.GradeComponentValue)

	var rows []compModel.GradeComponentModel
	require.NoError(t, f.db.Where("grade_component_student_id = ?", s.StudentID).Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, 92.5, rows[0].GradeComponentValue)
	assert.Equal(t, "lm1", *rows[0].ScopeKeyPtr())
}

func TestRecord_MidtermAndFinalUseEmptyScope(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	s := testutil.Student(t, f.db, "Sari", &f.classID)

	for _, v := range []float64{60, 75} {
		_, err := f.store.Record(ctx, RecordInput{StudentID: s.StudentID, StructureID: f.structure.GradeStructureID, ComponentKey: "uts", Value: v})
		require.NoError(t, err)
	}
	_, err := f.store.Record(ctx, RecordInput{StudentID: s.StudentID, StructureID: f.structure.GradeStructureID, ScopeKey: testutil.Ptr(""), ComponentKey: "uas", Value: 0})
	require.NoError(t, err)

	rows, err := ListForStudent(ctx, f.db, s.StudentID, f.structure.GradeStructureID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Nil(t, r.ScopeKeyPtr())
	}
	n, err := CountByStructure(ctx, f.db, f.structure.GradeStructureID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestRecord_Validation(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	member := testutil.Student(t, f.db, "Tono", &f.classID)
	other := testutil.Class(t, f.db, 3, "A")
	outsider := testutil.Student(t, f.db, "Umar", &other.ClassID)
	sid := f.structure.GradeStructureID

	tests := []struct {
		name  string
		in    RecordInput
		field string
	}{
		{"value above range", RecordInput{StudentID: member.StudentID, StructureID: sid, ComponentKey: "uts", Value: 100.5}, "value"},
		{"value below range", RecordInput{StudentID: member.StudentID, StructureID: sid, ComponentKey: "uts", Value: -1}, "value"},
		{"value NaN", RecordInput{StudentID: member.StudentID, StructureID: sid, ComponentKey: "uts", Value: math.NaN()}, "value"},
		{"unknown scope", RecordInput{StudentID: member.StudentID, StructureID: sid, ScopeKey: testutil.Ptr("lm9"), ComponentKey: "f1", Value: 50}, "scope_key"},
		{"unknown component", RecordInput{StudentID: member.StudentID, StructureID: sid, ScopeKey: testutil.Ptr("lm1"), ComponentKey: "f9", Value: 50}, "component_key"},
		{"formative without scope", RecordInput{StudentID: member.StudentID, StructureID: sid, ComponentKey: "f1", Value: 50}, "component_key"},
		{"unknown student", RecordInput{StudentID: uuid.New(), StructureID: sid, ComponentKey: "uts", Value: 50}, "student_id"},
		{"student outside class", RecordInput{StudentID: outsider.StudentID, StructureID: sid, ComponentKey: "uts", Value: 50}, "student_id"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.store.Record(ctx, tc.in)
			var ve *helper.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tc.field)
		})
	}

	_, err := f.store.Record(ctx, RecordInput{StudentID: member.StudentID, StructureID: uuid.New(), ComponentKey: "uts", Value: 50})
	var nf *helper.NotFoundError
	assert.ErrorAs(t, err, &nf)

	n, err := CountByStructure(ctx, f.db, sid)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecord_RoundsToTwoDecimals(t *testing.T) {
	f := newStoreFixture(t)
	member := testutil.Student(t, f.db, "Vina", &f.classID)

	got, err := f.store.Record(context.Background(), RecordInput{
		StudentID:    member.StudentID,
		StructureID:  f.structure.GradeStructureID,
		ComponentKey: "uts",
		Value:        80.005,
	})
	require.NoError(t, err)
	assert.Equal(t, 80.01, got.GradeComponentValue)
}

func TestRecord_LedgerDecidesMembership(t *testing.T) {
	f := newStoreFixture(t)
	ctx := context.Background()
	next := testutil.Class(t, f.db, 3, "A")
	// sudah naik ke 3A, tapi ledger tahun struktur masih mencatat 2A
	s := testutil.Student(t, f.db, "Vina", &next.ClassID)
	classID := f.classID
	require.NoError(t, f.db.Create(&histModel.ClassHistoryModel{
		ClassHistoryStudentID:      s.StudentID,
		ClassHistoryAcademicYearID: f.structure.GradeStructureAcademicYearID,
		ClassHistoryClassID:        &classID,
		ClassHistoryAction:         histModel.ActionPromote,
	}).Error)

	_, err := f.store.Record(ctx, RecordInput{StudentID: s.StudentID, StructureID: f.structure.GradeStructureID, ComponentKey: "uas", Value: 81})
	require.NoError(t, err)
}
