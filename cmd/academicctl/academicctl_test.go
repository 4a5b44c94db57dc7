package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	studentModel "schoolku_backend/internals/features/lembaga/teachers_students/model"
	transitionSvc "schoolku_backend/internals/features/school/academics/year_transitions/service"
	"schoolku_backend/internals/helpers/locker"
	"schoolku_backend/internals/testutil"
)

// useDB mengarahkan CLI ke DB test dan menangkap output.
func useDB(t *testing.T, db *gorm.DB) *bytes.Buffer {
	t.Helper()
	origOpen, origLocker, origOut := openDB, newLocker, stdout
	buf := &bytes.Buffer{}
	openDB = func(*zap.Logger) (*gorm.DB, error) { return db, nil }
	newLocker = func() locker.Locker { return locker.NewLocal() }
	stdout = buf
	t.Cleanup(func() {
		openDB, newLocker, stdout = origOpen, origLocker, origOut
		jsonOut = false
	})
	return buf
}

func TestParseRepeatYAML(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	t.Run("map form", func(t *testing.T) {
		ids, err := parseRepeatYAML([]byte("repeat_student_ids:\n  - " + a.String() + "\n  - " + b.String() + "\n"))
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a, b}, ids)
	})

	t.Run("plain list", func(t *testing.T) {
		ids, err := parseRepeatYAML([]byte("- " + a.String() + "\n- \"\"\n"))
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a}, ids)
	})

	t.Run("bad id", func(t *testing.T) {
		_, err := parseRepeatYAML([]byte("- bukan-uuid\n"))
		assert.Error(t, err)
	})

	t.Run("unknown shape", func(t *testing.T) {
		_, err := parseRepeatYAML([]byte("foo: bar\n"))
		assert.Error(t, err)
	})
}

func TestTransitionOpts_MergesFlagAndFile(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	path := filepath.Join(t.TempDir(), "repeat.yaml")
	require.NoError(t, os.WriteFile(path, []byte("repeat_student_ids: ["+b.String()+"]\n"), 0o600))

	req, err := transitionOpts{label: " 2026/2027 ", repeat: []string{a.String()}, repeatFile: path, dryRun: true}.request()
	require.NoError(t, err)
	assert.Equal(t, "2026/2027", req.NewYearLabel)
	assert.Equal(t, []uuid.UUID{a, b}, req.RepeatStudentIDs)
	assert.True(t, req.DryRun)
}

func TestRunTransition_CommitsAgainstActiveYear(t *testing.T) {
	db := testutil.DB(t)
	testutil.Year(t, db, "2025/2026", true)
	c1 := testutil.Class(t, db, 1, "A")
	testutil.Class(t, db, 2, "A")
	s := testutil.Student(t, db, "Aisyah", &c1.ClassID)

	out := useDB(t, db)
	require.NoError(t, runTransition(context.Background(), transitionOpts{}))
	assert.Contains(t, out.String(), "2025/2026 → 2026/2027")
	assert.Contains(t, out.String(), "naik: 1")

	var got studentModel.StudentModel
	require.NoError(t, db.Where("student_id = ?", s.StudentID).Take(&got).Error)
	require.NotNil(t, got.StudentCurrentClassID)
	assert.NotEqual(t, c1.ClassID, *got.StudentCurrentClassID)
}

func TestRunTransition_JSONDryRun(t *testing.T) {
	db := testutil.DB(t)
	testutil.Year(t, db, "2025/2026", true)
	c1 := testutil.Class(t, db, 1, "A")
	testutil.Class(t, db, 2, "A")
	testutil.Student(t, db, "Budi", &c1.ClassID)

	out := useDB(t, db)
	jsonOut = true
	require.NoError(t, runTransition(context.Background(), transitionOpts{dryRun: true}))
	assert.Contains(t, out.String(), `"dry_run": true`)
	assert.Contains(t, out.String(), `"promoted": 1`)
	assert.Contains(t, out.String(), `"graduated": 0`)
}

func TestRunTransition_TruncatedPreviewHint(t *testing.T) {
	db := testutil.DB(t)
	testutil.Year(t, db, "2025/2026", true)
	rows := make([]studentModel.StudentModel, transitionSvc.PreviewCap+1)
	for i := range rows {
		rows[i] = studentModel.StudentModel{StudentName: "Siswa"}
	}
	require.NoError(t, db.CreateInBatches(rows, 100).Error)

	out := useDB(t, db)
	require.NoError(t, runTransition(context.Background(), transitionOpts{dryRun: true}))
	assert.Contains(t, out.String(), "tanpa kelas: 501")
	assert.Contains(t, out.String(), "preview dipotong di 500 baris")
	assert.NotContains(t, out.String(), "--json")
}

func TestRunTransition_BusyScope(t *testing.T) {
	db := testutil.DB(t)
	testutil.Year(t, db, "2025/2026", true)
	useDB(t, db)

	held := locker.NewLocal()
	_, err := held.Acquire(context.Background(), locker.ScopeYearTransition, locker.DefaultTTL)
	require.NoError(t, err)
	newLocker = func() locker.Locker { return held }

	err = runTransition(context.Background(), transitionOpts{})
	assert.ErrorIs(t, err, locker.ErrBusy)
}

func TestRunCompute_RejectsBadIDs(t *testing.T) {
	useDB(t, testutil.DB(t))
	assert.Error(t, runCompute(context.Background(), "x", uuid.NewString()))
	assert.Error(t, runCompute(context.Background(), uuid.NewString(), "y"))
}
