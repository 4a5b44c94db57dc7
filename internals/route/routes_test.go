package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/locker"
	"schoolku_backend/internals/testutil"
)

const testSecret = "rahasia-test"

func newApp(t *testing.T, db *gorm.DB, lk locker.Locker) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error { return helper.FromServiceError(c, err) },
	})
	SetupRoutes(app, db, Deps{Locker: lk, Log: testutil.Logger(t), JWTSecret: testSecret})
	return app
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   uuid.NewString(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func do(t *testing.T, app *fiber.App, method, path, role string, body any) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, role))
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestAuthAndRoles(t *testing.T) {
	db := testutil.DB(t)
	app := newApp(t, db, locker.NewLocal())

	code, _ := do(t, app, http.MethodGet, "/api/a/academic-context", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = do(t, app, http.MethodGet, "/api/a/academic-context", constants.RoleTeacher, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = do(t, app, http.MethodGet, "/api/t/final-grades", constants.RoleUser, nil)
	assert.Equal(t, fiber.StatusForbidden, code)

	code, _ = do(t, app, http.MethodGet, "/api/t/final-grades", constants.RoleAdmin, nil)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestAcademicContext_NoActiveYearIs412(t *testing.T) {
	db := testutil.DB(t)
	app := newApp(t, db, locker.NewLocal())

	code, body := do(t, app, http.MethodGet, "/api/a/academic-context", constants.RoleAdmin, nil)
	assert.Equal(t, fiber.StatusPreconditionFailed, code)
	assert.Equal(t, "PRECONDITION_FAILED", body["error_code"])
}

func TestYearTransition_DryRunAndBusy(t *testing.T) {
	db := testutil.DB(t)
	testutil.Year(t, db, "2025/2026", true)
	c1 := testutil.Class(t, db, 1, "A")
	testutil.Class(t, db, 2, "A")
	testutil.Student(t, db, "Citra", &c1.ClassID)

	lk := locker.NewLocal()
	app := newApp(t, db, lk)

	code, body := do(t, app, http.MethodPost, "/api/a/year-transitions", constants.RoleAdmin, fiber.Map{"dry_run": true})
	require.Equal(t, fiber.StatusOK, code, body)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["dry_run"])
	summary := data["summary"].(map[string]any)
	assert.EqualValues(t, 1, summary["promoted"])

	release, err := lk.Acquire(context.Background(), locker.ScopeYearTransition, time.Minute)
	require.NoError(t, err)
	defer func() { _ = release(context.Background()) }()

	code, body = do(t, app, http.MethodPost, "/api/a/year-transitions", constants.RoleOwner, fiber.Map{})
	assert.Equal(t, fiber.StatusLocked, code)
	assert.Equal(t, "LOCKED", body["error_code"])
}

func TestYearTransition_LabelEqualsOutgoingIs422(t *testing.T) {
	db := testutil.DB(t)
	testutil.Year(t, db, "2025/2026", true)
	app := newApp(t, db, locker.NewLocal())

	code, body := do(t, app, http.MethodPost, "/api/a/year-transitions", constants.RoleAdmin, fiber.Map{"new_year_label": "2025/2026"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "new_year_label")
}

func TestGradeStructure_ValidationShape(t *testing.T) {
	db := testutil.DB(t)
	app := newApp(t, db, locker.NewLocal())

	code, body := do(t, app, http.MethodPost, "/api/t/grade-structures", constants.RoleTeacher, fiber.Map{
		"schema": fiber.Map{"scopes": []any{}},
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Equal(t, "VALIDATION_ERROR", body["error_code"])
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs, "class_id")
}

func TestGradeStructure_DeleteBlockedByComponents(t *testing.T) {
	db := testutil.DB(t)
	_, terms := testutil.Year(t, db, "2025/2026", true)
	cls := testutil.Class(t, db, 1, "A")
	subj, _ := testutil.Offering(t, db, cls.ClassID, "MTK")
	st := testutil.Structure(t, db, subj.SubjectID, cls.ClassID, terms[0], testutil.SimpleSchema())
	stu := testutil.Student(t, db, "Dewi", &cls.ClassID)
	app := newApp(t, db, locker.NewLocal())

	path := "/api/t/grade-structures/" + st.GradeStructureID.String()
	code, body := do(t, app, http.MethodPut, path+"/components", constants.RoleTeacher, fiber.Map{
		"student_id":    stu.StudentID,
		"component_key": "uts",
		"value":         88,
	})
	require.Equal(t, fiber.StatusOK, code, body)

	code, body = do(t, app, http.MethodDelete, path, constants.RoleTeacher, nil)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.EqualValues(t, 1, body["blocking_count"])
}

func TestCompute_MissingStructureIs412(t *testing.T) {
	db := testutil.DB(t)
	app := newApp(t, db, locker.NewLocal())

	code, _ := do(t, app, http.MethodPost, "/api/t/grade-structures/"+uuid.NewString()+"/compute", constants.RoleTeacher,
		fiber.Map{"class_id": uuid.New()})
	assert.Equal(t, fiber.StatusPreconditionFailed, code)
}

func TestFinalGrades_BadFilterIs422(t *testing.T) {
	db := testutil.DB(t)
	app := newApp(t, db, locker.NewLocal())

	code, body := do(t, app, http.MethodGet, "/api/t/final-grades?class_id=abc", constants.RoleTeacher, nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.Contains(t, body["errors"].(map[string]any), "class_id")
}

func TestHealth(t *testing.T) {
	db := testutil.DB(t)
	app := newApp(t, db, locker.NewLocal())

	code, body := do(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "OK", body["status"])
}
