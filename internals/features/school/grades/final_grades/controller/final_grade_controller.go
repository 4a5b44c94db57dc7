// file: internals/features/school/grades/final_grades/controller/final_grade_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/school/grades/final_grades/dto"
	finalSvc "schoolku_backend/internals/features/school/grades/final_grades/service"
	helper "schoolku_backend/internals/helpers"
)

type FinalGradeController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Store     *finalSvc.Store
}

func NewFinalGradeController(db *gorm.DB, log *zap.Logger) *FinalGradeController {
	return &FinalGradeController{
		DB:        db,
		Validator: helper.NewValidator(),
		Store:     finalSvc.NewStore(db, log),
	}
}

// GET /api/t/final-grades?class_id=&subject_id=&term_id=&student_id=
func (ctl *FinalGradeController) List(c *fiber.Ctx) error {
	var (
		f   finalSvc.ListFilter
		err error
	)
	if f.ClassID, err = helper.QueryUUID(c, "class_id"); err != nil {
		return helper.FromServiceError(c, err)
	}
	if f.SubjectID, err = helper.QueryUUID(c, "subject_id"); err != nil {
		return helper.FromServiceError(c, err)
	}
	if f.TermID, err = helper.QueryUUID(c, "term_id"); err != nil {
		return helper.FromServiceError(c, err)
	}
	if f.StudentID, err = helper.QueryUUID(c, "student_id"); err != nil {
		return helper.FromServiceError(c, err)
	}
	p := helper.ResolvePaging(c, 50, 500)
	f.Offset, f.Limit = p.Offset, p.Limit

	rows, total, err := finalSvc.List(c.Context(), ctl.DB, f)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "Daftar nilai akhir", rows, helper.BuildPagination(total, p, len(rows)))
}

// PUT /api/t/final-grades
func (ctl *FinalGradeController) UpsertManual(c *fiber.Ctx) error {
	var req dto.ManualFinalGradeRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := ctl.Store.UpsertManual(c.Context(), req.ToInput())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Nilai akhir manual tersimpan", row)
}
