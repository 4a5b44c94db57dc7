// file: internals/features/lembaga/teachers_students/controller/students_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentSvc "schoolku_backend/internals/features/lembaga/teachers_students/service"
	helper "schoolku_backend/internals/helpers"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

// GET /api/a/students?class_id=&include_alumni=true&page=&per_page=
func (ctl *StudentController) List(c *fiber.Ctx) error {
	classID, err := helper.QueryUUID(c, "class_id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	p := helper.ResolvePaging(c, 50, 500)

	rows, total, err := studentSvc.List(c.Context(), ctl.DB, studentSvc.ListFilter{
		ClassID:       classID,
		IncludeAlumni: c.QueryBool("include_alumni", false),
		Offset:        p.Offset,
		Limit:         p.Limit,
	})
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "Daftar siswa", rows, helper.BuildPagination(total, p, len(rows)))
}
