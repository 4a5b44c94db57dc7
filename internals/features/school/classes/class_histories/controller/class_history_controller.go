// file: internals/features/school/classes/class_histories/controller/class_history_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentSvc "schoolku_backend/internals/features/lembaga/teachers_students/service"
	ledger "schoolku_backend/internals/features/school/classes/class_histories/service"
	helper "schoolku_backend/internals/helpers"
)

type ClassHistoryController struct {
	DB *gorm.DB
}

func NewClassHistoryController(db *gorm.DB) *ClassHistoryController {
	return &ClassHistoryController{DB: db}
}

// GET /api/a/students/:id/class-histories
func (ctl *ClassHistoryController) ListByStudent(c *fiber.Ctx) error {
	studentID, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	ok, err := studentSvc.Exists(c.Context(), ctl.DB, studentID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if !ok {
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
	}

	rows, err := ledger.ListByStudent(c.Context(), ctl.DB, studentID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Riwayat kelas siswa", rows)
}
