// file: internals/features/school/academics/subjects/controller/offerings_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	subjectSvc "schoolku_backend/internals/features/school/academics/subjects/service"
	helper "schoolku_backend/internals/helpers"
)

type OfferingController struct {
	DB *gorm.DB
}

func NewOfferingController(db *gorm.DB) *OfferingController {
	return &OfferingController{DB: db}
}

// GET /api/t/classes/:id/subjects
func (ctl *OfferingController) ListByClass(c *fiber.Ctx) error {
	classID, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := subjectSvc.ListOfferings(c.Context(), ctl.DB, classID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Mapel kelas", rows)
}
