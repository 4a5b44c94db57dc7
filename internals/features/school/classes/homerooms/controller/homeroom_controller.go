// file: internals/features/school/classes/homerooms/controller/homeroom_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	termSvc "schoolku_backend/internals/features/school/academics/academic_terms/service"
	dto "schoolku_backend/internals/features/school/classes/homerooms/dto"
	homeroomSvc "schoolku_backend/internals/features/school/classes/homerooms/service"
	helper "schoolku_backend/internals/helpers"
)

type HomeroomController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewHomeroomController(db *gorm.DB) *HomeroomController {
	return &HomeroomController{DB: db, Validator: helper.NewValidator()}
}

// POST /api/a/homerooms
func (ctl *HomeroomController) Create(c *fiber.Ctx) error {
	var req dto.CreateHomeroomRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := homeroomSvc.Assign(c.Context(), ctl.DB, req.ToInput())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Wali kelas berhasil ditetapkan", row)
}

// GET /api/a/homerooms?academic_year_id=
// Tanpa academic_year_id → tahun ajaran aktif.
func (ctl *HomeroomController) List(c *fiber.Ctx) error {
	yearID, err := helper.QueryUUID(c, "academic_year_id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if yearID == nil {
		ac, err := termSvc.ResolveActiveContext(c.Context(), ctl.DB)
		if err != nil {
			return helper.FromServiceError(c, err)
		}
		yearID = &ac.YearID
	}

	rows, err := homeroomSvc.ListByYear(c.Context(), ctl.DB, *yearID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Daftar wali kelas", rows)
}
