// file: internals/features/school/classes/classes/controller/classes_controller.go
package controller

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	classSvc "schoolku_backend/internals/features/school/classes/classes/service"
	helper "schoolku_backend/internals/helpers"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

// GET /api/a/classes?level=&status=active|tombstoned&q=&page=&per_page=
func (ctl *ClassController) List(c *fiber.Ctx) error {
	f := classSvc.ListFilter{Q: c.Query("q")}

	ve := helper.NewValidationError()
	if raw := strings.TrimSpace(c.Query("level")); raw != "" {
		lvl, err := strconv.Atoi(raw)
		if err != nil || lvl < 1 {
			ve.Add("level", "harus bilangan bulat positif")
		} else {
			f.Level = &lvl
		}
	}
	switch s := constants.RecordStatus(strings.ToLower(strings.TrimSpace(c.Query("status")))); s {
	case "", constants.StatusActive, constants.StatusTombstoned:
		f.Status = string(s)
	default:
		ve.Add("status", "harus active atau tombstoned")
	}
	if err := ve.OrNil(); err != nil {
		return helper.FromServiceError(c, err)
	}

	p := helper.ResolvePaging(c, 50, 200)
	f.Offset, f.Limit = p.Offset, p.Limit

	rows, total, err := classSvc.List(c.Context(), ctl.DB, f)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "Daftar kelas", rows, helper.BuildPagination(total, p, len(rows)))
}
