// file: internals/features/school/academics/academic_terms/controller/academic_context_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "schoolku_backend/internals/features/school/academics/academic_terms/dto"
	service "schoolku_backend/internals/features/school/academics/academic_terms/service"
	helper "schoolku_backend/internals/helpers"
)

/* ============================================
   Controller
============================================ */

type AcademicContextController struct {
	DB *gorm.DB
}

func NewAcademicContextController(db *gorm.DB) *AcademicContextController {
	return &AcademicContextController{DB: db}
}

/* ============================================
   GET /api/a/academic-context
============================================ */

func (ctl *AcademicContextController) Active(c *fiber.Ctx) error {
	ac, err := service.ResolveActiveContext(c.Context(), ctl.DB)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Tahun ajaran aktif", ac)
}

/* ============================================
   GET /api/a/academic-years?page=&per_page=
============================================ */

func (ctl *AcademicContextController) ListYears(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	years, total, err := service.ListYears(c.Context(), ctl.DB, p.Offset, p.Limit)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	out := make([]dto.AcademicYearResponse, 0, len(years))
	for _, y := range years {
		terms, err := service.ListTerms(c.Context(), ctl.DB, y.AcademicYearID)
		if err != nil {
			return helper.FromServiceError(c, err)
		}
		out = append(out, dto.FromYear(y, terms))
	}
	return helper.JsonList(c, "Daftar tahun ajaran", out, helper.BuildPagination(total, p, len(out)))
}
