// file: internals/features/school/grades/grade_structures/controller/grade_structure_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	compSvc "schoolku_backend/internals/features/school/grades/grade_components/service"
	dto "schoolku_backend/internals/features/school/grades/grade_structures/dto"
	structSvc "schoolku_backend/internals/features/school/grades/grade_structures/service"
	helper "schoolku_backend/internals/helpers"
)

type GradeStructureController struct {
	DB         *gorm.DB
	Validator  *validator.Validate
	Catalog    *structSvc.Catalog
	Components *compSvc.Store
}

func NewGradeStructureController(db *gorm.DB, log *zap.Logger) *GradeStructureController {
	return &GradeStructureController{
		DB:         db,
		Validator:  helper.NewValidator(),
		Catalog:    structSvc.NewCatalog(db, log),
		Components: compSvc.NewStore(db, log),
	}
}

/* =========================================================
   CRUD struktur nilai
========================================================= */

// POST /api/t/grade-structures
func (ctl *GradeStructureController) Create(c *fiber.Ctx) error {
	var req dto.CreateGradeStructureRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := ctl.Catalog.Define(c.Context(), req.ToInput())
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "Struktur nilai berhasil dibuat", row)
}

// GET /api/t/grade-structures?class_id=&subject_id=&term_id=&page=&per_page=
func (ctl *GradeStructureController) List(c *fiber.Ctx) error {
	var (
		f   structSvc.ListFilter
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
	p := helper.ResolvePaging(c, 20, 100)
	f.Offset, f.Limit = p.Offset, p.Limit

	rows, total, err := ctl.Catalog.List(c.Context(), f)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "Daftar struktur nilai", rows, helper.BuildPagination(total, p, len(rows)))
}

// GET /api/t/grade-structures/:id
func (ctl *GradeStructureController) Get(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := ctl.Catalog.Get(c.Context(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Detail struktur nilai", row)
}

// PATCH /api/t/grade-structures/:id
func (ctl *GradeStructureController) Update(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.UpdateGradeStructureRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := ctl.Catalog.Update(c.Context(), id, req.Schema)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Struktur nilai diperbarui", row)
}

// DELETE /api/t/grade-structures/:id
func (ctl *GradeStructureController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if err := ctl.Catalog.Delete(c.Context(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "Struktur nilai dihapus", fiber.Map{"grade_structure_id": id})
}

/* =========================================================
   Komponen nilai
========================================================= */

// PUT /api/t/grade-structures/:id/components
func (ctl *GradeStructureController) RecordComponent(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	var req dto.RecordComponentRequest
	if err := helper.BindAndValidate(c, ctl.Validator, &req); err != nil {
		return helper.FromServiceError(c, err)
	}
	row, err := ctl.Components.Record(c.Context(), req.ToInput(id))
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Nilai komponen tersimpan", row)
}

// GET /api/t/grade-structures/:id/components
func (ctl *GradeStructureController) ListComponents(c *fiber.Ctx) error {
	id, err := helper.ParamUUID(c, "id")
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if _, err := ctl.Catalog.Get(c.Context(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	rows, err := compSvc.ListByStructure(c.Context(), ctl.DB, id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "Daftar komponen nilai", rows)
}
