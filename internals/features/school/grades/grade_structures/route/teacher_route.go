// file: internals/features/school/grades/grade_structures/route/teacher_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	structCtl "schoolku_backend/internals/features/school/grades/grade_structures/controller"
)

func GradeStructureTeacherRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctl := structCtl.NewGradeStructureController(db, log)

	g := r.Group("/grade-structures")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Patch("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)

	g.Put("/:id/components", ctl.RecordComponent)
	g.Get("/:id/components", ctl.ListComponents)
}
