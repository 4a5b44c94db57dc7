// file: internals/features/school/grades/final_grades/route/teacher_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	finalCtl "schoolku_backend/internals/features/school/grades/final_grades/controller"
)

func FinalGradeTeacherRoutes(r fiber.Router, db *gorm.DB, log *zap.Logger) {
	ctl := finalCtl.NewFinalGradeController(db, log)

	g := r.Group("/final-grades")
	g.Get("/", ctl.List)
	g.Put("/", ctl.UpsertManual)
}
