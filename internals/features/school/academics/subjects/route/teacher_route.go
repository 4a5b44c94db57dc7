// file: internals/features/school/academics/subjects/route/teacher_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	subjectCtl "schoolku_backend/internals/features/school/academics/subjects/controller"
)

func OfferingTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctl := subjectCtl.NewOfferingController(db)
	r.Get("/classes/:id/subjects", ctl.ListByClass)
}
