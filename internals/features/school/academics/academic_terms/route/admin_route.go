// file: internals/features/school/academics/academic_terms/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicCtl "schoolku_backend/internals/features/school/academics/academic_terms/controller"
)

func AcademicContextAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := academicCtl.NewAcademicContextController(db)

	admin.Get("/academic-context", ctl.Active)
	admin.Get("/academic-years", ctl.ListYears)
}
