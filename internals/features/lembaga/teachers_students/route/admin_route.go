// file: internals/features/lembaga/teachers_students/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentCtl "schoolku_backend/internals/features/lembaga/teachers_students/controller"
)

func StudentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := studentCtl.NewStudentController(db)
	admin.Get("/students", ctl.List)
}
