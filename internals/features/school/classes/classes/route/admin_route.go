// file: internals/features/school/classes/classes/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classCtl "schoolku_backend/internals/features/school/classes/classes/controller"
)

func ClassAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := classCtl.NewClassController(db)
	admin.Get("/classes", ctl.List)
}
