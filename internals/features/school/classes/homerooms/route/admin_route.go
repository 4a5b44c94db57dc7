// file: internals/features/school/classes/homerooms/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	homeroomCtl "schoolku_backend/internals/features/school/classes/homerooms/controller"
)

func HomeroomAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := homeroomCtl.NewHomeroomController(db)

	g := admin.Group("/homerooms")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
}
