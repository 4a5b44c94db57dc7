// file: internals/features/school/classes/class_histories/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	historyCtl "schoolku_backend/internals/features/school/classes/class_histories/controller"
)

func ClassHistoryAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctl := historyCtl.NewClassHistoryController(db)
	admin.Get("/students/:id/class-histories", ctl.ListByStudent)
}
