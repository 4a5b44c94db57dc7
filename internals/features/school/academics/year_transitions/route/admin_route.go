// file: internals/features/school/academics/year_transitions/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	transitionCtl "schoolku_backend/internals/features/school/academics/year_transitions/controller"
	"schoolku_backend/internals/helpers/locker"
)

func YearTransitionAdminRoutes(admin fiber.Router, db *gorm.DB, lk locker.Locker, log *zap.Logger, extra ...fiber.Handler) {
	ctl := transitionCtl.NewYearTransitionController(db, lk, log)
	handlers := append(extra, ctl.Transition)
	admin.Post("/year-transitions", handlers...)
}
