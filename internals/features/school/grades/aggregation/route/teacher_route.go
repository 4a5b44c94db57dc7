// file: internals/features/school/grades/aggregation/route/teacher_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	aggCtl "schoolku_backend/internals/features/school/grades/aggregation/controller"
	"schoolku_backend/internals/helpers/locker"
)

func AggregationTeacherRoutes(r fiber.Router, db *gorm.DB, lk locker.Locker, log *zap.Logger, extra ...fiber.Handler) {
	ctl := aggCtl.NewAggregationController(db, lk, log)
	handlers := append(extra, ctl.Compute)
	r.Post("/grade-structures/:id/compute", handlers...)
}
