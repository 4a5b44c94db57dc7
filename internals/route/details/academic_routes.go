// file: internals/route/details/academic_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	studentRoute "schoolku_backend/internals/features/lembaga/teachers_students/route"
	academicRoute "schoolku_backend/internals/features/school/academics/academic_terms/route"
	transitionRoute "schoolku_backend/internals/features/school/academics/year_transitions/route"
	classRoute "schoolku_backend/internals/features/school/classes/classes/route"
	historyRoute "schoolku_backend/internals/features/school/classes/class_histories/route"
	homeroomRoute "schoolku_backend/internals/features/school/classes/homerooms/route"
	"schoolku_backend/internals/helpers/locker"
	"schoolku_backend/internals/middlewares"
)

// AcademicAdminRoutes: /api/a (admin & owner).
func AcademicAdminRoutes(admin fiber.Router, db *gorm.DB, lk locker.Locker, log *zap.Logger) {
	academicRoute.AcademicContextAdminRoutes(admin, db)
	transitionRoute.YearTransitionAdminRoutes(admin, db, lk, log, middlewares.HeavyOpRateLimiter())
	historyRoute.ClassHistoryAdminRoutes(admin, db)
	homeroomRoute.HomeroomAdminRoutes(admin, db)
	classRoute.ClassAdminRoutes(admin, db)
	studentRoute.StudentAdminRoutes(admin, db)
}
