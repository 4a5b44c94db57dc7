// file: internals/route/details/grade_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	subjectRoute "schoolku_backend/internals/features/school/academics/subjects/route"
	aggRoute "schoolku_backend/internals/features/school/grades/aggregation/route"
	finalRoute "schoolku_backend/internals/features/school/grades/final_grades/route"
	structRoute "schoolku_backend/internals/features/school/grades/grade_structures/route"
	"schoolku_backend/internals/helpers/locker"
	"schoolku_backend/internals/middlewares"
)

// GradeTeacherRoutes: /api/t (teacher ke atas).
func GradeTeacherRoutes(teacher fiber.Router, db *gorm.DB, lk locker.Locker, log *zap.Logger) {
	// compute didaftarkan sebelum group /grade-structures/:id
	aggRoute.AggregationTeacherRoutes(teacher, db, lk, log, middlewares.HeavyOpRateLimiter())
	structRoute.GradeStructureTeacherRoutes(teacher, db, log)
	finalRoute.FinalGradeTeacherRoutes(teacher, db, log)
	subjectRoute.OfferingTeacherRoutes(teacher, db)
}
