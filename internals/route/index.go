// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/helpers/locker"
	"schoolku_backend/internals/helpers/logger"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
	routeDetails "schoolku_backend/internals/route/details"
)

var startTime time.Time

// Deps: dependensi bersama yang dibuat di main.
type Deps struct {
	Locker    locker.Locker
	Log       *zap.Logger
	JWTSecret string
}

func SetupRoutes(app *fiber.App, db *gorm.DB, deps Deps) {
	startTime = time.Now()
	log := logger.OrNop(deps.Log)
	if deps.Locker == nil {
		deps.Locker = locker.NewLocal()
	}
	if deps.JWTSecret == "" {
		deps.JWTSecret = configs.JWTSecret
	}

	BaseRoutes(app, db)

	jwt := authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              deps.JWTSecret,
		AllowCookieFallback: true,
	})

	// ===================== ADMIN =====================
	log.Info("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		jwt,
		authMiddleware.OnlyRolesSlice(constants.RoleErrorAdmin("akademik"), constants.AdminAndAbove),
	)
	routeDetails.AcademicAdminRoutes(admin, db, deps.Locker, log)

	// ===================== TEACHER =====================
	log.Info("[INFO] Setting up TEACHER group (Auth + RoleCheck)...")
	teacher := app.Group("/api/t",
		jwt,
		authMiddleware.OnlyRolesSlice(constants.RoleErrorTeacher("penilaian"), constants.TeacherAndAbove),
	)
	routeDetails.GradeTeacherRoutes(teacher, db, deps.Locker, log)
}
