package middlewares

import (
	"github.com/gofiber/fiber/v2"

	reqLogger "schoolku_backend/internals/middlewares/logger"
)

// SetupMiddlewares: urutan penting, recovery paling luar.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(reqLogger.RequestID())
	app.Use(reqLogger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
