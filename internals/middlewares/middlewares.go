package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/OVECJOE/sos/internals/middlewares/logger"
)

// SetupMiddlewares wires the global middleware chain.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
}
