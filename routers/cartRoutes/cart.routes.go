package cartRoutes

import (
	controllers "lms/controllers/cart"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCartRoutes sets up the shopping cart routes
func SetupCartRoutes(app *fiber.App) {
	cartGroup := app.Group("/cart")

	cartGroup.Get("/", controllers.ViewCart)

	// Literal routes go first; fiber matches in registration order and the
	// :id routes would swallow them otherwise.
	cartGroup.Post("/checkout", middleware.JWTMiddleware, controllers.Checkout)
	cartGroup.Delete("/clear", controllers.ClearCart)

	cartGroup.Post("/:id", validators.CourseID(), controllers.AddToCart)
	cartGroup.Delete("/:id", validators.CourseID(), controllers.RemoveFromCart)
}
