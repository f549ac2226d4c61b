package notificationRoutes

import (
	controllers "lms/controllers/notification"
	"lms/middleware"
	validators "lms/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// SetupNotificationRoutes sets up the notification inbox routes
func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/notifications", middleware.JWTMiddleware)

	notificationGroup.Get("/", controllers.GetNotifications)
	notificationGroup.Get("/unread-count", controllers.GetUnreadCount)
	notificationGroup.Post("/read-all", controllers.MarkAllRead)
	notificationGroup.Post("/:id/read", validators.NotificationID(), controllers.MarkRead)
	notificationGroup.Delete("/:id", validators.NotificationID(), controllers.DeleteNotification)
}
