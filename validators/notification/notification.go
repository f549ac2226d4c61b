package notificationValidator

import (
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// NotificationID validates the :id route parameter as a UUID
func NotificationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params("id"))
		id, err := uuid.Parse(raw)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification id!", nil)
		}

		c.Locals("notificationID", id)
		return c.Next()
	}
}
