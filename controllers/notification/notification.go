package notificationController

import (
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userId").(uint); ok {
		return id
	}
	return 0
}

// GetNotifications lists the user's notifications, newest first.
// Expired notifications are hidden.
func GetNotifications(c *fiber.Ctx) error {
	db := database.Database.Db
	userID := currentUserID(c)

	var notifications []models.Notification
	if err := db.Where("user_id = ?", userID).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Order("created_at desc").Limit(50).
		Find(&notifications).Error; err != nil {
		log.Printf("Error fetching notifications for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully.", fiber.Map{
		"notifications": notifications,
		"unread_count":  services.UnreadNotificationCount(userID),
	})
}

// GetUnreadCount serves the unread badge counter
func GetUnreadCount(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unread count fetched successfully.", fiber.Map{
		"unread_count": services.UnreadNotificationCount(currentUserID(c)),
	})
}

// MarkRead marks one notification as read
func MarkRead(c *fiber.Ctx) error {
	db := database.Database.Db
	userID := currentUserID(c)
	notificationID, ok := c.Locals("notificationID").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification id!", nil)
	}

	var notification models.Notification
	if err := db.Where("id = ? AND user_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	if err := notification.MarkAsRead(db); err != nil {
		log.Printf("Error marking notification %s read: %v", notificationID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read.", notification)
}

// MarkAllRead marks every unread notification as read
func MarkAllRead(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if err := services.MarkAllNotificationsRead(userID); err != nil {
		log.Printf("Error marking notifications read for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notifications!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "All notifications marked as read.", nil)
}

// DeleteNotification removes one notification
func DeleteNotification(c *fiber.Ctx) error {
	db := database.Database.Db
	userID := currentUserID(c)
	notificationID, ok := c.Locals("notificationID").(uuid.UUID)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification id!", nil)
	}

	result := db.Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&models.Notification{})
	if result.Error != nil {
		log.Printf("Error deleting notification %s: %v", notificationID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete notification!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification deleted.", nil)
}
