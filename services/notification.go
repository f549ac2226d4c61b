package services

import (
	"log"
	"time"

	"lms/database"
	"lms/models"
)

// Notify creates an unread notification for the user. Dispatch is
// fire-and-forget: a failure is logged and never propagated, so it cannot
// roll back the state transition that triggered it.
func Notify(userID uint, title, message, kind, link, icon string) {
	db := database.Database.Db

	notification := models.Notification{
		UserID:           userID,
		Title:            title,
		Message:          message,
		NotificationType: kind,
		Link:             link,
		Icon:             icon,
	}

	if err := db.Create(&notification).Error; err != nil {
		log.Printf("Error dispatching notification to user %d: %v", userID, err)
	}
}

// UnreadNotificationCount counts the user's unread, unexpired notifications
func UnreadNotificationCount(userID uint) int64 {
	db := database.Database.Db

	var count int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Count(&count)
	return count
}

// MarkAllNotificationsRead marks every unread notification of the user as
// read, stamping read_at.
func MarkAllNotificationsRead(userID uint) error {
	db := database.Database.Db

	return db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()}).Error
}

// PurgeExpiredNotifications deletes notifications whose expiry has passed.
// Called by the hourly scheduler.
func PurgeExpiredNotifications() int64 {
	db := database.Database.Db

	result := db.Where("expires_at IS NOT NULL AND expires_at <= ?", time.Now()).
		Delete(&models.Notification{})
	if result.Error != nil {
		log.Printf("Error purging expired notifications: %v", result.Error)
		return 0
	}
	return result.RowsAffected
}
