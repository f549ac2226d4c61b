package services

import (
	"errors"

	"lms/database"
	"lms/models"

	"gorm.io/gorm"
)

// ToggleFavorite adds the course to the user's favorites if absent, removes
// it otherwise. Returns the new membership state and a user-facing message.
func ToggleFavorite(userID, courseID uint) (bool, string, error) {
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, "", ErrNotFound
		}
		return false, "", err
	}

	var favorite models.Favorite
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&favorite).Error
	if err == nil {
		if err := db.Unscoped().Delete(&favorite).Error; err != nil {
			return true, "", err
		}
		return false, "Removed from favorites", nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, "", err
	}

	favorite = models.Favorite{UserID: userID, CourseID: courseID}
	if err := db.Create(&favorite).Error; err != nil {
		return false, "", err
	}
	return true, "Added to favorites", nil
}

// IsFavorite reports whether the course is in the user's favorites
func IsFavorite(userID, courseID uint) bool {
	db := database.Database.Db

	var count int64
	db.Model(&models.Favorite{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count)
	return count > 0
}
