package controllers

import (
	"errors"
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// ToggleFavorite adds or removes a course from the user's favorites
func ToggleFavorite(c *fiber.Ctx) error {
	userID := currentUserID(c)
	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	favorited, message, err := services.ToggleFavorite(userID, courseID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Error toggling favorite for course %d, user %d: %v", courseID, userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update favorites!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"favorited": favorited,
	})
}

// GetMyFavorites lists the authenticated user's favorite courses
func GetMyFavorites(c *fiber.Ctx) error {
	db := database.Database.Db
	userID := currentUserID(c)

	var favorites []models.Favorite
	if err := db.Preload("Course").Preload("Course.Category").
		Where("user_id = ?", userID).Order("created_at desc").
		Find(&favorites).Error; err != nil {
		log.Printf("Error fetching favorites for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch favorites!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Favorites fetched successfully.", favorites)
}
