package controllers

import (
	"errors"
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// AddReview creates or updates the user's review for a course
func AddReview(c *fiber.Ctx) error {
	userID := currentUserID(c)
	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	reqData, ok := c.Locals("validatedReview").(*courseValidator.ReviewRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	review, created, err := services.CreateOrUpdateReview(userID, courseID, reqData.Rating, reqData.Comment)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		if errors.Is(err, services.ErrValidation) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Rating must be between 1 and 5!", nil)
		}
		log.Printf("Error saving review for course %d by user %d: %v", courseID, userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save review!", nil)
	}

	message := "Review updated successfully."
	statusCode := fiber.StatusOK
	if created {
		message = "Review added successfully."
		statusCode = fiber.StatusCreated
	}
	return middleware.JsonResponse(c, statusCode, true, message, review)
}

// DeleteReview removes the user's own review
func DeleteReview(c *fiber.Ctx) error {
	userID := currentUserID(c)
	reviewID, ok := c.Locals("reviewID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid review id!", nil)
	}

	if err := services.DeleteReview(reviewID, userID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
		}
		if errors.Is(err, services.ErrNotOwner) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own review!", nil)
		}
		log.Printf("Error deleting review %d: %v", reviewID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully.", nil)
}

// GetCourseReviews lists reviews for a course
func GetCourseReviews(c *fiber.Ctx) error {
	db := database.Database.Db
	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var reviews []models.Review
	if err := db.Preload("User").Where("course_id = ?", courseID).
		Order("created_at desc").Find(&reviews).Error; err != nil {
		log.Printf("Error fetching reviews for course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully.", reviews)
}

// GetMyReviews lists the authenticated user's reviews
func GetMyReviews(c *fiber.Ctx) error {
	db := database.Database.Db
	userID := currentUserID(c)

	var reviews []models.Review
	if err := db.Preload("Course").Where("user_id = ?", userID).
		Order("created_at desc").Find(&reviews).Error; err != nil {
		log.Printf("Error fetching reviews for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully.", reviews)
}
