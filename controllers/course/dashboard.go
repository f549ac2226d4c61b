package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// GetUserDashboard serves the learner dashboard
func GetUserDashboard(c *fiber.Ctx) error {
	db := database.Database.Db
	userID := currentUserID(c)

	var recent []models.Enrollment
	if err := db.Preload("Course").Where("user_id = ?", userID).
		Order("last_accessed desc").Limit(5).Find(&recent).Error; err != nil {
		log.Printf("Error fetching recent enrollments for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully.", fiber.Map{
		"stats":              services.GetUserDashboardStats(userID),
		"recent_enrollments": recent,
		"unread_count":       services.UnreadNotificationCount(userID),
	})
}

// GetInstructorDashboard serves the instructor dashboard
func GetInstructorDashboard(c *fiber.Ctx) error {
	db := database.Database.Db
	userID := currentUserID(c)

	var courses []models.Course
	if err := db.Where("instructor_id = ?", userID).
		Order("created_at desc").Find(&courses).Error; err != nil {
		log.Printf("Error fetching courses for instructor %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully.", fiber.Map{
		"stats":   services.GetInstructorDashboardStats(userID),
		"courses": courses,
	})
}

// GetCourseStats serves per-course statistics for its instructor or an admin
func GetCourseStats(c *fiber.Ctx) error {
	db := database.Database.Db
	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	user, ok := c.Locals("currentUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if !user.IsAdminUser() && course.InstructorID != user.ID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not manage this course!", nil)
	}

	stats, err := services.GetCourseStats(courseID)
	if err != nil {
		log.Printf("Error building stats for course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch statistics!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Statistics fetched successfully.", stats)
}
