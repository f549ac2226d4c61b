package adminController

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard serves the admin dashboard stats and recent activity
func GetDashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var recentEnrollments []models.Enrollment
	if err := db.Preload("User").Preload("Course").
		Order("enrolled_at desc").Limit(10).Find(&recentEnrollments).Error; err != nil {
		log.Printf("Error fetching recent enrollments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	var recentUsers []models.User
	db.Order("date_joined desc").Limit(10).Find(&recentUsers)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully.", fiber.Map{
		"stats":              services.GetAdminDashboardStats(),
		"enrollment_stats":   services.GetEnrollmentStats(),
		"recent_enrollments": recentEnrollments,
		"recent_users":       recentUsers,
	})
}
