package adminController

import (
	"errors"
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	"lms/utils"
	adminValidator "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// ListEnrollments lists enrollments with optional status filter
func ListEnrollments(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*adminValidator.ListQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
	}

	db := database.Database.Db
	query := db.Model(&models.Enrollment{})
	if reqData.Status != "" {
		query = query.Where("status = ?", reqData.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Error counting enrollments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	var enrollments []models.Enrollment
	offset := (reqData.Page - 1) * reqData.Limit
	if err := query.Preload("User").Preload("Course").
		Order("enrolled_at desc").Offset(offset).Limit(reqData.Limit).
		Find(&enrollments).Error; err != nil {
		log.Printf("Error fetching enrollments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully.", fiber.Map{
		"enrollments": enrollments,
		"page":        reqData.Page,
		"limit":       reqData.Limit,
		"total":       total,
	})
}

// loadEnrollmentParties fetches the learner and course for notification emails
func loadEnrollmentParties(enrollment *models.Enrollment) (*models.User, *models.Course) {
	db := database.Database.Db
	var user models.User
	var course models.Course
	if err := db.First(&user, enrollment.UserID).Error; err != nil {
		return nil, nil
	}
	if err := db.First(&course, enrollment.CourseID).Error; err != nil {
		return nil, nil
	}
	return &user, &course
}

// ApproveEnrollment moves a pending enrollment to enrolled
func ApproveEnrollment(c *fiber.Ctx) error {
	enrollmentID, ok := c.Locals("enrollmentID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	enrollment, err := services.ApproveEnrollment(enrollmentID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		}
		if errors.Is(err, services.ErrInvalidTransition) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only pending enrollments can be approved!", nil)
		}
		log.Printf("Error approving enrollment %d: %v", enrollmentID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve enrollment!", nil)
	}

	if user, course := loadEnrollmentParties(enrollment); user != nil {
		go utils.SendEnrollmentApprovedEmail(user.FirstName, user.Email, course.Title, course.Slug)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment approved.", enrollment)
}

// RejectEnrollment moves a pending enrollment to cancelled
func RejectEnrollment(c *fiber.Ctx) error {
	enrollmentID, ok := c.Locals("enrollmentID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}

	enrollment, err := services.RejectEnrollment(enrollmentID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		}
		if errors.Is(err, services.ErrInvalidTransition) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Only pending enrollments can be rejected!", nil)
		}
		log.Printf("Error rejecting enrollment %d: %v", enrollmentID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject enrollment!", nil)
	}

	if user, course := loadEnrollmentParties(enrollment); user != nil {
		go utils.SendEnrollmentRejectedEmail(user.FirstName, user.Email, course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment rejected.", enrollment)
}

// UpdateEnrollmentStatus applies an admin status override
func UpdateEnrollmentStatus(c *fiber.Ctx) error {
	enrollmentID, ok := c.Locals("enrollmentID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid enrollment id!", nil)
	}
	reqData, ok := c.Locals("validatedStatus").(*adminValidator.StatusRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	enrollment, err := services.UpdateEnrollmentStatus(enrollmentID, reqData.Status)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
		}
		log.Printf("Error updating enrollment %d status: %v", enrollmentID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment status updated.", enrollment)
}
