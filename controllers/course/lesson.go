package controllers

import (
	"errors"
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// GetLesson serves a lesson for a learner, gated on course access
func GetLesson(c *fiber.Ctx) error {
	db := database.Database.Db
	userID := currentUserID(c)
	lessonID, ok := c.Locals("lessonID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	var lesson models.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if !services.CanAccessLesson(userID, &lesson, time.Now()) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Enroll in the course to watch this lesson!", nil)
	}

	var progress models.LessonProgress
	db.Joins("JOIN enrollments ON enrollments.id = lesson_progresses.enrollment_id").
		Where("enrollments.user_id = ? AND lesson_progresses.lesson_id = ?", userID, lessonID).
		First(&progress)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully.", fiber.Map{
		"lesson":   lesson,
		"progress": progress,
	})
}

// MarkLessonComplete records a finished lesson and refreshes course progress
func MarkLessonComplete(c *fiber.Ctx) error {
	userID := currentUserID(c)
	lessonID, ok := c.Locals("lessonID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	progress, err := services.MarkLessonComplete(userID, lessonID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active enrollment for this lesson!", nil)
		}
		log.Printf("Error marking lesson %d complete for user %d: %v", lessonID, userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as complete.", progress)
}

// UpdateLessonPosition stores the resume position for a lesson
func UpdateLessonPosition(c *fiber.Ctx) error {
	userID := currentUserID(c)
	lessonID, ok := c.Locals("lessonID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	reqData, ok := c.Locals("validatedPosition").(*courseValidator.PositionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	progress, err := services.UpdateLessonPosition(userID, lessonID, reqData.Position)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No active enrollment for this lesson!", nil)
		}
		log.Printf("Error saving position for lesson %d, user %d: %v", lessonID, userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save position!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Position saved.", progress)
}

// GetCourseProgress serves the learner's progress snapshot for a course
func GetCourseProgress(c *fiber.Ctx) error {
	db := database.Database.Db
	userID := currentUserID(c)
	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not enrolled in this course!", nil)
	}

	snapshot, err := services.GetProgressSnapshot(enrollment.ID)
	if err != nil {
		log.Printf("Error building progress snapshot for enrollment %d: %v", enrollment.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully.", fiber.Map{
		"enrollment": enrollment,
		"snapshot":   snapshot,
	})
}
