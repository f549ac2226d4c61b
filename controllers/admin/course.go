package adminController

import (
	"errors"
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	adminValidator "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// CreateCourse creates a course with a unique slug
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*adminValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Category{}, reqData.CategoryID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Category not found!", nil)
	}

	instructorID := reqData.InstructorID
	if instructorID == 0 {
		if user, ok := c.Locals("currentUser").(*models.User); ok {
			instructorID = user.ID
		}
	}
	var instructor models.User
	if err := db.First(&instructor, instructorID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Instructor not found!", nil)
	}

	discountStart, _ := c.Locals("discountStart").(*time.Time)
	discountEnd, _ := c.Locals("discountEnd").(*time.Time)

	course := models.Course{
		Title:             reqData.Title,
		Slug:              services.UniqueCourseSlug(reqData.Title),
		Description:       reqData.Description,
		ShortDescription:  reqData.ShortDescription,
		ImageURL:          reqData.ImageURL,
		CategoryID:        reqData.CategoryID,
		InstructorID:      instructorID,
		Price:             *reqData.Price,
		Level:             reqData.Level,
		DurationHours:     reqData.DurationHours,
		DiscountPercent:   reqData.DiscountPercent,
		DiscountStartDate: discountStart,
		DiscountEndDate:   discountEnd,
	}

	if err := db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	services.Notify(instructorID, "New course published",
		"Your course \""+course.Title+"\" is now live.",
		models.NotificationSuccess, "/courses/"+course.Slug, "fa-book")

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully.", course)
}

// UpdateCourse applies a partial course update
func UpdateCourse(c *fiber.Ctx) error {
	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}
	reqData, ok := c.Locals("validatedCourse").(*adminValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Title != "" && reqData.Title != course.Title {
		updates["title"] = reqData.Title
		updates["slug"] = services.UniqueCourseSlug(reqData.Title)
	}
	if reqData.Description != "" {
		updates["description"] = reqData.Description
	}
	if reqData.ShortDescription != "" {
		updates["short_description"] = reqData.ShortDescription
	}
	if reqData.ImageURL != "" {
		updates["image_url"] = reqData.ImageURL
	}
	if reqData.CategoryID != 0 {
		if err := db.First(&models.Category{}, reqData.CategoryID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Category not found!", nil)
		}
		updates["category_id"] = reqData.CategoryID
	}
	if reqData.Price != nil {
		updates["price"] = *reqData.Price
	}
	if reqData.Level != "" {
		updates["level"] = reqData.Level
	}
	if reqData.DurationHours > 0 {
		updates["duration_hours"] = reqData.DurationHours
	}
	updates["discount_percent"] = reqData.DiscountPercent
	if discountStart, _ := c.Locals("discountStart").(*time.Time); discountStart != nil {
		updates["discount_start_date"] = discountStart
	}
	if discountEnd, _ := c.Locals("discountEnd").(*time.Time); discountEnd != nil {
		updates["discount_end_date"] = discountEnd
	}

	if err := db.Model(&course).Updates(updates).Error; err != nil {
		log.Printf("Error updating course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	// Map updates do not flow back into the struct; reload before responding
	if err := db.First(&course, courseID).Error; err != nil {
		log.Printf("Error reloading course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully.", course)
}

// ToggleCourseActive flips course visibility
func ToggleCourseActive(c *fiber.Ctx) error {
	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db
	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsActive = !course.IsActive
	if err := db.Model(&course).Update("is_active", course.IsActive).Error; err != nil {
		log.Printf("Error toggling course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	message := "Course deactivated."
	if course.IsActive {
		message = "Course activated."
		services.Notify(course.InstructorID, "Course activated",
			"Your course \""+course.Title+"\" is visible to learners again.",
			models.NotificationInfo, "/courses/"+course.Slug, "fa-book")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, course)
}

// ToggleCourseFeatured flips the featured flag
func ToggleCourseFeatured(c *fiber.Ctx) error {
	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db
	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsFeatured = !course.IsFeatured
	if err := db.Model(&course).Update("is_featured", course.IsFeatured).Error; err != nil {
		log.Printf("Error toggling featured on course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully.", course)
}

// DeleteCourse soft-deletes a course
func DeleteCourse(c *fiber.Ctx) error {
	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db
	result := db.Delete(&models.Course{}, courseID)
	if result.Error != nil {
		log.Printf("Error deleting course %d: %v", courseID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully.", nil)
}

// CreateCategory creates a category with a unique slug
func CreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCategory").(*adminValidator.CategoryRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	category := models.Category{
		Name:        reqData.Name,
		Slug:        services.UniqueCategorySlug(reqData.Name),
		Description: reqData.Description,
		ParentID:    reqData.ParentID,
	}
	if reqData.Icon != "" {
		category.Icon = reqData.Icon
	}

	if err := db.Create(&category).Error; err != nil {
		log.Printf("Error creating category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully.", category)
}

// ListCategories lists all categories
func ListCategories(c *fiber.Ctx) error {
	db := database.Database.Db

	var categories []models.Category
	if err := db.Order("name asc").Find(&categories).Error; err != nil {
		log.Printf("Error fetching categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully.", categories)
}

// CreateModule adds a module to a course
func CreateModule(c *fiber.Ctx) error {
	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}
	reqData, ok := c.Locals("validatedModule").(*adminValidator.ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.Course{}, courseID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	module := models.CourseModule{
		CourseID:    courseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}
	if err := db.Create(&module).Error; err != nil {
		log.Printf("Error creating module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully.", module)
}

// CreateLesson adds a lesson to a module
func CreateLesson(c *fiber.Ctx) error {
	moduleID, ok := c.Locals("moduleID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
	}
	reqData, ok := c.Locals("validatedLesson").(*adminValidator.LessonRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if err := db.First(&models.CourseModule{}, moduleID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	lesson := models.Lesson{
		ModuleID:        moduleID,
		Title:           reqData.Title,
		VideoURL:        reqData.VideoURL,
		DurationMinutes: reqData.DurationMinutes,
		Content:         reqData.Content,
		OrderIndex:      reqData.OrderIndex,
		IsFree:          reqData.IsFree,
	}
	if err := db.Create(&lesson).Error; err != nil {
		log.Printf("Error creating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully.", lesson)
}

// DeleteReview removes any review (admin moderation)
func DeleteReview(c *fiber.Ctx) error {
	reviewID, ok := c.Locals("reviewID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid review id!", nil)
	}

	user, ok := c.Locals("currentUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if err := services.DeleteReview(reviewID, user.ID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
		}
		log.Printf("Error deleting review %d: %v", reviewID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully.", nil)
}
