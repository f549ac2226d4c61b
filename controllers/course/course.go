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

// currentUserID reads the authenticated user id, zero when anonymous
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userId").(uint); ok {
		return id
	}
	return 0
}

// GetCourseShelves serves the home page course shelves
func GetCourseShelves(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", fiber.Map{
		"featured":  services.FeaturedCourses(8),
		"latest":    services.LatestCourses(8),
		"popular":   services.PopularCourses(8),
		"top_rated": services.TopRatedCourses(8),
		"free":      services.FreeCourses(8),
	})
}

// GetCourseList serves the filtered catalog listing
func GetCourseList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseList").(*courseValidator.CourseListQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
	}

	query := services.SearchCourses(services.CourseFilters{
		Query:        reqData.Query,
		CategorySlug: reqData.Category,
		Level:        reqData.Level,
		MinPrice:     reqData.MinPrice,
		MaxPrice:     reqData.MaxPrice,
		MinRating:    reqData.MinRating,
		FreeOnly:     reqData.FreeOnly,
		Sort:         reqData.Sort,
	})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Error counting courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	var courses []models.Course
	offset := (reqData.Page - 1) * reqData.Limit
	if err := query.Preload("Category").Preload("Instructor").
		Offset(offset).Limit(reqData.Limit).Find(&courses).Error; err != nil {
		log.Printf("Error fetching courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", fiber.Map{
		"courses": courses,
		"page":    reqData.Page,
		"limit":   reqData.Limit,
		"total":   total,
	})
}

// GetCourseDetails serves a single course page by slug
func GetCourseDetails(c *fiber.Ctx) error {
	db := database.Database.Db
	slug := c.Params("slug")

	var course models.Course
	err := db.Preload("Category").Preload("Instructor").
		Where("slug = ? AND is_active = ?", slug, true).First(&course).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	services.IncrementCourseViews(course.ID)

	var modules []models.CourseModule
	db.Where("course_id = ?", course.ID).Order("order_index asc, id asc").Find(&modules)

	moduleIDs := make([]uint, 0, len(modules))
	for _, module := range modules {
		moduleIDs = append(moduleIDs, module.ID)
	}

	lessonsByModule := make(map[uint][]models.Lesson)
	if len(moduleIDs) > 0 {
		var lessons []models.Lesson
		db.Where("module_id IN ?", moduleIDs).Order("order_index asc, id asc").Find(&lessons)
		for _, lesson := range lessons {
			lessonsByModule[lesson.ModuleID] = append(lessonsByModule[lesson.ModuleID], lesson)
		}
	}

	type moduleView struct {
		models.CourseModule
		Lessons []models.Lesson `json:"lessons"`
	}
	moduleViews := make([]moduleView, 0, len(modules))
	for _, module := range modules {
		moduleViews = append(moduleViews, moduleView{CourseModule: module, Lessons: lessonsByModule[module.ID]})
	}

	var reviews []models.Review
	db.Preload("User").Where("course_id = ?", course.ID).
		Order("created_at desc").Limit(10).Find(&reviews)

	var isEnrolled, isFavorite bool
	var enrollmentStatus string
	if userID := currentUserID(c); userID != 0 {
		var enrollment models.Enrollment
		if err := db.Where("user_id = ? AND course_id = ?", userID, course.ID).
			First(&enrollment).Error; err == nil {
			isEnrolled = enrollment.Status == models.EnrollmentEnrolled ||
				enrollment.Status == models.EnrollmentCompleted
			enrollmentStatus = enrollment.Status
		}
		isFavorite = services.IsFavorite(userID, course.ID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully.", fiber.Map{
		"course":            course,
		"current_price":     course.CurrentPrice(time.Now()),
		"modules":           moduleViews,
		"reviews":           reviews,
		"related":           services.RelatedCourses(&course, 4),
		"is_enrolled":       isEnrolled,
		"is_favorite":       isFavorite,
		"enrollment_status": enrollmentStatus,
	})
}

// EnrollInCourse requests enrollment in a course
func EnrollInCourse(c *fiber.Ctx) error {
	userID := currentUserID(c)
	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	enrollment, created, err := services.Enroll(userID, courseID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		log.Printf("Error enrolling user %d in course %d: %v", userID, courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	message := "You already have an enrollment for this course."
	if created {
		message = "Enrollment created successfully."
		if enrollment.Status == models.EnrollmentPending {
			message = "Enrollment request submitted, awaiting approval."
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"enrollment": enrollment,
		"created":    created,
	})
}

// GetMyEnrollments lists the authenticated user's enrollments
func GetMyEnrollments(c *fiber.Ctx) error {
	db := database.Database.Db
	userID := currentUserID(c)

	var enrollments []models.Enrollment
	if err := db.Preload("Course").Preload("Course.Category").
		Where("user_id = ?", userID).Order("enrolled_at desc").
		Find(&enrollments).Error; err != nil {
		log.Printf("Error fetching enrollments for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully.", enrollments)
}
