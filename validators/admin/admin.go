package adminValidator

import (
	"strconv"
	"strings"
	"time"

	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// paramID parses a positive integer route parameter into c.Locals
func paramID(c *fiber.Ctx, name, localKey string) (bool, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing "+name+" parameter!", nil)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+name+" parameter!", nil)
	}
	c.Locals(localKey, uint(id))
	return true, nil
}

// CourseRequest is the admin create/update course payload
type CourseRequest struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	ShortDescription  string   `json:"short_description"`
	ImageURL          string   `json:"image_url"`
	CategoryID        uint     `json:"category_id"`
	InstructorID      uint     `json:"instructor_id"`
	Price             *float64 `json:"price"`
	Level             string   `json:"level"`
	DurationHours     int      `json:"duration_hours"`
	DiscountPercent   int      `json:"discount_percent"`
	DiscountStartDate string   `json:"discount_start_date"`
	DiscountEndDate   string   `json:"discount_end_date"`
}

// parseDiscountWindow parses the optional discount dates
func parseDiscountWindow(reqData *CourseRequest, errors map[string]string) (start, end *time.Time) {
	if reqData.DiscountStartDate != "" {
		t, err := time.Parse(time.RFC3339, reqData.DiscountStartDate)
		if err != nil {
			errors["discount_start_date"] = "Must be an RFC3339 timestamp!"
		} else {
			start = &t
		}
	}
	if reqData.DiscountEndDate != "" {
		t, err := time.Parse(time.RFC3339, reqData.DiscountEndDate)
		if err != nil {
			errors["discount_end_date"] = "Must be an RFC3339 timestamp!"
		} else {
			end = &t
		}
	}
	if start != nil && end != nil && end.Before(*start) {
		errors["discount_end_date"] = "Discount end must not precede its start!"
	}
	return start, end
}

// validateCourseFields applies the shared field rules for create/update
func validateCourseFields(reqData *CourseRequest, requireAll bool) map[string]string {
	errors := make(map[string]string)

	reqData.Title = strings.TrimSpace(reqData.Title)
	reqData.Description = strings.TrimSpace(reqData.Description)
	reqData.ShortDescription = strings.TrimSpace(reqData.ShortDescription)
	reqData.Level = strings.TrimSpace(reqData.Level)

	if requireAll && reqData.Title == "" {
		errors["title"] = "Title is required!"
	} else if reqData.Title != "" && len(reqData.Title) < 3 {
		errors["title"] = "Title must be at least 3 characters long!"
	}

	if requireAll && reqData.Description == "" {
		errors["description"] = "Description is required!"
	}

	if requireAll && reqData.CategoryID == 0 {
		errors["category_id"] = "Category is required!"
	}

	if reqData.Price != nil && *reqData.Price < 0 {
		errors["price"] = "Price must not be negative!"
	} else if requireAll && reqData.Price == nil {
		errors["price"] = "Price is required!"
	}

	if reqData.Level != "" {
		validLevels := map[string]bool{
			models.LevelBeginner: true, models.LevelIntermediate: true,
			models.LevelAdvanced: true, models.LevelAll: true,
		}
		if !validLevels[reqData.Level] {
			errors["level"] = "Level must be beginner, intermediate, advanced, or all!"
		}
	} else if requireAll {
		reqData.Level = models.LevelBeginner
	}

	if reqData.DurationHours < 0 {
		errors["duration_hours"] = "Duration must not be negative!"
	}

	if reqData.DiscountPercent < 0 || reqData.DiscountPercent > 100 {
		errors["discount_percent"] = "Discount must be between 0 and 100!"
	}

	return errors
}

// CreateCourse validates admin course creation
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validateCourseFields(reqData, true)
		start, end := parseDiscountWindow(reqData, errors)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		c.Locals("discountStart", start)
		c.Locals("discountEnd", end)
		return c.Next()
	}
}

// UpdateCourse validates admin course update
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "courseID"); !ok {
			return err
		}

		reqData := new(CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := validateCourseFields(reqData, false)
		start, end := parseDiscountWindow(reqData, errors)
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		c.Locals("discountStart", start)
		c.Locals("discountEnd", end)
		return c.Next()
	}
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "courseID"); !ok {
			return err
		}
		return c.Next()
	}
}

// CategoryRequest is the admin category payload
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	ParentID    *uint  `json:"parent_id"`
}

// CreateCategory validates category creation
func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Name = strings.TrimSpace(reqData.Name)
		if reqData.Name == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"name": "Name is required!"})
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

// ModuleRequest is the admin module payload
type ModuleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
}

// CreateModule validates module creation under a course
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "courseID"); !ok {
			return err
		}

		reqData := new(ModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Title is required!"})
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// LessonRequest is the admin lesson payload
type LessonRequest struct {
	Title           string `json:"title"`
	VideoURL        string `json:"video_url"`
	DurationMinutes int    `json:"duration_minutes"`
	Content         string `json:"content"`
	OrderIndex      int    `json:"order_index"`
	IsFree          bool   `json:"is_free"`
}

// CreateLesson validates lesson creation under a module
func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "module_id", "moduleID"); !ok {
			return err
		}

		reqData := new(LessonRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.DurationMinutes < 0 {
			errors["duration_minutes"] = "Duration must not be negative!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// ReviewID validates the :review_id route parameter
func ReviewID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "review_id", "reviewID"); !ok {
			return err
		}
		return c.Next()
	}
}

// EnrollmentID validates the :enrollment_id route parameter
func EnrollmentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "enrollment_id", "enrollmentID"); !ok {
			return err
		}
		return c.Next()
	}
}

// StatusRequest carries an enrollment status override
type StatusRequest struct {
	Status string `json:"status"`
}

// UpdateEnrollmentStatus validates the admin status override payload
func UpdateEnrollmentStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "enrollment_id", "enrollmentID"); !ok {
			return err
		}

		reqData := new(StatusRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Status = strings.TrimSpace(reqData.Status)
		if !models.ValidEnrollmentStatus(reqData.Status) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be pending, enrolled, completed, or cancelled!",
			})
		}

		c.Locals("validatedStatus", reqData)
		return c.Next()
	}
}

// RoleRequest carries a user role change
type RoleRequest struct {
	Role string `json:"role"`
}

// ChangeUserRole validates the admin role change payload
func ChangeUserRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "user_id", "targetUserID"); !ok {
			return err
		}

		reqData := new(RoleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Role = strings.TrimSpace(reqData.Role)
		if !models.ValidRole(reqData.Role) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"role": "Role must be admin, instructor, or user!",
			})
		}

		c.Locals("validatedRole", reqData)
		return c.Next()
	}
}

// UserID validates the :user_id route parameter
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "user_id", "targetUserID"); !ok {
			return err
		}
		return c.Next()
	}
}

// ListQuery holds validated pagination with an optional status filter
type ListQuery struct {
	Page   int
	Limit  int
	Status string
}

// List validates pagination query parameters for admin listings
func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &ListQuery{
			Page:   c.QueryInt("page", 1),
			Limit:  c.QueryInt("limit", 20),
			Status: strings.TrimSpace(c.Query("status")),
		}

		if reqData.Page <= 0 {
			reqData.Page = 1
		}
		if reqData.Limit <= 0 || reqData.Limit > 100 {
			reqData.Limit = 20
		}
		if reqData.Status != "" && !models.ValidEnrollmentStatus(reqData.Status) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid status filter!", nil)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}
