package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"

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

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "courseID"); !ok {
			return err
		}
		return c.Next()
	}
}

// LessonID validates the :lesson_id route parameter
func LessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "lesson_id", "lessonID"); !ok {
			return err
		}
		return c.Next()
	}
}

// CourseListQuery holds validated list filters
type CourseListQuery struct {
	Page      int
	Limit     int
	Query     string
	Category  string
	Level     string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	FreeOnly  bool
	Sort      string
}

// CourseList validates catalog listing query parameters
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := &CourseListQuery{
			Page:     c.QueryInt("page", 1),
			Limit:    c.QueryInt("limit", 12),
			Query:    strings.TrimSpace(c.Query("q")),
			Category: strings.TrimSpace(c.Query("category")),
			Level:    strings.TrimSpace(c.Query("level")),
			FreeOnly: c.QueryBool("free", false),
			Sort:     strings.TrimSpace(c.Query("sort")),
		}

		if reqData.Page <= 0 {
			reqData.Page = 1
		}
		if reqData.Limit <= 0 || reqData.Limit > 100 {
			reqData.Limit = 12
		}

		if reqData.Level != "" {
			validLevels := map[string]bool{"beginner": true, "intermediate": true, "advanced": true, "all": true}
			if !validLevels[reqData.Level] {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Level must be beginner, intermediate, advanced, or all!", nil)
			}
		}

		for query, dest := range map[string]**float64{
			"min_price":  &reqData.MinPrice,
			"max_price":  &reqData.MaxPrice,
			"min_rating": &reqData.MinRating,
		} {
			raw := strings.TrimSpace(c.Query(query))
			if raw == "" {
				continue
			}
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil || value < 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+query+" parameter!", nil)
			}
			*dest = &value
		}

		c.Locals("validatedCourseList", reqData)
		return c.Next()
	}
}

// ReviewRequest is the add/edit review payload
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// AddReview validates a review submission
func AddReview() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "id", "courseID"); !ok {
			return err
		}

		reqData := new(ReviewRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		reqData.Comment = strings.TrimSpace(reqData.Comment)

		if reqData.Rating < 1 || reqData.Rating > 5 {
			errors["rating"] = "Rating must be between 1 and 5!"
		}
		if reqData.Comment == "" {
			errors["comment"] = "Comment is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReview", reqData)
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

// PositionRequest is the resume-position payload
type PositionRequest struct {
	Position int `json:"position"`
}

// UpdatePosition validates a last-watched-position update
func UpdatePosition() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ok, err := paramID(c, "lesson_id", "lessonID"); !ok {
			return err
		}

		reqData := new(PositionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Position < 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Position must not be negative!", nil)
		}

		c.Locals("validatedPosition", reqData)
		return c.Next()
	}
}
