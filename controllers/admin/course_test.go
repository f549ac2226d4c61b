package adminController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"lms/database"
	"lms/models"
	adminValidator "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCourseResponseReflectsNewValues(t *testing.T) {
	db := database.ConnectTestDb()

	instructor := models.User{
		Username: "updinstructor", Email: "updinstructor@example.com",
		Password: "hashed-password", Role: models.RoleInstructor, IsActive: true,
	}
	require.NoError(t, db.Create(&instructor).Error)
	category := models.Category{Name: "Programming", Slug: "programming"}
	require.NoError(t, db.Create(&category).Error)
	course := models.Course{
		Title: "Old Title", Slug: "old-title", Description: "A course",
		CategoryID: category.ID, InstructorID: instructor.ID,
		Level: models.LevelBeginner, IsActive: true,
	}
	require.NoError(t, db.Create(&course).Error)

	app := fiber.New()
	app.Put("/admin/course/:id", adminValidator.UpdateCourse(), UpdateCourse)

	payload, err := json.Marshal(fiber.Map{"title": "New Title", "price": 12.5})
	require.NoError(t, err)
	req := httptest.NewRequest(fiber.MethodPut,
		fmt.Sprintf("/admin/course/%d", course.ID), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// The response must carry the updated values, including the
	// regenerated slug, not the row as it was before the write
	var body struct {
		Data models.Course `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "New Title", body.Data.Title)
	assert.Equal(t, "new-title", body.Data.Slug)
	assert.InDelta(t, 12.5, body.Data.Price, 0.001)

	var stored models.Course
	require.NoError(t, db.First(&stored, course.ID).Error)
	assert.Equal(t, "new-title", stored.Slug)
	assert.InDelta(t, 12.5, stored.Price, 0.001)
}
