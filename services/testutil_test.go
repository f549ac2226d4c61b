package services

import (
	"fmt"
	"testing"

	"lms/database"
	"lms/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory database for one test
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return database.ConnectTestDb()
}

var userSeq int

func seedUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	userSeq++
	user := models.User{
		Username: fmt.Sprintf("user%d", userSeq),
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		Role:     role,
		Password: "hashed-password",
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := models.Category{
		Name: name,
		Slug: Slugify(name),
	}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

var courseSeq int

func seedCourse(t *testing.T, db *gorm.DB, instructor *models.User, price float64) *models.Course {
	t.Helper()
	courseSeq++
	category := seedCategory(t, db, fmt.Sprintf("Category %d", courseSeq))
	course := models.Course{
		Title:        fmt.Sprintf("Course %d", courseSeq),
		Slug:         fmt.Sprintf("course-%d", courseSeq),
		Description:  "A course for testing",
		CategoryID:   category.ID,
		InstructorID: instructor.ID,
		Price:        price,
		Level:        models.LevelBeginner,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&course).Error)
	return &course
}

// seedCurriculum creates one module with the given number of lessons
func seedCurriculum(t *testing.T, db *gorm.DB, course *models.Course, lessonCount int) []models.Lesson {
	t.Helper()
	module := models.CourseModule{
		CourseID: course.ID,
		Title:    "Module 1",
	}
	require.NoError(t, db.Create(&module).Error)

	lessons := make([]models.Lesson, 0, lessonCount)
	for i := 0; i < lessonCount; i++ {
		lesson := models.Lesson{
			ModuleID:        module.ID,
			Title:           fmt.Sprintf("Lesson %d", i+1),
			DurationMinutes: 10,
			OrderIndex:      i,
		}
		require.NoError(t, db.Create(&lesson).Error)
		lessons = append(lessons, lesson)
	}
	return lessons
}

func reloadEnrollment(t *testing.T, db *gorm.DB, id uint) *models.Enrollment {
	t.Helper()
	var enrollment models.Enrollment
	require.NoError(t, db.First(&enrollment, id).Error)
	return &enrollment
}

func reloadCourse(t *testing.T, db *gorm.DB, id uint) *models.Course {
	t.Helper()
	var course models.Course
	require.NoError(t, db.First(&course, id).Error)
	return &course
}
