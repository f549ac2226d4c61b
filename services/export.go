package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"lms/database"
	"lms/models"
)

// CSV exports for the admin reports screen. Field order is the contract;
// timestamps are RFC3339.

func csvTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ExportUsersCSV writes all users as CSV
func ExportUsersCSV(w io.Writer) error {
	db := database.Database.Db

	var users []models.User
	if err := db.Order("id asc").Find(&users).Error; err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Username", "Email", "First Name", "Last Name", "Role", "Date Joined", "Is Active"}); err != nil {
		return err
	}

	for _, u := range users {
		record := []string{
			u.Username,
			u.Email,
			u.FirstName,
			u.LastName,
			u.Role,
			csvTime(u.DateJoined),
			strconv.FormatBool(u.IsActive),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportCoursesCSV writes all courses as CSV
func ExportCoursesCSV(w io.Writer) error {
	db := database.Database.Db

	var courses []models.Course
	if err := db.Preload("Category").Preload("Instructor").Order("id asc").Find(&courses).Error; err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Title", "Category", "Instructor", "Price", "Level", "Students", "Rating", "Created"}); err != nil {
		return err
	}

	for _, c := range courses {
		record := []string{
			c.Title,
			c.Category.Name,
			c.Instructor.Username,
			strconv.FormatFloat(c.Price, 'f', 2, 64),
			c.Level,
			strconv.Itoa(c.StudentsCount),
			fmt.Sprintf("%.1f", c.Rating),
			csvTime(c.CreatedAt),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportEnrollmentsCSV writes all enrollments as CSV
func ExportEnrollmentsCSV(w io.Writer) error {
	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Preload("User").Preload("Course").Order("id asc").Find(&enrollments).Error; err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"User", "Course", "Status", "Enrolled At", "Progress", "Notes"}); err != nil {
		return err
	}

	for _, e := range enrollments {
		record := []string{
			e.User.Username,
			e.Course.Title,
			e.Status,
			csvTime(e.EnrolledAt),
			strconv.Itoa(e.Progress),
			e.Notes,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
