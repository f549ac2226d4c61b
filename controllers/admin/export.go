package adminController

import (
	"bytes"
	"log"

	"lms/middleware"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// serveCSV writes a CSV attachment built by the given exporter
func serveCSV(c *fiber.Ctx, filename string, export func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := export(&buf); err != nil {
		log.Printf("Error exporting %s: %v", filename, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to export data!", nil)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// ExportUsers downloads all users as CSV
func ExportUsers(c *fiber.Ctx) error {
	return serveCSV(c, "users.csv", func(buf *bytes.Buffer) error {
		return services.ExportUsersCSV(buf)
	})
}

// ExportCourses downloads all courses as CSV
func ExportCourses(c *fiber.Ctx) error {
	return serveCSV(c, "courses.csv", func(buf *bytes.Buffer) error {
		return services.ExportCoursesCSV(buf)
	})
}

// ExportEnrollments downloads all enrollments as CSV
func ExportEnrollments(c *fiber.Ctx) error {
	return serveCSV(c, "enrollments.csv", func(buf *bytes.Buffer) error {
		return services.ExportEnrollmentsCSV(buf)
	})
}
