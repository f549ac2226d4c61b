package adminRoutes

import (
	controllers "lms/controllers/admin"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up all admin management routes
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	// Dashboard
	adminGroup.Get("/dashboard", controllers.GetDashboard)

	// Enrollment management
	adminGroup.Get("/enrollments", validators.List(), controllers.ListEnrollments)
	adminGroup.Post("/enrollment/:enrollment_id/approve", validators.EnrollmentID(), controllers.ApproveEnrollment)
	adminGroup.Post("/enrollment/:enrollment_id/reject", validators.EnrollmentID(), controllers.RejectEnrollment)
	adminGroup.Put("/enrollment/:enrollment_id/status", validators.UpdateEnrollmentStatus(), controllers.UpdateEnrollmentStatus)

	// Course management
	adminGroup.Post("/course/create", validators.CreateCourse(), controllers.CreateCourse)
	adminGroup.Put("/course/:id", validators.UpdateCourse(), controllers.UpdateCourse)
	adminGroup.Delete("/course/:id", validators.CourseID(), controllers.DeleteCourse)
	adminGroup.Post("/course/:id/toggle-active", validators.CourseID(), controllers.ToggleCourseActive)
	adminGroup.Post("/course/:id/toggle-featured", validators.CourseID(), controllers.ToggleCourseFeatured)

	// Curriculum management
	adminGroup.Post("/course/:id/module", validators.CreateModule(), controllers.CreateModule)
	adminGroup.Post("/module/:module_id/lesson", validators.CreateLesson(), controllers.CreateLesson)

	// Categories
	adminGroup.Get("/categories", controllers.ListCategories)
	adminGroup.Post("/category/create", validators.CreateCategory(), controllers.CreateCategory)

	// User management
	adminGroup.Get("/users", validators.List(), controllers.ListUsers)
	adminGroup.Post("/user/:user_id/toggle-active", validators.UserID(), controllers.ToggleUserActive)
	adminGroup.Put("/user/:user_id/role", validators.ChangeUserRole(), controllers.ChangeUserRole)

	// Review moderation
	adminGroup.Delete("/review/:review_id", validators.ReviewID(), controllers.DeleteReview)

	// Data export
	adminGroup.Get("/export/users", controllers.ExportUsers)
	adminGroup.Get("/export/courses", controllers.ExportCourses)
	adminGroup.Get("/export/enrollments", controllers.ExportEnrollments)
}
