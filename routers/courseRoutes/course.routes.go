package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all learner-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog (public)
	courseGroup.Get("/home", controllers.GetCourseShelves)
	courseGroup.Get("/list", validators.CourseList(), controllers.GetCourseList)
	courseGroup.Get("/detail/:slug", controllers.GetCourseDetails)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseProgress)

	// Reviews
	courseGroup.Get("/:id/reviews", validators.CourseID(), controllers.GetCourseReviews)
	courseGroup.Post("/:id/review", middleware.JWTMiddleware, validators.AddReview(), controllers.AddReview)
	courseGroup.Delete("/review/:review_id", middleware.JWTMiddleware, validators.ReviewID(), controllers.DeleteReview)

	// Favorites
	courseGroup.Post("/:id/favorite", middleware.JWTMiddleware, validators.CourseID(), controllers.ToggleFavorite)

	// Lessons
	lessonGroup := app.Group("/lesson")
	lessonGroup.Get("/:lesson_id", middleware.JWTMiddleware, validators.LessonID(), controllers.GetLesson)
	lessonGroup.Post("/:lesson_id/complete", middleware.JWTMiddleware, validators.LessonID(), controllers.MarkLessonComplete)
	lessonGroup.Post("/:lesson_id/position", middleware.JWTMiddleware, validators.UpdatePosition(), controllers.UpdateLessonPosition)

	// Learner area
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetMyEnrollments)
	userGroup.Get("/favorites", middleware.JWTMiddleware, controllers.GetMyFavorites)
	userGroup.Get("/reviews", middleware.JWTMiddleware, controllers.GetMyReviews)
	userGroup.Get("/dashboard", middleware.JWTMiddleware, controllers.GetUserDashboard)

	// Instructor area
	instructorGroup := app.Group("/instructor")
	instructorGroup.Get("/dashboard", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleInstructor, models.RoleAdmin), controllers.GetInstructorDashboard)
	instructorGroup.Get("/course/:id/stats", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleInstructor, models.RoleAdmin),
		validators.CourseID(), controllers.GetCourseStats)
}
