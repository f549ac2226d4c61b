package services

import (
	"errors"

	"lms/database"
	"lms/models"

	"gorm.io/gorm"
)

// CourseStats aggregates per-course numbers for instructor/admin screens.
type CourseStats struct {
	TotalStudents     int64   `json:"total_students"`
	CompletedStudents int64   `json:"completed_students"`
	PendingRequests   int64   `json:"pending_requests"`
	TotalReviews      int64   `json:"total_reviews"`
	AvgRating         float64 `json:"avg_rating"`
	TotalModules      int64   `json:"total_modules"`
	TotalLessons      int64   `json:"total_lessons"`
	TotalDuration     int64   `json:"total_duration_minutes"`
	CompletionRate    float64 `json:"completion_rate"`
}

// GetCourseStats computes aggregate statistics for one course.
func GetCourseStats(courseID uint) (CourseStats, error) {
	db := database.Database.Db

	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CourseStats{}, ErrNotFound
		}
		return CourseStats{}, err
	}

	var stats CourseStats
	db.Model(&models.Enrollment{}).
		Where("course_id = ? AND status = ?", courseID, models.EnrollmentEnrolled).
		Count(&stats.TotalStudents)
	db.Model(&models.Enrollment{}).
		Where("course_id = ? AND status = ?", courseID, models.EnrollmentCompleted).
		Count(&stats.CompletedStudents)
	db.Model(&models.Enrollment{}).
		Where("course_id = ? AND status = ?", courseID, models.EnrollmentPending).
		Count(&stats.PendingRequests)
	db.Model(&models.Review{}).Where("course_id = ?", courseID).Count(&stats.TotalReviews)
	db.Model(&models.CourseModule{}).Where("course_id = ?", courseID).Count(&stats.TotalModules)
	db.Model(&models.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ? AND course_modules.deleted_at IS NULL", courseID).
		Count(&stats.TotalLessons)

	var duration *int64
	db.Model(&models.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ? AND course_modules.deleted_at IS NULL", courseID).
		Select("SUM(lessons.duration_minutes)").
		Scan(&duration)
	if duration != nil {
		stats.TotalDuration = *duration
	}

	stats.AvgRating = course.Rating
	if stats.TotalStudents > 0 {
		stats.CompletionRate = float64(stats.CompletedStudents) / float64(stats.TotalStudents) * 100
	}

	return stats, nil
}

// EnrollmentStats totals enrollments by status across the whole platform.
type EnrollmentStats struct {
	Total          int64   `json:"total"`
	Pending        int64   `json:"pending"`
	Enrolled       int64   `json:"enrolled"`
	Completed      int64   `json:"completed"`
	Cancelled      int64   `json:"cancelled"`
	CompletionRate float64 `json:"completion_rate"`
}

// GetEnrollmentStats computes platform-wide enrollment totals.
func GetEnrollmentStats() EnrollmentStats {
	db := database.Database.Db

	var stats EnrollmentStats
	db.Model(&models.Enrollment{}).Count(&stats.Total)
	db.Model(&models.Enrollment{}).Where("status = ?", models.EnrollmentPending).Count(&stats.Pending)
	db.Model(&models.Enrollment{}).Where("status = ?", models.EnrollmentEnrolled).Count(&stats.Enrolled)
	db.Model(&models.Enrollment{}).Where("status = ?", models.EnrollmentCompleted).Count(&stats.Completed)
	db.Model(&models.Enrollment{}).Where("status = ?", models.EnrollmentCancelled).Count(&stats.Cancelled)

	if stats.Enrolled > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Enrolled) * 100
	}

	return stats
}

// UserDashboardStats is the learner's personal dashboard summary.
type UserDashboardStats struct {
	EnrolledCourses  int64 `json:"enrolled_courses"`
	CompletedCourses int64 `json:"completed_courses"`
	FavoriteCourses  int64 `json:"favorite_courses"`
	ReviewsWritten   int64 `json:"reviews_written"`
}

// GetUserDashboardStats computes a user's dashboard counters.
func GetUserDashboardStats(userID uint) UserDashboardStats {
	db := database.Database.Db

	var stats UserDashboardStats
	db.Model(&models.Enrollment{}).
		Where("user_id = ? AND status = ?", userID, models.EnrollmentEnrolled).
		Count(&stats.EnrolledCourses)
	db.Model(&models.Enrollment{}).
		Where("user_id = ? AND status = ?", userID, models.EnrollmentCompleted).
		Count(&stats.CompletedCourses)
	db.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&stats.FavoriteCourses)
	db.Model(&models.Review{}).Where("user_id = ?", userID).Count(&stats.ReviewsWritten)

	return stats
}

// InstructorDashboardStats summarises an instructor's catalog.
type InstructorDashboardStats struct {
	TotalCourses       int64   `json:"total_courses"`
	TotalStudents      int64   `json:"total_students"`
	TotalEnrollments   int64   `json:"total_enrollments"`
	PendingEnrollments int64   `json:"pending_enrollments"`
	TotalRevenue       float64 `json:"total_revenue"`
	AverageRating      float64 `json:"average_rating"`
}

// GetInstructorDashboardStats computes aggregate numbers over every course
// the instructor teaches.
func GetInstructorDashboardStats(instructorID uint) InstructorDashboardStats {
	db := database.Database.Db

	var stats InstructorDashboardStats

	var courseIDs []uint
	db.Model(&models.Course{}).Where("instructor_id = ?", instructorID).Pluck("id", &courseIDs)
	stats.TotalCourses = int64(len(courseIDs))
	if len(courseIDs) == 0 {
		return stats
	}

	db.Model(&models.Enrollment{}).
		Where("course_id IN ? AND status = ?", courseIDs, models.EnrollmentEnrolled).
		Distinct("user_id").
		Count(&stats.TotalStudents)
	db.Model(&models.Enrollment{}).Where("course_id IN ?", courseIDs).Count(&stats.TotalEnrollments)
	db.Model(&models.Enrollment{}).
		Where("course_id IN ? AND status = ?", courseIDs, models.EnrollmentPending).
		Count(&stats.PendingEnrollments)

	var revenue *float64
	db.Model(&models.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.course_id IN ? AND enrollments.status = ?", courseIDs, models.EnrollmentEnrolled).
		Select("SUM(courses.price)").
		Scan(&revenue)
	if revenue != nil {
		stats.TotalRevenue = *revenue
	}

	var avg *float64
	db.Model(&models.Course{}).
		Where("instructor_id = ?", instructorID).
		Select("AVG(rating)").
		Scan(&avg)
	if avg != nil {
		stats.AverageRating = *avg
	}

	return stats
}

// AdminDashboardStats is the platform-wide admin overview.
type AdminDashboardStats struct {
	TotalUsers         int64   `json:"total_users"`
	TotalStudents      int64   `json:"total_students"`
	TotalInstructors   int64   `json:"total_instructors"`
	TotalAdmins        int64   `json:"total_admins"`
	TotalCourses       int64   `json:"total_courses"`
	ActiveCourses      int64   `json:"active_courses"`
	TotalEnrollments   int64   `json:"total_enrollments"`
	PendingEnrollments int64   `json:"pending_enrollments"`
	TotalReviews       int64   `json:"total_reviews"`
	TotalRevenue       float64 `json:"total_revenue"`
}

// GetAdminDashboardStats computes the platform-wide totals. Revenue is the
// sum of course price over enrolled-status enrollments.
func GetAdminDashboardStats() AdminDashboardStats {
	db := database.Database.Db

	var stats AdminDashboardStats
	db.Model(&models.User{}).Count(&stats.TotalUsers)
	db.Model(&models.User{}).Where("role = ?", models.RoleUser).Count(&stats.TotalStudents)
	db.Model(&models.User{}).Where("role = ?", models.RoleInstructor).Count(&stats.TotalInstructors)
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&stats.TotalAdmins)
	db.Model(&models.Course{}).Count(&stats.TotalCourses)
	db.Model(&models.Course{}).Where("is_active = ?", true).Count(&stats.ActiveCourses)
	db.Model(&models.Enrollment{}).Count(&stats.TotalEnrollments)
	db.Model(&models.Enrollment{}).
		Where("status = ?", models.EnrollmentPending).
		Count(&stats.PendingEnrollments)
	db.Model(&models.Review{}).Count(&stats.TotalReviews)

	var revenue *float64
	db.Model(&models.Enrollment{}).
		Joins("JOIN courses ON courses.id = enrollments.course_id").
		Where("enrollments.status = ?", models.EnrollmentEnrolled).
		Select("SUM(courses.price)").
		Scan(&revenue)
	if revenue != nil {
		stats.TotalRevenue = *revenue
	}

	return stats
}
