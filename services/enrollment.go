package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"lms/database"
	"lms/models"

	"gorm.io/gorm"
)

// Enroll creates an enrollment for the user in the course, or returns the
// existing one untouched. Free courses are enrolled immediately; priced
// courses start out pending approval. The returned bool is true when a new
// row was created.
func Enroll(userID, courseID uint) (*models.Enrollment, bool, error) {
	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	var enrollment models.Enrollment
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err == nil {
		// Already enrolled in some status; idempotent no-op.
		return &enrollment, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	status := models.EnrollmentPending
	if course.IsFree() {
		status = models.EnrollmentEnrolled
	}

	enrollment = models.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		Status:     status,
		EnrolledAt: time.Now(),
	}
	if err := db.Create(&enrollment).Error; err != nil {
		return nil, false, err
	}

	if status == models.EnrollmentEnrolled {
		RecountStudents(courseID)
		Notify(userID, "Enrollment confirmed",
			fmt.Sprintf("You are now enrolled in \"%s\". Happy learning!", course.Title),
			models.NotificationSuccess, "/courses/"+course.Slug, "fa-graduation-cap")
	}

	return &enrollment, true, nil
}

// ApproveEnrollment moves a pending enrollment to enrolled. Any other source
// status is an invalid transition.
func ApproveEnrollment(enrollmentID uint) (*models.Enrollment, error) {
	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Preload("Course").Preload("User").First(&enrollment, enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if enrollment.Status != models.EnrollmentPending {
		return nil, ErrInvalidTransition
	}

	enrollment.Status = models.EnrollmentEnrolled
	if err := db.Model(&enrollment).Update("status", models.EnrollmentEnrolled).Error; err != nil {
		return nil, err
	}

	RecountStudents(enrollment.CourseID)
	Notify(enrollment.UserID, "Enrollment approved",
		fmt.Sprintf("Your enrollment in \"%s\" has been approved. Welcome aboard!", enrollment.Course.Title),
		models.NotificationSuccess, "/courses/"+enrollment.Course.Slug, "fa-check-circle")

	return &enrollment, nil
}

// RejectEnrollment moves a pending enrollment to cancelled.
func RejectEnrollment(enrollmentID uint) (*models.Enrollment, error) {
	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.Preload("Course").First(&enrollment, enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if enrollment.Status != models.EnrollmentPending {
		return nil, ErrInvalidTransition
	}

	enrollment.Status = models.EnrollmentCancelled
	if err := db.Model(&enrollment).Update("status", models.EnrollmentCancelled).Error; err != nil {
		return nil, err
	}

	Notify(enrollment.UserID, "Enrollment rejected",
		fmt.Sprintf("Your enrollment request for \"%s\" was not approved.", enrollment.Course.Title),
		models.NotificationWarning, "", "fa-times-circle")

	return &enrollment, nil
}

// UpdateEnrollmentStatus is the admin override: any status may be set from
// any source status. completed_at is stamped only on the first entry into
// completed.
func UpdateEnrollmentStatus(enrollmentID uint, newStatus string) (*models.Enrollment, error) {
	if !models.ValidEnrollmentStatus(newStatus) {
		return nil, ErrValidation
	}

	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.First(&enrollment, enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{"status": newStatus}
	if newStatus == models.EnrollmentCompleted && enrollment.CompletedAt == nil {
		now := time.Now()
		enrollment.CompletedAt = &now
		updates["completed_at"] = now
	}
	enrollment.Status = newStatus

	if err := db.Model(&enrollment).Updates(updates).Error; err != nil {
		return nil, err
	}

	RecountStudents(enrollment.CourseID)

	return &enrollment, nil
}

// RecountStudents recomputes a course's students_count from the authoritative
// query (count of enrolled-status enrollments) instead of incrementing, so
// the value cannot drift.
func RecountStudents(courseID uint) {
	db := database.Database.Db

	var count int64
	db.Model(&models.Enrollment{}).
		Where("course_id = ? AND status = ?", courseID, models.EnrollmentEnrolled).
		Count(&count)

	if err := db.Model(&models.Course{}).Where("id = ?", courseID).
		Update("students_count", count).Error; err != nil {
		log.Printf("Error updating students_count for course %d: %v", courseID, err)
	}
}

// recalcProgress recomputes the enrollment's progress percentage from the
// authoritative LessonProgress rows. Hitting 100 flips the enrollment to
// completed, stamping completed_at exactly once and emitting a completion
// notification.
func recalcProgress(enrollment *models.Enrollment) error {
	db := database.Database.Db

	var totalLessons int64
	db.Model(&models.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ? AND course_modules.deleted_at IS NULL", enrollment.CourseID).
		Count(&totalLessons)

	var completedLessons int64
	db.Model(&models.LessonProgress{}).
		Where("enrollment_id = ? AND is_completed = ?", enrollment.ID, true).
		Count(&completedLessons)

	progress := 0
	if totalLessons > 0 {
		progress = int(completedLessons * 100 / totalLessons)
	}

	updates := map[string]interface{}{"progress": progress}
	enrollment.Progress = progress

	completedNow := false
	if progress == 100 && enrollment.Status != models.EnrollmentCompleted {
		enrollment.Status = models.EnrollmentCompleted
		updates["status"] = models.EnrollmentCompleted
		if enrollment.CompletedAt == nil {
			now := time.Now()
			enrollment.CompletedAt = &now
			updates["completed_at"] = now
		}
		completedNow = true
	}

	if err := db.Model(enrollment).Updates(updates).Error; err != nil {
		return err
	}

	if completedNow {
		var course models.Course
		if err := db.First(&course, enrollment.CourseID).Error; err == nil {
			Notify(enrollment.UserID, "Course completed",
				fmt.Sprintf("Congratulations! You have completed \"%s\".", course.Title),
				models.NotificationSuccess, "/courses/"+course.Slug, "fa-trophy")
		}
		// Completed learners no longer count as enrolled.
		RecountStudents(enrollment.CourseID)
	}

	return nil
}

// CheckoutSummary reports what a cart checkout produced.
type CheckoutSummary struct {
	Enrolled int `json:"enrolled"`
	Pending  int `json:"pending"`
	Skipped  int `json:"skipped"`
}

// Checkout enrolls the user in every course in the cart. Free courses land
// enrolled, priced ones pending. Courses already enrolled (any status) are
// counted by their current status and never downgraded; unknown or inactive
// course ids are skipped.
func Checkout(userID uint, courseIDs []uint) (CheckoutSummary, error) {
	var summary CheckoutSummary

	for _, courseID := range courseIDs {
		enrollment, _, err := Enroll(userID, courseID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				summary.Skipped++
				continue
			}
			return summary, err
		}

		if enrollment.Status == models.EnrollmentPending {
			summary.Pending++
		} else {
			summary.Enrolled++
		}
	}

	return summary, nil
}
