package services

import (
	"errors"
	"time"

	"lms/database"
	"lms/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressSnapshot summarises a learner's progress through a course.
type ProgressSnapshot struct {
	CompletedLessons int64 `json:"completed_lessons"`
	TotalLessons     int64 `json:"total_lessons"`
	Percentage       int   `json:"percentage"`
}

// enrollmentForLesson resolves the caller's enrollment in the course that
// owns the lesson. Only enrolled and completed enrollments may record
// progress.
func enrollmentForLesson(userID uint, lesson *models.Lesson) (*models.Enrollment, error) {
	db := database.Database.Db

	var module models.CourseModule
	if err := db.First(&module, lesson.ModuleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var enrollment models.Enrollment
	err := db.Where("user_id = ? AND course_id = ? AND status IN ?",
		userID, module.CourseID,
		[]string{models.EnrollmentEnrolled, models.EnrollmentCompleted}).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &enrollment, nil
}

// MarkLessonComplete records completion of a lesson for the user's enrollment
// and recomputes the enrollment's progress. Marking an already-completed
// lesson again is a no-op and does not touch completed_at.
func MarkLessonComplete(userID, lessonID uint) (*models.LessonProgress, error) {
	db := database.Database.Db

	var lesson models.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	enrollment, err := enrollmentForLesson(userID, &lesson)
	if err != nil {
		return nil, err
	}

	progress, err := lessonProgressRow(enrollment.ID, lessonID)
	if err != nil {
		return nil, err
	}

	if progress.IsCompleted {
		return progress, nil
	}

	now := time.Now()
	progress.IsCompleted = true
	progress.CompletedAt = &now
	if err := db.Model(progress).
		Updates(map[string]interface{}{"is_completed": true, "completed_at": now}).Error; err != nil {
		return nil, err
	}

	if err := recalcProgress(enrollment); err != nil {
		return nil, err
	}

	return progress, nil
}

// lessonProgressRow gets or creates the progress row for an enrollment and
// lesson. Concurrent writers racing on the same pair are a safe collision:
// the insert does nothing on conflict and the loser reads the winner's row.
func lessonProgressRow(enrollmentID, lessonID uint) (*models.LessonProgress, error) {
	db := database.Database.Db

	progress := models.LessonProgress{
		EnrollmentID: enrollmentID,
		LessonID:     lessonID,
	}
	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&progress)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if err := db.Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, lessonID).
			First(&progress).Error; err != nil {
			return nil, err
		}
	}

	return &progress, nil
}

// UpdateLessonPosition upserts the resume position for a lesson. Position
// writes never retrigger progress recomputation; they do not change the
// completion count.
func UpdateLessonPosition(userID, lessonID uint, position int) (*models.LessonProgress, error) {
	db := database.Database.Db

	var lesson models.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	enrollment, err := enrollmentForLesson(userID, &lesson)
	if err != nil {
		return nil, err
	}

	progress, err := lessonProgressRow(enrollment.ID, lessonID)
	if err != nil {
		return nil, err
	}

	progress.LastWatchedPosition = position
	if err := db.Model(progress).Update("last_watched_position", position).Error; err != nil {
		return nil, err
	}

	return progress, nil
}

// GetProgressSnapshot returns completed/total lesson counts and the truncated
// percentage for an enrollment. Zero lessons means zero percent.
func GetProgressSnapshot(enrollmentID uint) (ProgressSnapshot, error) {
	db := database.Database.Db

	var enrollment models.Enrollment
	if err := db.First(&enrollment, enrollmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProgressSnapshot{}, ErrNotFound
		}
		return ProgressSnapshot{}, err
	}

	var snapshot ProgressSnapshot
	db.Model(&models.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ? AND course_modules.deleted_at IS NULL", enrollment.CourseID).
		Count(&snapshot.TotalLessons)
	db.Model(&models.LessonProgress{}).
		Where("enrollment_id = ? AND is_completed = ?", enrollment.ID, true).
		Count(&snapshot.CompletedLessons)

	if snapshot.TotalLessons > 0 {
		snapshot.Percentage = int(snapshot.CompletedLessons * 100 / snapshot.TotalLessons)
	}

	return snapshot, nil
}

// CanAccessLesson is the content gate: free lessons are open to everyone,
// everything else needs an enrollment with access at the given time.
func CanAccessLesson(userID uint, lesson *models.Lesson, now time.Time) bool {
	if lesson.IsFree {
		return true
	}

	db := database.Database.Db

	var module models.CourseModule
	if err := db.First(&module, lesson.ModuleID).Error; err != nil {
		return false
	}

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ?", userID, module.CourseID).
		First(&enrollment).Error; err != nil {
		return false
	}

	return enrollment.HasAccess(now)
}
