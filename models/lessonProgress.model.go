package models

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress records per-lesson completion and resume position for one
// enrollment. Created lazily the first time a learner touches a lesson;
// unique per (enrollment, lesson).
type LessonProgress struct {
	gorm.Model
	EnrollmentID uint `json:"enrollment_id" gorm:"uniqueIndex:idx_enrollment_lesson;not null"`
	LessonID     uint `json:"lesson_id" gorm:"uniqueIndex:idx_enrollment_lesson;not null"`

	IsCompleted bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"` // stamped once, on first completion

	// Advanced by the client as the learner watches; not enforced monotonic.
	LastWatchedPosition int `json:"last_watched_position" gorm:"default:0"`

	Enrollment Enrollment `json:"-" gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE"`
	Lesson     Lesson     `json:"-" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
}
