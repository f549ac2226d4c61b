package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment statuses
const (
	EnrollmentPending   = "pending"
	EnrollmentEnrolled  = "enrolled"
	EnrollmentCompleted = "completed"
	EnrollmentCancelled = "cancelled"
)

// Enrollment tracks a user's relationship to a course. At most one row
// exists per (user, course); enrolling again returns the existing row.
type Enrollment struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"uniqueIndex:idx_user_course;not null"`
	CourseID uint   `json:"course_id" gorm:"uniqueIndex:idx_user_course;not null"`
	Status   string `json:"status" gorm:"default:'pending'"` // pending, enrolled, completed, cancelled

	// Progress is a derived percentage (0-100, truncated), recomputed from
	// LessonProgress rows after every completion write.
	Progress int `json:"progress" gorm:"default:0"`

	EnrolledAt   time.Time  `json:"enrolled_at" gorm:"autoCreateTime"`
	CompletedAt  *time.Time `json:"completed_at"`
	LastAccessed time.Time  `json:"last_accessed" gorm:"autoUpdateTime"`
	Notes        string     `json:"notes" gorm:"type:text;default:''"`

	HasLifetimeAccess bool       `json:"has_lifetime_access" gorm:"default:false"`
	AccessExpiresAt   *time.Time `json:"access_expires_at"`

	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// ValidEnrollmentStatus reports whether status is one of the known statuses
func ValidEnrollmentStatus(status string) bool {
	switch status {
	case EnrollmentPending, EnrollmentEnrolled, EnrollmentCompleted, EnrollmentCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the enrollment is in a terminal status
func (e *Enrollment) IsTerminal() bool {
	return e.Status == EnrollmentCompleted || e.Status == EnrollmentCancelled
}

// HasAccess reports whether the learner may access course content at the
// given time. Lifetime access and an unexpired access window both override
// the status check.
func (e *Enrollment) HasAccess(now time.Time) bool {
	if e.HasLifetimeAccess {
		return true
	}
	if e.AccessExpiresAt != nil && e.AccessExpiresAt.After(now) {
		return true
	}
	return e.Status == EnrollmentEnrolled
}
