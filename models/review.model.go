package models

import "gorm.io/gorm"

// Review is a learner's rating of a course, one per (user, course).
// Creating, updating or deleting a review recomputes the course rating.
type Review struct {
	gorm.Model
	UserID   uint   `json:"user_id" gorm:"uniqueIndex:idx_user_course_review;not null"`
	CourseID uint   `json:"course_id" gorm:"uniqueIndex:idx_user_course_review;not null"`
	Rating   int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment  string `json:"comment" gorm:"type:text"`

	User   User   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
