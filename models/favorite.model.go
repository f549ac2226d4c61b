package models

import "gorm.io/gorm"

// Favorite bookmarks a course for a user; pure toggle, no state machine.
type Favorite struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_user_course_fav;not null"`
	CourseID uint `json:"course_id" gorm:"uniqueIndex:idx_user_course_fav;not null"`

	User   User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course Course `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
