package models

import "gorm.io/gorm"

// CourseModule is an ordered section within a course. OrderIndex is not
// unique; ties keep insertion order.
type CourseModule struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text;default:''"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`

	Course Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
