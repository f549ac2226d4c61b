package models

import "gorm.io/gorm"

// Lesson is a unit of content inside a module. Free lessons are viewable
// without an enrollment.
type Lesson struct {
	gorm.Model
	ModuleID        uint   `json:"module_id" gorm:"index;not null"`
	Title           string `json:"title" gorm:"not null"`
	VideoURL        string `json:"video_url" gorm:"default:''"`
	DurationMinutes int    `json:"duration_minutes" gorm:"default:0"`
	Content         string `json:"content" gorm:"type:text;default:''"`
	OrderIndex      int    `json:"order_index" gorm:"default:0"`
	IsFree          bool   `json:"is_free" gorm:"default:false"`

	Module CourseModule `json:"-" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
}
