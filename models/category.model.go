package models

import "gorm.io/gorm"

// Category groups courses; categories can be nested one level via ParentID
type Category struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Slug        string `json:"slug" gorm:"unique;not null"`
	Description string `json:"description" gorm:"type:text;default:''"`
	Icon        string `json:"icon" gorm:"default:'fa-folder'"`
	ParentID    *uint  `json:"parent_id" gorm:"index"`
}
