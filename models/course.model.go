package models

import (
	"time"

	"gorm.io/gorm"
)

// Course levels
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelAll          = "all"
)

// Course represents a catalog entry taught by an instructor.
// StudentsCount and Rating are derived fields; they are written only by
// the recount/recompute functions in the services package.
type Course struct {
	gorm.Model
	Title            string  `json:"title" gorm:"not null"`
	Slug             string  `json:"slug" gorm:"uniqueIndex;not null"`
	Description      string  `json:"description" gorm:"type:text"`
	ShortDescription string  `json:"short_description" gorm:"default:''"`
	ImageURL         string  `json:"image_url" gorm:"default:''"`
	CategoryID       uint    `json:"category_id" gorm:"index;not null"`
	InstructorID     uint    `json:"instructor_id" gorm:"index;not null"`
	Price            float64 `json:"price" gorm:"default:0"`
	Level            string  `json:"level" gorm:"default:'beginner'"` // beginner, intermediate, advanced, all
	DurationHours    int     `json:"duration_hours" gorm:"default:0"`
	IsFeatured       bool    `json:"is_featured" gorm:"default:false"`
	IsActive         bool    `json:"is_active" gorm:"default:true"`
	StudentsCount    int     `json:"students_count" gorm:"default:0"`
	Rating           float64 `json:"rating" gorm:"default:0"`
	ViewsCount       int     `json:"views_count" gorm:"default:0"`

	DiscountPercent   int        `json:"discount_percent" gorm:"default:0"`
	DiscountStartDate *time.Time `json:"discount_start_date"`
	DiscountEndDate   *time.Time `json:"discount_end_date"`

	Category   Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
	Instructor User     `json:"instructor,omitempty" gorm:"foreignKey:InstructorID;constraint:OnDelete:CASCADE"`
}

// IsFree reports whether the course costs nothing
func (c *Course) IsFree() bool {
	return c.Price == 0
}

// HasDiscount reports whether a discount window is active at the given time
func (c *Course) HasDiscount(now time.Time) bool {
	if c.DiscountPercent <= 0 || c.DiscountStartDate == nil || c.DiscountEndDate == nil {
		return false
	}
	return !now.Before(*c.DiscountStartDate) && !now.After(*c.DiscountEndDate)
}

// CurrentPrice returns the price with any active discount applied
func (c *Course) CurrentPrice(now time.Time) float64 {
	if c.HasDiscount(now) {
		return c.Price * (100 - float64(c.DiscountPercent)) / 100
	}
	return c.Price
}
