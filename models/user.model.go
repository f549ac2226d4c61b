package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleUser       = "user"
)

type User struct {
	gorm.Model
	Username    string     `json:"username" gorm:"unique;not null"`
	Email       string     `json:"email" gorm:"unique;not null"`
	FirstName   string     `json:"first_name" gorm:"default:''"`
	LastName    string     `json:"last_name" gorm:"default:''"`
	Role        string     `json:"role" gorm:"default:'user'"` // admin, instructor, user
	Password    string     `json:"-" gorm:"not null"`
	PhoneNumber string     `json:"phone_number" gorm:"default:''"`
	Bio         string     `json:"bio" gorm:"type:text;default:''"`
	AvatarURL   string     `json:"avatar_url" gorm:"default:''"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	DateJoined  time.Time  `json:"date_joined" gorm:"autoCreateTime"`
	LastLogin   *time.Time `json:"last_login"`
}

// IsAdminUser reports whether the user has the admin role
func (u *User) IsAdminUser() bool {
	return u.Role == RoleAdmin
}

// IsInstructor reports whether the user has the instructor role
func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

// ValidRole reports whether role is one of the known roles
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleInstructor || role == RoleUser
}
