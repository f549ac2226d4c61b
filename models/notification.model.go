package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification types
const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// Notification is a user-addressed message created as a side effect of
// enrollment, review and course events. Never created by direct user action.
type Notification struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID uint      `json:"user_id" gorm:"index;not null"`

	Title            string `json:"title" gorm:"not null"`
	Message          string `json:"message" gorm:"type:text;not null"`
	NotificationType string `json:"notification_type" gorm:"default:'info'"` // info, success, warning, error

	Link string `json:"link" gorm:"default:''"`
	Icon string `json:"icon" gorm:"default:''"`

	IsRead      bool `json:"is_read" gorm:"default:false"`
	IsImportant bool `json:"is_important" gorm:"default:false"`

	CreatedAt time.Time  `json:"created_at"`
	ReadAt    *time.Time `json:"read_at"`
	ExpiresAt *time.Time `json:"expires_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate assigns a UUID primary key
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// MarkAsRead stamps read_at the first time the notification is read
func (n *Notification) MarkAsRead(tx *gorm.DB) error {
	if n.IsRead {
		return nil
	}
	now := time.Now()
	n.IsRead = true
	n.ReadAt = &now
	return tx.Model(n).Updates(map[string]interface{}{"is_read": true, "read_at": now}).Error
}
