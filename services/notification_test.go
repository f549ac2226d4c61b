package services

import (
	"testing"
	"time"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyCreatesUnread(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, models.RoleUser)

	Notify(alice.ID, "Welcome", "Hello there", models.NotificationInfo, "/", "fa-bell")

	var notification models.Notification
	require.NoError(t, db.Where("user_id = ?", alice.ID).First(&notification).Error)
	assert.False(t, notification.IsRead)
	assert.Nil(t, notification.ReadAt)
	assert.NotEqual(t, "", notification.ID.String())
	assert.Equal(t, int64(1), UnreadNotificationCount(alice.ID))
}

func TestMarkAllNotificationsRead(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, models.RoleUser)

	Notify(alice.ID, "One", "first", models.NotificationInfo, "", "")
	Notify(alice.ID, "Two", "second", models.NotificationSuccess, "", "")
	require.Equal(t, int64(2), UnreadNotificationCount(alice.ID))

	require.NoError(t, MarkAllNotificationsRead(alice.ID))
	assert.Equal(t, int64(0), UnreadNotificationCount(alice.ID))

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", alice.ID).Find(&notifications).Error)
	for _, n := range notifications {
		assert.True(t, n.IsRead)
		assert.NotNil(t, n.ReadAt)
	}
}

func TestMarkAsReadStampsOnce(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, models.RoleUser)

	Notify(alice.ID, "One", "first", models.NotificationInfo, "", "")

	var notification models.Notification
	require.NoError(t, db.Where("user_id = ?", alice.ID).First(&notification).Error)

	require.NoError(t, notification.MarkAsRead(db))
	require.NotNil(t, notification.ReadAt)
	firstStamp := *notification.ReadAt

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, notification.MarkAsRead(db))
	assert.Equal(t, firstStamp.Unix(), notification.ReadAt.Unix())
}

func TestPurgeExpiredNotifications(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, models.RoleUser)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	expired := models.Notification{UserID: alice.ID, Title: "old", Message: "old", ExpiresAt: &past}
	current := models.Notification{UserID: alice.ID, Title: "new", Message: "new", ExpiresAt: &future}
	forever := models.Notification{UserID: alice.ID, Title: "keep", Message: "keep"}
	require.NoError(t, db.Create(&expired).Error)
	require.NoError(t, db.Create(&current).Error)
	require.NoError(t, db.Create(&forever).Error)

	purged := PurgeExpiredNotifications()
	assert.Equal(t, int64(1), purged)

	var count int64
	db.Model(&models.Notification{}).Where("user_id = ?", alice.ID).Count(&count)
	assert.Equal(t, int64(2), count)

	// Unread counting already ignores expired rows before the purge runs
	assert.Equal(t, int64(2), UnreadNotificationCount(alice.ID))
}
