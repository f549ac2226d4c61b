package services

import (
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFavorite(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	alice := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 0)

	favorited, message, err := ToggleFavorite(alice.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, favorited)
	assert.Equal(t, "Added to favorites", message)
	assert.True(t, IsFavorite(alice.ID, course.ID))

	favorited, message, err = ToggleFavorite(alice.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, favorited)
	assert.Equal(t, "Removed from favorites", message)
	assert.False(t, IsFavorite(alice.ID, course.ID))

	// The toggle leaves no rows behind, soft-deleted or otherwise
	var count int64
	db.Unscoped().Model(&models.Favorite{}).Where("user_id = ?", alice.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// And the slot can be used again
	favorited, _, err = ToggleFavorite(alice.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, favorited)
}

func TestToggleFavoriteUnknownCourse(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, models.RoleUser)

	_, _, err := ToggleFavorite(alice.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
