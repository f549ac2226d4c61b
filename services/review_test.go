package services

import (
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatingIsMeanOfReviews(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	course := seedCourse(t, db, instructor, 0)

	alice := seedUser(t, db, models.RoleUser)
	bob := seedUser(t, db, models.RoleUser)
	carol := seedUser(t, db, models.RoleUser)

	_, _, err := CreateOrUpdateReview(alice.ID, course.ID, 5, "great")
	require.NoError(t, err)
	_, _, err = CreateOrUpdateReview(bob.ID, course.ID, 3, "okay")
	require.NoError(t, err)
	_, _, err = CreateOrUpdateReview(carol.ID, course.ID, 4, "good")
	require.NoError(t, err)

	assert.InDelta(t, 4.0, reloadCourse(t, db, course.ID).Rating, 0.001)
}

func TestDeleteReviewRecomputesRating(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	course := seedCourse(t, db, instructor, 0)

	alice := seedUser(t, db, models.RoleUser)
	bob := seedUser(t, db, models.RoleUser)

	_, _, err := CreateOrUpdateReview(alice.ID, course.ID, 5, "great")
	require.NoError(t, err)
	review, _, err := CreateOrUpdateReview(bob.ID, course.ID, 3, "okay")
	require.NoError(t, err)

	require.NoError(t, DeleteReview(review.ID, bob.ID))
	assert.InDelta(t, 5.0, reloadCourse(t, db, course.ID).Rating, 0.001)

	// Deleting the last review resets the rating to zero
	var remaining models.Review
	require.NoError(t, db.Where("user_id = ?", alice.ID).First(&remaining).Error)
	require.NoError(t, DeleteReview(remaining.ID, alice.ID))
	assert.InDelta(t, 0.0, reloadCourse(t, db, course.ID).Rating, 0.001)
}

func TestReviewUpsertKeepsOneRowPerUser(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	course := seedCourse(t, db, instructor, 0)
	alice := seedUser(t, db, models.RoleUser)

	first, created, err := CreateOrUpdateReview(alice.ID, course.ID, 2, "meh")
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := CreateOrUpdateReview(alice.ID, course.ID, 5, "it grew on me")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&models.Review{}).Where("course_id = ?", course.ID).Count(&count)
	assert.Equal(t, int64(1), count)
	assert.InDelta(t, 5.0, reloadCourse(t, db, course.ID).Rating, 0.001)
}

func TestReviewRatingBounds(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	course := seedCourse(t, db, instructor, 0)
	alice := seedUser(t, db, models.RoleUser)

	_, _, err := CreateOrUpdateReview(alice.ID, course.ID, 0, "nope")
	assert.ErrorIs(t, err, ErrValidation)
	_, _, err = CreateOrUpdateReview(alice.ID, course.ID, 6, "too much")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteReviewPermissions(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	course := seedCourse(t, db, instructor, 0)

	alice := seedUser(t, db, models.RoleUser)
	mallory := seedUser(t, db, models.RoleUser)
	admin := seedUser(t, db, models.RoleAdmin)

	review, _, err := CreateOrUpdateReview(alice.ID, course.ID, 4, "good")
	require.NoError(t, err)

	assert.ErrorIs(t, DeleteReview(review.ID, mallory.ID), ErrNotOwner)
	require.NoError(t, DeleteReview(review.ID, admin.ID))
	assert.ErrorIs(t, DeleteReview(review.ID, alice.ID), ErrNotFound)
}

func TestNewReviewNotifiesInstructor(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	course := seedCourse(t, db, instructor, 0)
	alice := seedUser(t, db, models.RoleUser)

	_, _, err := CreateOrUpdateReview(alice.ID, course.ID, 4, "good")
	require.NoError(t, err)
	assert.Equal(t, int64(1), UnreadNotificationCount(instructor.ID))

	// Editing the review does not re-notify
	_, _, err = CreateOrUpdateReview(alice.ID, course.ID, 5, "better")
	require.NoError(t, err)
	assert.Equal(t, int64(1), UnreadNotificationCount(instructor.ID))
}

func TestDeletedReviewSlotCanBeReused(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	course := seedCourse(t, db, instructor, 0)
	alice := seedUser(t, db, models.RoleUser)

	review, _, err := CreateOrUpdateReview(alice.ID, course.ID, 2, "early days")
	require.NoError(t, err)
	require.NoError(t, DeleteReview(review.ID, alice.ID))

	_, created, err := CreateOrUpdateReview(alice.ID, course.ID, 5, "finished it")
	require.NoError(t, err)
	assert.True(t, created)
}
