package services

import (
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollFreeCourse(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 0)

	enrollment, created, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.EnrollmentEnrolled, enrollment.Status)
	assert.Equal(t, 0, enrollment.Progress)
	assert.Nil(t, enrollment.CompletedAt)

	// Free enrollment counts immediately and greets the learner
	assert.Equal(t, 1, reloadCourse(t, db, course.ID).StudentsCount)
	assert.Equal(t, int64(1), UnreadNotificationCount(learner.ID))
}

func TestEnrollPricedCourseStartsPending(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 49.99)

	enrollment, created, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.EnrollmentPending, enrollment.Status)

	// Pending enrollments do not count as students
	assert.Equal(t, 0, reloadCourse(t, db, course.ID).StudentsCount)
}

func TestEnrollIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 0)

	first, created, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.EnrolledAt.Unix(), second.EnrolledAt.Unix())

	var count int64
	db.Model(&models.Enrollment{}).Where("user_id = ?", learner.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnrollCancelledRowReturnedUnchanged(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 19.99)

	enrollment, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)
	_, err = RejectEnrollment(enrollment.ID)
	require.NoError(t, err)

	again, created, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, enrollment.ID, again.ID)
	assert.Equal(t, models.EnrollmentCancelled, again.Status)
}

func TestEnrollUnknownOrInactiveCourse(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)

	_, _, err := Enroll(learner.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)

	course := seedCourse(t, db, instructor, 0)
	require.NoError(t, db.Model(course).Update("is_active", false).Error)

	_, _, err = Enroll(learner.ID, course.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApproveEnrollment(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 29.99)

	enrollment, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)

	approved, err := ApproveEnrollment(enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentEnrolled, approved.Status)
	assert.Equal(t, 1, reloadCourse(t, db, course.ID).StudentsCount)

	// A second approval is an invalid transition
	_, err = ApproveEnrollment(enrollment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRejectEnrollment(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 29.99)

	enrollment, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)

	rejected, err := RejectEnrollment(enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentCancelled, rejected.Status)
	assert.Equal(t, 0, reloadCourse(t, db, course.ID).StudentsCount)

	_, err = RejectEnrollment(enrollment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRejectEnrolledIsInvalid(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 0)

	enrollment, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)

	_, err = RejectEnrollment(enrollment.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAdminOverrideStampsCompletedAtOnce(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 0)

	enrollment, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)

	completed, err := UpdateEnrollmentStatus(enrollment.ID, models.EnrollmentCompleted)
	require.NoError(t, err)
	require.NotNil(t, completed.CompletedAt)
	firstStamp := *completed.CompletedAt

	_, err = UpdateEnrollmentStatus(enrollment.ID, models.EnrollmentEnrolled)
	require.NoError(t, err)

	// Re-completing must not move the original completion time
	again, err := UpdateEnrollmentStatus(enrollment.ID, models.EnrollmentCompleted)
	require.NoError(t, err)
	require.NotNil(t, again.CompletedAt)
	assert.Equal(t, firstStamp.Unix(), again.CompletedAt.Unix())

	stored := reloadEnrollment(t, db, enrollment.ID)
	require.NotNil(t, stored.CompletedAt)
	assert.Equal(t, firstStamp.Unix(), stored.CompletedAt.Unix())
}

func TestAdminOverrideRecountsStudents(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 0)

	enrollment, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)
	require.Equal(t, 1, reloadCourse(t, db, course.ID).StudentsCount)

	_, err = UpdateEnrollmentStatus(enrollment.ID, models.EnrollmentCancelled)
	require.NoError(t, err)
	assert.Equal(t, 0, reloadCourse(t, db, course.ID).StudentsCount)

	_, err = UpdateEnrollmentStatus(enrollment.ID, models.EnrollmentEnrolled)
	require.NoError(t, err)
	assert.Equal(t, 1, reloadCourse(t, db, course.ID).StudentsCount)
}

func TestCheckout(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)

	free1 := seedCourse(t, db, instructor, 0)
	free2 := seedCourse(t, db, instructor, 0)
	priced := seedCourse(t, db, instructor, 99)

	summary, err := Checkout(learner.ID, []uint{free1.ID, free2.ID, priced.ID, 4242})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Enrolled)
	assert.Equal(t, 1, summary.Pending)
	assert.Equal(t, 1, summary.Skipped)

	// Checking out again never downgrades anything
	summary, err = Checkout(learner.ID, []uint{free1.ID, priced.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Enrolled)
	assert.Equal(t, 1, summary.Pending)
	assert.Equal(t, 0, summary.Skipped)
}
