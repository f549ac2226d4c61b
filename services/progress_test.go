package services

import (
	"testing"
	"time"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressIsDerivedAndTruncated(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 0)
	lessons := seedCurriculum(t, db, course, 3)

	enrollment, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)

	_, err = MarkLessonComplete(learner.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 33, reloadEnrollment(t, db, enrollment.ID).Progress)

	_, err = MarkLessonComplete(learner.ID, lessons[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 66, reloadEnrollment(t, db, enrollment.ID).Progress)
}

func TestFullProgressCompletesEnrollment(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 0)
	lessons := seedCurriculum(t, db, course, 2)

	_, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)
	require.Equal(t, 1, reloadCourse(t, db, course.ID).StudentsCount)

	for _, lesson := range lessons {
		_, err = MarkLessonComplete(learner.ID, lesson.ID)
		require.NoError(t, err)
	}

	var enrollment models.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", learner.ID, course.ID).
		First(&enrollment).Error)
	assert.Equal(t, models.EnrollmentCompleted, enrollment.Status)
	assert.Equal(t, 100, enrollment.Progress)
	require.NotNil(t, enrollment.CompletedAt)
	firstStamp := *enrollment.CompletedAt

	// Completed learners are no longer counted as enrolled students
	assert.Equal(t, 0, reloadCourse(t, db, course.ID).StudentsCount)

	// Re-marking a lesson after completion leaves the stamp alone
	time.Sleep(10 * time.Millisecond)
	_, err = MarkLessonComplete(learner.ID, lessons[0].ID)
	require.NoError(t, err)
	stored := reloadEnrollment(t, db, enrollment.ID)
	require.NotNil(t, stored.CompletedAt)
	assert.Equal(t, firstStamp.Unix(), stored.CompletedAt.Unix())
}

func TestMarkLessonCompleteIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 0)
	lessons := seedCurriculum(t, db, course, 2)

	_, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)

	first, err := MarkLessonComplete(learner.ID, lessons[0].ID)
	require.NoError(t, err)
	require.NotNil(t, first.CompletedAt)
	firstStamp := *first.CompletedAt

	time.Sleep(10 * time.Millisecond)

	second, err := MarkLessonComplete(learner.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.CompletedAt)
	assert.Equal(t, firstStamp.Unix(), second.CompletedAt.Unix())

	var count int64
	db.Model(&models.LessonProgress{}).Where("lesson_id = ?", lessons[0].ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestLessonProgressInsertCollisionIsHarmless(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 0)
	lessons := seedCurriculum(t, db, course, 1)

	enrollment, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)

	existing := models.LessonProgress{
		EnrollmentID:        enrollment.ID,
		LessonID:            lessons[0].ID,
		LastWatchedPosition: 42,
	}
	require.NoError(t, db.Create(&existing).Error)

	// A writer whose insert loses the race must land on the winner's row
	// instead of surfacing the unique-constraint error
	progress, err := lessonProgressRow(enrollment.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, progress.ID)
	assert.Equal(t, 42, progress.LastWatchedPosition)

	var count int64
	db.Model(&models.LessonProgress{}).Where("enrollment_id = ?", enrollment.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// The full operation also completes cleanly over the pre-existing row
	marked, err := MarkLessonComplete(learner.ID, lessons[0].ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, marked.ID)
	assert.True(t, marked.IsCompleted)
}

func TestMarkLessonCompleteNeedsActiveEnrollment(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 49.99)
	lessons := seedCurriculum(t, db, course, 2)

	// Pending enrollments may not record progress
	_, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)

	_, err = MarkLessonComplete(learner.ID, lessons[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Nor may strangers
	stranger := seedUser(t, db, models.RoleUser)
	_, err = MarkLessonComplete(stranger.ID, lessons[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPositionUpdateDoesNotRecomputeProgress(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 0)
	lessons := seedCurriculum(t, db, course, 2)

	enrollment, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)

	progress, err := UpdateLessonPosition(learner.ID, lessons[0].ID, 125)
	require.NoError(t, err)
	assert.Equal(t, 125, progress.LastWatchedPosition)
	assert.False(t, progress.IsCompleted)

	// The enrollment's derived progress is untouched
	assert.Equal(t, 0, reloadEnrollment(t, db, enrollment.ID).Progress)

	// Moving the position on a completed lesson keeps it completed
	_, err = MarkLessonComplete(learner.ID, lessons[0].ID)
	require.NoError(t, err)
	progress, err = UpdateLessonPosition(learner.ID, lessons[0].ID, 250)
	require.NoError(t, err)
	assert.Equal(t, 250, progress.LastWatchedPosition)
	assert.True(t, progress.IsCompleted)
	assert.Equal(t, 50, reloadEnrollment(t, db, enrollment.ID).Progress)
}

func TestProgressSnapshot(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 0)
	lessons := seedCurriculum(t, db, course, 3)

	enrollment, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)

	snapshot, err := GetProgressSnapshot(enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), snapshot.TotalLessons)
	assert.Equal(t, int64(0), snapshot.CompletedLessons)
	assert.Equal(t, 0, snapshot.Percentage)

	_, err = MarkLessonComplete(learner.ID, lessons[0].ID)
	require.NoError(t, err)

	snapshot, err = GetProgressSnapshot(enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snapshot.CompletedLessons)
	assert.Equal(t, 33, snapshot.Percentage)
}

func TestProgressSnapshotWithNoLessons(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 0)

	enrollment, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)

	// A course without lessons reports zero percent, not a division error
	snapshot, err := GetProgressSnapshot(enrollment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), snapshot.TotalLessons)
	assert.Equal(t, 0, snapshot.Percentage)
	assert.Equal(t, models.EnrollmentEnrolled, reloadEnrollment(t, db, enrollment.ID).Status)
}

func TestCanAccessLesson(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 25)
	lessons := seedCurriculum(t, db, course, 2)
	now := time.Now()

	// Free lessons are open to everyone
	require.NoError(t, db.Model(&lessons[0]).Update("is_free", true).Error)
	lessons[0].IsFree = true
	assert.True(t, CanAccessLesson(learner.ID, &lessons[0], now))

	// No enrollment, no access
	assert.False(t, CanAccessLesson(learner.ID, &lessons[1], now))

	enrollment, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)

	// Pending does not grant access
	assert.False(t, CanAccessLesson(learner.ID, &lessons[1], now))

	_, err = ApproveEnrollment(enrollment.ID)
	require.NoError(t, err)
	assert.True(t, CanAccessLesson(learner.ID, &lessons[1], now))
}

func TestAccessWindows(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 25)
	lessons := seedCurriculum(t, db, course, 1)
	now := time.Now()

	enrollment, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)
	_, err = RejectEnrollment(enrollment.ID)
	require.NoError(t, err)

	// Cancelled with no grants: locked out
	assert.False(t, CanAccessLesson(learner.ID, &lessons[0], now))

	// An unexpired time grant overrides the cancelled status
	future := now.Add(24 * time.Hour)
	require.NoError(t, db.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).
		Update("access_expires_at", future).Error)
	assert.True(t, CanAccessLesson(learner.ID, &lessons[0], now))

	// An expired grant does not
	past := now.Add(-24 * time.Hour)
	require.NoError(t, db.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).
		Update("access_expires_at", past).Error)
	assert.False(t, CanAccessLesson(learner.ID, &lessons[0], now))

	// Lifetime access always wins
	require.NoError(t, db.Model(&models.Enrollment{}).Where("id = ?", enrollment.ID).
		Update("has_lifetime_access", true).Error)
	assert.True(t, CanAccessLesson(learner.ID, &lessons[0], now))
}
