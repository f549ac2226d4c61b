package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"lms/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportUsersCSV(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, models.RoleUser)

	var buf bytes.Buffer
	require.NoError(t, ExportUsersCSV(&buf))

	records := parseCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Username", "Email", "First Name", "Last Name", "Role", "Date Joined", "Is Active"}, records[0])
	assert.Equal(t, user.Username, records[1][0])
	assert.Equal(t, user.Email, records[1][1])
	assert.Equal(t, models.RoleUser, records[1][4])
	assert.Equal(t, "true", records[1][6])
}

func TestExportCoursesCSV(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	course := seedCourse(t, db, instructor, 19.5)

	var buf bytes.Buffer
	require.NoError(t, ExportCoursesCSV(&buf))

	records := parseCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Title", "Category", "Instructor", "Price", "Level", "Students", "Rating", "Created"}, records[0])
	assert.Equal(t, course.Title, records[1][0])
	assert.Equal(t, instructor.Username, records[1][2])
	assert.Equal(t, "19.50", records[1][3])
	assert.Equal(t, models.LevelBeginner, records[1][4])
	assert.Equal(t, "0", records[1][5])
	assert.Equal(t, "0.0", records[1][6])
}

func TestExportEnrollmentsCSV(t *testing.T) {
	db := setupTestDB(t)
	instructor := seedUser(t, db, models.RoleInstructor)
	learner := seedUser(t, db, models.RoleUser)
	course := seedCourse(t, db, instructor, 0)

	_, _, err := Enroll(learner.ID, course.ID)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportEnrollmentsCSV(&buf))

	records := parseCSV(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"User", "Course", "Status", "Enrolled At", "Progress", "Notes"}, records[0])
	assert.Equal(t, learner.Username, records[1][0])
	assert.Equal(t, course.Title, records[1][1])
	assert.Equal(t, models.EnrollmentEnrolled, records[1][2])
	assert.Equal(t, "0", records[1][4])
}
