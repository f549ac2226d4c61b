package services

import (
	"errors"
	"fmt"
	"log"

	"lms/database"
	"lms/models"

	"gorm.io/gorm"
)

// CreateOrUpdateReview upserts the user's review of a course, keyed by
// (user, course), and recomputes the course rating. The returned bool is
// true when a new review was created.
func CreateOrUpdateReview(userID, courseID uint, rating int, comment string) (*models.Review, bool, error) {
	if rating < 1 || rating > 5 {
		return nil, false, ErrValidation
	}

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_active = ?", courseID, true).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	var review models.Review
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&review).Error
	created := false
	switch {
	case err == nil:
		review.Rating = rating
		review.Comment = comment
		if err := db.Model(&review).
			Updates(map[string]interface{}{"rating": rating, "comment": comment}).Error; err != nil {
			return nil, false, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		review = models.Review{
			UserID:   userID,
			CourseID: courseID,
			Rating:   rating,
			Comment:  comment,
		}
		if err := db.Create(&review).Error; err != nil {
			return nil, false, err
		}
		created = true
	default:
		return nil, false, err
	}

	RecomputeCourseRating(courseID)

	if created {
		var reviewer models.User
		db.First(&reviewer, userID)
		Notify(course.InstructorID, "New review",
			fmt.Sprintf("%s rated \"%s\" %d/5.", reviewer.Username, course.Title, rating),
			models.NotificationInfo, "/courses/"+course.Slug, "fa-star")
	}

	return &review, created, nil
}

// DeleteReview removes a review. Only the author or an admin may delete; the
// course rating is recomputed afterwards.
func DeleteReview(reviewID, actorID uint) error {
	db := database.Database.Db

	var review models.Review
	if err := db.First(&review, reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if review.UserID != actorID {
		var actor models.User
		if err := db.First(&actor, actorID).Error; err != nil || !actor.IsAdminUser() {
			return ErrNotOwner
		}
	}

	// Hard delete so the (user, course) slot frees up for a future review.
	if err := db.Unscoped().Delete(&review).Error; err != nil {
		return err
	}

	RecomputeCourseRating(review.CourseID)
	return nil
}

// RecomputeCourseRating recomputes the cached course rating as the arithmetic
// mean over all current reviews, 0.0 when none exist. Always derived from the
// authoritative rows, never adjusted in place.
func RecomputeCourseRating(courseID uint) {
	db := database.Database.Db

	var avg *float64
	db.Model(&models.Review{}).
		Where("course_id = ?", courseID).
		Select("AVG(rating)").
		Scan(&avg)

	rating := 0.0
	if avg != nil {
		rating = *avg
	}

	if err := db.Model(&models.Course{}).Where("id = ?", courseID).
		Update("rating", rating).Error; err != nil {
		log.Printf("Error updating rating for course %d: %v", courseID, err)
	}
}
