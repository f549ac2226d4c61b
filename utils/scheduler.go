package utils

import (
	"log"
	"time"

	"lms/database"
	"lms/models"
	"lms/services"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// purgeExpiredNotifications removes notifications past their expiry
func purgeExpiredNotifications() {
	if purged := services.PurgeExpiredNotifications(); purged > 0 {
		logScheduler("Purged expired notifications")
	}
}

// recountCourseAggregates re-derives students_count and rating for every
// course from their source rows. The inline recomputes keep these correct;
// this nightly pass repairs any drift left by crashed requests.
func recountCourseAggregates() {
	var courseIDs []uint
	if err := database.Database.Db.Model(&models.Course{}).Pluck("id", &courseIDs).Error; err != nil {
		logScheduler("Error fetching course ids: " + err.Error())
		return
	}

	for _, id := range courseIDs {
		services.RecountStudents(id)
		services.RecomputeCourseRating(id)
	}

	logScheduler("Recounted aggregates for all courses")
}

// InitializeSchedulers starts the background cron jobs
func InitializeSchedulers() *cron.Cron {
	logScheduler("Initializing schedulers...")

	c := cron.New()

	// Hourly notification cleanup
	c.AddFunc("@hourly", purgeExpiredNotifications)

	// Nightly aggregate drift repair at 03:00
	c.AddFunc("0 3 * * *", recountCourseAggregates)

	c.Start()

	logScheduler("All schedulers initialized successfully")
	return c
}
