package main

import (
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"

	"lms/config"
	"lms/database"
	"lms/models"
	"lms/services"
)

// Bulk-imports courses from Catalog.csv. Expected headers:
// title, category, instructor_email, price, level, duration_hours, description
func main() {
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open("Catalog.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(strings.ToLower(h))] = i
	}

	db := database.Database.Db
	inserted := 0
	updated := 0
	skipped := 0

	for i, row := range records[1:] {
		title := getField(row, headerIndex, "title")
		if title == "" {
			log.Printf("Row %d: missing title, skipping", i+2)
			skipped++
			continue
		}

		categoryName := getField(row, headerIndex, "category")
		if categoryName == "" {
			categoryName = "General"
		}
		var category models.Category
		if err := db.Where("slug = ?", services.Slugify(categoryName)).First(&category).Error; err != nil {
			category = models.Category{
				Name: categoryName,
				Slug: services.UniqueCategorySlug(categoryName),
			}
			if err := db.Create(&category).Error; err != nil {
				log.Printf("Row %d: failed to create category %q: %v", i+2, categoryName, err)
				skipped++
				continue
			}
		}

		var instructor models.User
		email := strings.ToLower(getField(row, headerIndex, "instructor_email"))
		if err := db.Where("email = ?", email).First(&instructor).Error; err != nil {
			log.Printf("Row %d: instructor %q not found, skipping", i+2, email)
			skipped++
			continue
		}

		level := getField(row, headerIndex, "level")
		if level == "" {
			level = models.LevelBeginner
		}

		course := models.Course{
			Title:         title,
			Description:   getField(row, headerIndex, "description"),
			CategoryID:    category.ID,
			InstructorID:  instructor.ID,
			Price:         parseFloat(getField(row, headerIndex, "price")),
			Level:         level,
			DurationHours: parseInt(getField(row, headerIndex, "duration_hours")),
			IsActive:      true,
		}

		// Upsert by slugified title so re-running the import is safe
		var existing models.Course
		if err := db.Where("slug = ?", services.Slugify(title)).First(&existing).Error; err == nil {
			course.Slug = existing.Slug
			if err := db.Model(&existing).Updates(&course).Error; err != nil {
				log.Printf("Row %d: failed to update course %q: %v", i+2, title, err)
				skipped++
				continue
			}
			updated++
			continue
		}

		course.Slug = services.UniqueCourseSlug(title)
		if err := db.Create(&course).Error; err != nil {
			log.Printf("Row %d: failed to create course %q: %v", i+2, title, err)
			skipped++
			continue
		}
		inserted++
	}

	log.Printf("Import finished: %d inserted, %d updated, %d skipped", inserted, updated, skipped)
}

func getField(row []string, headerIndex map[string]int, name string) string {
	idx, ok := headerIndex[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func parseFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
