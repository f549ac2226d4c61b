package services

import (
	"fmt"
	"regexp"
	"strings"

	"lms/database"
	"lms/models"

	"gorm.io/gorm"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)
	slugDashes  = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a title into a url-safe slug
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalid.ReplaceAllString(slug, "-")
	slug = slugDashes.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// UniqueCourseSlug derives a slug from the title, suffixing -2, -3, ... on
// collision with an existing course slug. The check is Unscoped: the unique
// index still covers soft-deleted rows, so their slugs stay taken.
func UniqueCourseSlug(title string) string {
	db := database.Database.Db

	base := Slugify(title)
	if base == "" {
		base = "course"
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		db.Unscoped().Model(&models.Course{}).Where("slug = ?", slug).Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// UniqueCategorySlug is UniqueCourseSlug for categories.
func UniqueCategorySlug(name string) string {
	db := database.Database.Db

	base := Slugify(name)
	if base == "" {
		base = "category"
	}

	slug := base
	for i := 2; ; i++ {
		var count int64
		db.Unscoped().Model(&models.Category{}).Where("slug = ?", slug).Count(&count)
		if count == 0 {
			return slug
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// CourseFilters narrows the course list query. Zero values are ignored.
type CourseFilters struct {
	Query        string
	CategorySlug string
	Level        string
	MinPrice     *float64
	MaxPrice     *float64
	MinRating    *float64
	InstructorID uint
	FreeOnly     bool
	Sort         string
}

// courseSortWhitelist maps allowed sort keys to order clauses
// Order clauses qualify the table; the category filter joins categories,
// which shares column names with courses.
var courseSortWhitelist = map[string]string{
	"title":       "courses.title asc",
	"-title":      "courses.title desc",
	"price":       "courses.price asc",
	"-price":      "courses.price desc",
	"rating":      "courses.rating desc, courses.students_count desc",
	"popular":     "courses.students_count desc, courses.rating desc",
	"created_at":  "courses.created_at asc",
	"-created_at": "courses.created_at desc",
}

// SearchCourses builds the filtered, ordered query over active courses.
// Callers apply pagination and Find.
func SearchCourses(filters CourseFilters) *gorm.DB {
	db := database.Database.Db

	query := db.Model(&models.Course{}).Where("courses.is_active = ?", true)

	if q := strings.TrimSpace(filters.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(courses.title) LIKE ? OR LOWER(courses.description) LIKE ? OR LOWER(courses.short_description) LIKE ?",
			like, like, like)
	}
	if filters.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = courses.category_id").
			Where("categories.slug = ?", filters.CategorySlug)
	}
	if filters.Level != "" {
		query = query.Where("level = ?", filters.Level)
	}
	if filters.MinPrice != nil {
		query = query.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", *filters.MaxPrice)
	}
	if filters.MinRating != nil {
		query = query.Where("rating >= ?", *filters.MinRating)
	}
	if filters.InstructorID != 0 {
		query = query.Where("instructor_id = ?", filters.InstructorID)
	}
	if filters.FreeOnly {
		query = query.Where("price = 0")
	}

	order := "courses.created_at desc"
	if clause, ok := courseSortWhitelist[filters.Sort]; ok {
		order = clause
	}

	return query.Order(order)
}

// FeaturedCourses returns active featured courses, newest first
func FeaturedCourses(limit int) []models.Course {
	db := database.Database.Db

	var courses []models.Course
	db.Where("is_active = ? AND is_featured = ?", true, true).
		Preload("Category").Preload("Instructor").
		Order("created_at desc").Limit(limit).
		Find(&courses)
	return courses
}

// LatestCourses returns the newest active courses
func LatestCourses(limit int) []models.Course {
	db := database.Database.Db

	var courses []models.Course
	db.Where("is_active = ?", true).
		Preload("Category").Preload("Instructor").
		Order("created_at desc").Limit(limit).
		Find(&courses)
	return courses
}

// PopularCourses orders by student count, rating breaking ties
func PopularCourses(limit int) []models.Course {
	db := database.Database.Db

	var courses []models.Course
	db.Where("is_active = ?", true).
		Preload("Category").Preload("Instructor").
		Order("students_count desc, rating desc").Limit(limit).
		Find(&courses)
	return courses
}

// TopRatedCourses returns rated courses ordered by rating
func TopRatedCourses(limit int) []models.Course {
	db := database.Database.Db

	var courses []models.Course
	db.Where("is_active = ? AND rating > 0", true).
		Preload("Category").Preload("Instructor").
		Order("rating desc, students_count desc").Limit(limit).
		Find(&courses)
	return courses
}

// FreeCourses returns active zero-price courses
func FreeCourses(limit int) []models.Course {
	db := database.Database.Db

	var courses []models.Course
	db.Where("is_active = ? AND price = 0", true).
		Preload("Category").Preload("Instructor").
		Order("created_at desc").Limit(limit).
		Find(&courses)
	return courses
}

// RelatedCourses finds active courses sharing the category or level,
// excluding the course itself.
func RelatedCourses(course *models.Course, limit int) []models.Course {
	db := database.Database.Db

	var courses []models.Course
	db.Where("is_active = ? AND id != ? AND (category_id = ? OR level = ?)",
		true, course.ID, course.CategoryID, course.Level).
		Preload("Category").Preload("Instructor").
		Order("rating desc").Limit(limit).
		Find(&courses)
	return courses
}

// IncrementCourseViews bumps the view counter. Views are a plain counter,
// not a derived aggregate, so an in-place increment is fine here.
func IncrementCourseViews(courseID uint) {
	db := database.Database.Db

	db.Model(&models.Course{}).Where("id = ?", courseID).
		UpdateColumn("views_count", gorm.Expr("views_count + 1"))
}
