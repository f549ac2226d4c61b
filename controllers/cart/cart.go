package cartController

import (
	"encoding/gob"
	"log"
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const cartKey = "cart"

var store = session.New(session.Config{
	Expiration:     72 * time.Hour,
	CookieHTTPOnly: true,
})

func init() {
	gob.Register([]uint{})
}

// cartIDs reads the cart course ids from the session
func cartIDs(sess *session.Session) []uint {
	if ids, ok := sess.Get(cartKey).([]uint); ok {
		return ids
	}
	return nil
}

// cartCourses loads the active courses still matching the cart
func cartCourses(ids []uint) []models.Course {
	courses := []models.Course{}
	if len(ids) == 0 {
		return courses
	}
	database.Database.Db.Preload("Category").
		Where("id IN ? AND is_active = ?", ids, true).Find(&courses)
	return courses
}

// ViewCart lists the courses currently in the cart
func ViewCart(c *fiber.Ctx) error {
	sess, err := store.Get(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load cart!", nil)
	}

	courses := cartCourses(cartIDs(sess))
	now := time.Now()
	var total float64
	for i := range courses {
		total += courses[i].CurrentPrice(now)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart fetched successfully.", fiber.Map{
		"courses": courses,
		"count":   len(courses),
		"total":   total,
	})
}

// AddToCart puts a course into the cart
func AddToCart(c *fiber.Ctx) error {
	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_active = ?", courseID, true).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	sess, err := store.Get(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update cart!", nil)
	}

	ids := cartIDs(sess)
	for _, id := range ids {
		if id == courseID {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Course is already in your cart.", fiber.Map{"count": len(ids)})
		}
	}

	ids = append(ids, courseID)
	sess.Set(cartKey, ids)
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update cart!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course added to cart.", fiber.Map{"count": len(ids)})
}

// RemoveFromCart takes a course out of the cart
func RemoveFromCart(c *fiber.Ctx) error {
	courseID, ok := c.Locals("courseID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	sess, err := store.Get(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update cart!", nil)
	}

	ids := cartIDs(sess)
	kept := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id != courseID {
			kept = append(kept, id)
		}
	}

	sess.Set(cartKey, kept)
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update cart!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course removed from cart.", fiber.Map{"count": len(kept)})
}

// ClearCart empties the cart
func ClearCart(c *fiber.Ctx) error {
	sess, err := store.Get(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to clear cart!", nil)
	}

	sess.Delete(cartKey)
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to clear cart!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart cleared.", nil)
}

// Checkout enrolls the user in every course in the cart, then empties it
func Checkout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sess, err := store.Get(c)
	if err != nil {
		log.Printf("Error loading session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check out!", nil)
	}

	ids := cartIDs(sess)
	if len(ids) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Your cart is empty!", nil)
	}

	summary, err := services.Checkout(userID, ids)
	if err != nil {
		log.Printf("Error checking out cart for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check out!", nil)
	}

	sess.Delete(cartKey)
	if err := sess.Save(); err != nil {
		log.Printf("Error saving session: %v", err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout completed.", summary)
}
