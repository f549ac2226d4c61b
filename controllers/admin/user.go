package adminController

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	adminValidator "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// ListUsers lists users with pagination
func ListUsers(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*adminValidator.ListQuery)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
	}

	db := database.Database.Db
	query := db.Model(&models.User{})
	if role := c.Query("role"); role != "" && models.ValidRole(role) {
		query = query.Where("role = ?", role)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Error counting users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	var users []models.User
	offset := (reqData.Page - 1) * reqData.Limit
	if err := query.Order("date_joined desc").
		Offset(offset).Limit(reqData.Limit).Find(&users).Error; err != nil {
		log.Printf("Error fetching users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully.", fiber.Map{
		"users": users,
		"page":  reqData.Page,
		"limit": reqData.Limit,
		"total": total,
	})
}

// ToggleUserActive flips a user's active flag
func ToggleUserActive(c *fiber.Ctx) error {
	targetID, ok := c.Locals("targetUserID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}

	actor, ok := c.Locals("currentUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	if actor.ID == targetID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot deactivate your own account!", nil)
	}

	db := database.Database.Db
	var user models.User
	if err := db.First(&user, targetID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.IsActive = !user.IsActive
	if err := db.Model(&user).Update("is_active", user.IsActive).Error; err != nil {
		log.Printf("Error toggling user %d: %v", targetID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}

	message := "User deactivated."
	if user.IsActive {
		message = "User activated."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, user)
}

// ChangeUserRole updates a user's role
func ChangeUserRole(c *fiber.Ctx) error {
	targetID, ok := c.Locals("targetUserID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid user id!", nil)
	}
	reqData, ok := c.Locals("validatedRole").(*adminValidator.RoleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	actor, ok := c.Locals("currentUser").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	if actor.ID == targetID {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot change your own role!", nil)
	}

	db := database.Database.Db
	var user models.User
	if err := db.First(&user, targetID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	if err := db.Model(&user).Update("role", reqData.Role).Error; err != nil {
		log.Printf("Error changing role for user %d: %v", targetID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user!", nil)
	}
	user.Role = reqData.Role

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User role updated.", user)
}
