package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/singletea-api/internal/services"
	"github.com/localnerve/singletea-api/internal/types"
	"github.com/localnerve/singletea-api/internal/utils"
)

// UserHandler handles the admin user management routes
type UserHandler struct {
	Users *services.UserStore
}

// List handles GET /api/users
// @Summary List users
// @Tags Users
// @Produce json
// @Security CookieAuth
// @Success 200 {array} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.Users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// Get handles GET /api/users/:id
// @Summary Get a user
// @Tags Users
// @Produce json
// @Security CookieAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	user, err := h.Users.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// Update handles PUT /api/users/:id. Only the name can change.
// @Summary Rename a user
// @Tags Users
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return types.NewValidationError("Invalid input")
	}
	user, err := h.Users.UpdateName(c.UserContext(), c.Params("id"), body.Name)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// Delete handles DELETE /api/users/:id
// @Summary Delete a user
// @Tags Users
// @Produce json
// @Security CookieAuth
// @Param id path string true "User ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.Users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return utils.MessageResponse(c, "User deleted successfully", fiber.StatusOK)
}
