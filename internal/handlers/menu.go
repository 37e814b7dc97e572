package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/singletea-api/internal/services"
	"github.com/localnerve/singletea-api/internal/utils"
)

// MenuHandler handles menu routes
type MenuHandler struct {
	Menus *services.MenuService
}

func menuInput(f *form) (services.MenuInput, error) {
	lines, err := f.stringList("content_text")
	if err != nil {
		return services.MenuInput{}, err
	}
	return services.MenuInput{Title: f.str("title"), ContentText: lines}, nil
}

// List handles GET /api/menus
// @Summary List menus
// @Tags Menus
// @Produce json
// @Success 200 {array} models.Menu
// @Router /menus [get]
func (h *MenuHandler) List(c *fiber.Ctx) error {
	menus, err := h.Menus.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(menus)
}

// Get handles GET /api/menus/:id
// @Summary Get a menu
// @Tags Menus
// @Produce json
// @Param id path string true "Menu ID"
// @Success 200 {object} models.Menu
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /menus/{id} [get]
func (h *MenuHandler) Get(c *fiber.Ctx) error {
	menu, err := h.Menus.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(menu)
}

// Create handles POST /api/menus
// @Summary Create a menu
// @Tags Menus
// @Accept mpfd
// @Produce json
// @Security CookieAuth
// @Param title formData string true "Title"
// @Param content_text formData string false "JSON encoded list of lines"
// @Param image formData file false "Image"
// @Success 201 {object} models.Menu
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /menus [post]
func (h *MenuHandler) Create(c *fiber.Ctx) error {
	f, err := readForm(c)
	if err != nil {
		return err
	}
	in, err := menuInput(f)
	if err != nil {
		return err
	}
	menu, err := h.Menus.Create(c.UserContext(), in, f.fileList("image"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(menu)
}

// Update handles PUT /api/menus/:id
// @Summary Update a menu
// @Description Absent fields keep their values; a new image replaces the old one
// @Tags Menus
// @Accept mpfd
// @Produce json
// @Security CookieAuth
// @Param id path string true "Menu ID"
// @Param title formData string false "Title"
// @Param content_text formData string false "JSON encoded list of lines"
// @Param image formData file false "Image"
// @Success 200 {object} models.Menu
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /menus/{id} [put]
func (h *MenuHandler) Update(c *fiber.Ctx) error {
	f, err := readForm(c)
	if err != nil {
		return err
	}
	in, err := menuInput(f)
	if err != nil {
		return err
	}
	menu, err := h.Menus.Update(c.UserContext(), c.Params("id"), in, f.fileList("image"))
	if err != nil {
		return err
	}
	return c.JSON(menu)
}

// Delete handles DELETE /api/menus/:id
// @Summary Delete a menu
// @Tags Menus
// @Produce json
// @Security CookieAuth
// @Param id path string true "Menu ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /menus/{id} [delete]
func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	if err := h.Menus.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return utils.MessageResponse(c, "Menu deleted successfully", fiber.StatusOK)
}
