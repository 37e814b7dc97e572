package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/singletea-api/internal/services"
	"github.com/localnerve/singletea-api/internal/utils"
)

// GalleryHandler handles site gallery routes. Responses use the {success, data} envelope.
type GalleryHandler struct {
	Gallery *services.GalleryService
}

// List handles GET /api/gallery
// @Summary List gallery images, newest first
// @Tags Gallery
// @Produce json
// @Success 200 {object} utils.DataResponseStruct{data=[]models.Gallery}
// @Router /gallery [get]
func (h *GalleryHandler) List(c *fiber.Ctx) error {
	items, err := h.Gallery.List(c.UserContext())
	if err != nil {
		return err
	}
	return utils.DataResponse(c, items, fiber.StatusOK)
}

// Get handles GET /api/gallery/:id
// @Summary Get a gallery image
// @Tags Gallery
// @Produce json
// @Param id path string true "Gallery ID"
// @Success 200 {object} utils.DataResponseStruct{data=models.Gallery}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /gallery/{id} [get]
func (h *GalleryHandler) Get(c *fiber.Ctx) error {
	item, err := h.Gallery.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return utils.DataResponse(c, item, fiber.StatusOK)
}

// Create handles POST /api/gallery
// @Summary Upload a gallery image
// @Tags Gallery
// @Accept mpfd
// @Produce json
// @Security CookieAuth
// @Param image formData file true "Image"
// @Success 201 {object} utils.DataResponseStruct{data=models.Gallery}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /gallery [post]
func (h *GalleryHandler) Create(c *fiber.Ctx) error {
	f, err := readForm(c)
	if err != nil {
		return err
	}
	item, err := h.Gallery.Create(c.UserContext(), f.fileList("image"))
	if err != nil {
		return err
	}
	return utils.DataResponse(c, item, fiber.StatusCreated)
}

// Update handles PUT /api/gallery/:id
// @Summary Replace a gallery image
// @Tags Gallery
// @Accept mpfd
// @Produce json
// @Security CookieAuth
// @Param id path string true "Gallery ID"
// @Param image formData file true "Image"
// @Success 200 {object} utils.DataResponseStruct{data=models.Gallery}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /gallery/{id} [put]
func (h *GalleryHandler) Update(c *fiber.Ctx) error {
	f, err := readForm(c)
	if err != nil {
		return err
	}
	item, err := h.Gallery.Update(c.UserContext(), c.Params("id"), f.fileList("image"))
	if err != nil {
		return err
	}
	return utils.DataResponse(c, item, fiber.StatusOK)
}

// Delete handles DELETE /api/gallery/:id
// @Summary Delete a gallery image
// @Tags Gallery
// @Produce json
// @Security CookieAuth
// @Param id path string true "Gallery ID"
// @Success 200 {object} utils.DataResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /gallery/{id} [delete]
func (h *GalleryHandler) Delete(c *fiber.Ctx) error {
	if err := h.Gallery.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return utils.DataResponse(c, nil, fiber.StatusOK)
}
