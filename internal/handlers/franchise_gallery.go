package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/singletea-api/internal/services"
	"github.com/localnerve/singletea-api/internal/utils"
)

// FranchiseGalleryHandler handles franchise gallery routes
type FranchiseGalleryHandler struct {
	Gallery *services.FranchiseGalleryService
}

// List handles GET /api/franchise-gallery
// @Summary List franchise gallery images, newest first
// @Tags FranchiseGallery
// @Produce json
// @Success 200 {object} utils.DataResponseStruct{data=[]models.FranchiseGallery}
// @Router /franchise-gallery [get]
func (h *FranchiseGalleryHandler) List(c *fiber.Ctx) error {
	items, err := h.Gallery.List(c.UserContext())
	if err != nil {
		return err
	}
	return utils.DataResponse(c, items, fiber.StatusOK)
}

// Get handles GET /api/franchise-gallery/:id
// @Summary Get a franchise gallery image
// @Tags FranchiseGallery
// @Produce json
// @Param id path string true "Franchise gallery ID"
// @Success 200 {object} utils.DataResponseStruct{data=models.FranchiseGallery}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /franchise-gallery/{id} [get]
func (h *FranchiseGalleryHandler) Get(c *fiber.Ctx) error {
	item, err := h.Gallery.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return utils.DataResponse(c, item, fiber.StatusOK)
}

// Create handles POST /api/franchise-gallery
// @Summary Upload a franchise gallery image
// @Tags FranchiseGallery
// @Accept mpfd
// @Produce json
// @Security CookieAuth
// @Param name formData string true "Name"
// @Param image formData file true "Image"
// @Success 201 {object} utils.DataResponseStruct{data=models.FranchiseGallery}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /franchise-gallery [post]
func (h *FranchiseGalleryHandler) Create(c *fiber.Ctx) error {
	f, err := readForm(c)
	if err != nil {
		return err
	}
	in := services.FranchiseGalleryInput{Name: f.str("name")}
	item, err := h.Gallery.Create(c.UserContext(), in, f.fileList("image"))
	if err != nil {
		return err
	}
	return utils.DataResponse(c, item, fiber.StatusCreated)
}

// Update handles PUT /api/franchise-gallery/:id
// @Summary Update a franchise gallery image
// @Tags FranchiseGallery
// @Accept mpfd
// @Produce json
// @Security CookieAuth
// @Param id path string true "Franchise gallery ID"
// @Param name formData string false "Name"
// @Param image formData file false "Image"
// @Success 200 {object} utils.DataResponseStruct{data=models.FranchiseGallery}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /franchise-gallery/{id} [put]
func (h *FranchiseGalleryHandler) Update(c *fiber.Ctx) error {
	f, err := readForm(c)
	if err != nil {
		return err
	}
	in := services.FranchiseGalleryInput{Name: f.str("name")}
	item, err := h.Gallery.Update(c.UserContext(), c.Params("id"), in, f.fileList("image"))
	if err != nil {
		return err
	}
	return utils.DataResponse(c, item, fiber.StatusOK)
}

// Delete handles DELETE /api/franchise-gallery/:id
// @Summary Delete a franchise gallery image
// @Tags FranchiseGallery
// @Produce json
// @Security CookieAuth
// @Param id path string true "Franchise gallery ID"
// @Success 200 {object} utils.DataResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /franchise-gallery/{id} [delete]
func (h *FranchiseGalleryHandler) Delete(c *fiber.Ctx) error {
	if err := h.Gallery.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return utils.DataResponse(c, nil, fiber.StatusOK)
}
