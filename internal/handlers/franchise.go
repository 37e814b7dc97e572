// franchise.go
//
// Content and media service for the Single Tea India website
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of singletea-api.
// singletea-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// singletea-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with singletea-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/singletea-api/internal/models"
	"github.com/localnerve/singletea-api/internal/services"
	"github.com/localnerve/singletea-api/internal/utils"
)

// FranchiseHandler handles franchise routes
type FranchiseHandler struct {
	Franchises *services.FranchiseService
}

func franchiseInput(f *form) (services.FranchiseInput, error) {
	contents, err := jsonList[models.Section](f, "contents")
	if err != nil {
		return services.FranchiseInput{}, err
	}
	keep, err := f.stringList("images_url")
	if err != nil {
		return services.FranchiseInput{}, err
	}
	return services.FranchiseInput{
		Title:          f.str("title"),
		Contents:       contents,
		LocationMapURL: f.str("location_map_url"),
		KeepImages:     keep,
	}, nil
}

// List handles GET /api/franchises
// @Summary List franchises
// @Tags Franchises
// @Produce json
// @Success 200 {array} models.Franchise
// @Router /franchises [get]
func (h *FranchiseHandler) List(c *fiber.Ctx) error {
	franchises, err := h.Franchises.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(franchises)
}

// Get handles GET /api/franchises/:id
// @Summary Get a franchise
// @Tags Franchises
// @Produce json
// @Param id path string true "Franchise ID"
// @Success 200 {object} models.Franchise
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /franchises/{id} [get]
func (h *FranchiseHandler) Get(c *fiber.Ctx) error {
	franchise, err := h.Franchises.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(franchise)
}

// Create handles POST /api/franchises
// @Summary Create a franchise
// @Tags Franchises
// @Accept mpfd
// @Produce json
// @Security CookieAuth
// @Param title formData string true "Title"
// @Param contents formData string true "JSON encoded list of {heading, content}"
// @Param location_map_url formData string false "Map URL"
// @Param images formData file false "Up to 20 images"
// @Success 201 {object} models.Franchise
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /franchises [post]
func (h *FranchiseHandler) Create(c *fiber.Ctx) error {
	f, err := readForm(c)
	if err != nil {
		return err
	}
	in, err := franchiseInput(f)
	if err != nil {
		return err
	}
	franchise, err := h.Franchises.Create(c.UserContext(), in, f.fileList("images"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(franchise)
}

// Update handles PUT /api/franchises/:id
// @Summary Update a franchise
// @Description images_url lists the existing images to keep; omit it to keep all
// @Tags Franchises
// @Accept mpfd
// @Produce json
// @Security CookieAuth
// @Param id path string true "Franchise ID"
// @Param title formData string false "Title"
// @Param contents formData string false "JSON encoded list of {heading, content}"
// @Param location_map_url formData string false "Map URL"
// @Param images_url formData string false "JSON encoded list of image URLs to keep"
// @Param images formData file false "New images"
// @Success 200 {object} models.Franchise
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /franchises/{id} [put]
func (h *FranchiseHandler) Update(c *fiber.Ctx) error {
	f, err := readForm(c)
	if err != nil {
		return err
	}
	in, err := franchiseInput(f)
	if err != nil {
		return err
	}
	franchise, err := h.Franchises.Update(c.UserContext(), c.Params("id"), in, f.fileList("images"))
	if err != nil {
		return err
	}
	return c.JSON(franchise)
}

// Delete handles DELETE /api/franchises/:id
// @Summary Delete a franchise and its images
// @Tags Franchises
// @Produce json
// @Security CookieAuth
// @Param id path string true "Franchise ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /franchises/{id} [delete]
func (h *FranchiseHandler) Delete(c *fiber.Ctx) error {
	if err := h.Franchises.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return utils.MessageResponse(c, "Franchise deleted successfully", fiber.StatusOK)
}
