package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/singletea-api/internal/services"
	"github.com/localnerve/singletea-api/internal/types"
	"github.com/localnerve/singletea-api/internal/utils"
)

// EnquiryHandler handles the contact form
type EnquiryHandler struct {
	Notifier *services.EnquiryNotifier
}

// Submit handles POST /api/conactemail/enquiry
// @Summary Submit a franchise enquiry
// @Description Mails a confirmation to the enquirer and the details to the admin
// @Tags Contact
// @Accept json
// @Produce json
// @Param body body services.Enquiry true "Enquiry"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /conactemail/enquiry [post]
func (h *EnquiryHandler) Submit(c *fiber.Ctx) error {
	var body services.Enquiry
	if err := c.BodyParser(&body); err != nil {
		return types.NewValidationError("All required fields must be provided")
	}
	if err := h.Notifier.Submit(c.UserContext(), body); err != nil {
		return err
	}
	return utils.MessageResponse(c, "Enquiry submitted successfully", fiber.StatusOK)
}
