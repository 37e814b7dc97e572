package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse sends the standard error body
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Status:    status,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
	})
}

// DataResponse wraps data in the {success, data} envelope used by the gallery endpoints
func DataResponse(c *fiber.Ctx, data interface{}, status int) error {
	if data == nil {
		data = fiber.Map{}
	}
	return c.Status(status).JSON(DataResponseStruct{Success: true, Data: data})
}

// MessageResponse sends {message}
func MessageResponse(c *fiber.Ctx, message string, status int) error {
	return c.Status(status).JSON(MessageResponseStruct{Message: message})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Ok        bool   `json:"ok"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
	Type      string `json:"type,omitempty"`
}

// DataResponseStruct defines the schema for enveloped responses
type DataResponseStruct struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// MessageResponseStruct defines the schema for message-only responses
type MessageResponseStruct struct {
	Message string `json:"message"`
}
