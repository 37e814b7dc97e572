package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/singletea-api/internal/middleware"
	"github.com/localnerve/singletea-api/internal/models"
	"github.com/localnerve/singletea-api/internal/services"
	"github.com/localnerve/singletea-api/internal/types"
	"github.com/localnerve/singletea-api/internal/utils"
)

// AuthHandler handles registration and session routes
type AuthHandler struct {
	Users        *services.UserStore
	Sessions     *services.SessionIssuer
	SecureCookie bool
}

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the body of register and login
type AuthResponse struct {
	Message string             `json:"message"`
	User    models.UserSummary `json:"user"`
}

// Register handles POST /api/auth/register
// @Summary Register a user
// @Description Creates a non-admin account. Admins are created with the createadmin command.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentials true "Name, email and password"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body credentials
	if err := c.BodyParser(&body); err != nil {
		return types.NewValidationError("Invalid input")
	}

	user, err := h.Users.Create(c.UserContext(), body.Name, body.Email, body.Password, false)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(AuthResponse{
		Message: "User registered successfully",
		User:    user.Summary(),
	})
}

// Login handles POST /api/auth/login
// @Summary Log in
// @Description Sets the httpOnly token cookie on success
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body credentials true "Email and password"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body credentials
	if err := c.BodyParser(&body); err != nil {
		return types.NewValidationError("Invalid input")
	}

	user, session, err := h.Sessions.Login(c.UserContext(), body.Email, body.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(h.Sessions.TTL() / time.Second),
		HTTPOnly: true,
		Secure:   h.SecureCookie,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return c.JSON(AuthResponse{Message: "Login successful", User: user.Summary()})
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.MessageResponseStruct
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	_ = h.Sessions.Logout(c.UserContext(), c.Cookies(services.SessionCookieName))
	c.Cookie(&fiber.Cookie{
		Name:     services.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.SecureCookie,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return utils.MessageResponse(c, "Logged out successfully", fiber.StatusOK)
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} models.UserSummary
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.Users.FindByID(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(user.Summary())
}
