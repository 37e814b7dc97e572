// Package server assembles the Fiber application: middleware, error handling and routes.
package server

import (
	"errors"
	"strings"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/singletea-api/internal/config"
	"github.com/localnerve/singletea-api/internal/handlers"
	"github.com/localnerve/singletea-api/internal/middleware"
	"github.com/localnerve/singletea-api/internal/services"
	"github.com/localnerve/singletea-api/internal/storage"
	"github.com/localnerve/singletea-api/internal/types"
	"github.com/localnerve/singletea-api/internal/utils"
	"go.uber.org/zap"

	_ "github.com/localnerve/singletea-api/docs/api" // Swagger docs
)

// Deps are the components the routes are wired to
type Deps struct {
	Config           *config.Config
	Log              *zap.Logger
	Media            *storage.MediaStore
	Users            *services.UserStore
	Sessions         *services.SessionIssuer
	Menus            *services.MenuService
	Franchises       *services.FranchiseService
	Gallery          *services.GalleryService
	FranchiseGallery *services.FranchiseGalleryService
	Enquiries        *services.EnquiryNotifier
	Health           *services.HealthChecker

	// DisableMetrics skips the prometheus middleware. Its collectors go to the
	// default registry, which accepts them once per process.
	DisableMetrics bool
}

// New builds the application
func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          errorHandler(d.Log),
		BodyLimit:             d.Config.BodyLimit,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(d.Config.AllowedOrigins, ","),
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
		ExposeHeaders:    "Content-Disposition",
	}))
	app.Use(compress.New())

	if !d.DisableMetrics {
		prometheus := fiberprometheus.New("singletea")
		prometheus.RegisterAt(app, "/metrics")
		app.Use(prometheus.Middleware)
	}

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(storage.URLPrefix, middleware.CrossOriginResource(), filesystem.New(filesystem.Config{
		Root:   d.Media.FileSystem(),
		Browse: false,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Single Tea India Backend is live!")
	})

	requireSession := middleware.RequireSession(d.Sessions)
	adminOnly := middleware.AdminOnly(d.Users)
	admin := []fiber.Handler{requireSession, adminOnly}

	api := app.Group("/api")

	health := &handlers.HealthHandler{Checker: d.Health}
	api.Get("/health", health.Health)

	auth := &handlers.AuthHandler{Users: d.Users, Sessions: d.Sessions, SecureCookie: d.Config.IsProduction()}
	authGroup := api.Group("/auth")
	authGroup.Post("/register", auth.Register)
	authGroup.Post("/login", auth.Login)
	authGroup.Post("/logout", auth.Logout)
	authGroup.Get("/me", requireSession, auth.Me)

	users := &handlers.UserHandler{Users: d.Users}
	userGroup := api.Group("/users", admin...)
	userGroup.Get("/", users.List)
	userGroup.Get("/:id", users.Get)
	userGroup.Put("/:id", users.Update)
	userGroup.Delete("/:id", users.Delete)

	crud(api.Group("/menus"), &handlers.MenuHandler{Menus: d.Menus}, admin)
	crud(api.Group("/franchises"), &handlers.FranchiseHandler{Franchises: d.Franchises}, admin)
	crud(api.Group("/gallery"), &handlers.GalleryHandler{Gallery: d.Gallery}, admin)
	crud(api.Group("/franchise-gallery"), &handlers.FranchiseGalleryHandler{Gallery: d.FranchiseGallery}, admin)

	enquiry := &handlers.EnquiryHandler{Notifier: d.Enquiries}
	api.Post("/conactemail/enquiry", enquiry.Submit)

	app.Use(func(c *fiber.Ctx) error {
		return utils.ErrorResponse(c, "[404] Resource Not Found", fiber.StatusNotFound, types.NotFound)
	})

	return app
}

type crudHandler interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

// crud registers public reads and admin writes for one entity
func crud(r fiber.Router, h crudHandler, admin []fiber.Handler) {
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/", append(admin, h.Create)...)
	r.Put("/:id", append(admin, h.Update)...)
	r.Delete("/:id", append(admin, h.Delete)...)
}

// errorHandler renders every error in the standard body. Unknown errors are
// logged and reported as a generic server error.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var ce *types.CustomError
		if errors.As(err, &ce) {
			if ce.Code >= fiber.StatusInternalServerError {
				log.Error("request failed",
					zap.String("method", c.Method()),
					zap.String("url", c.OriginalURL()),
					zap.String("type", ce.Type),
					zap.Error(err),
				)
			}
			return utils.ErrorResponse(c, ce.Message, ce.Code, ce.Type)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			errorType := types.ServerError
			switch {
			case fe.Code == fiber.StatusNotFound:
				errorType = types.NotFound
			case fe.Code < fiber.StatusInternalServerError:
				errorType = types.ValidationError
			}
			return utils.ErrorResponse(c, fe.Message, fe.Code, errorType)
		}

		log.Error("unhandled error", zap.String("url", c.OriginalURL()), zap.Error(err))
		return utils.ErrorResponse(c, "Server error", fiber.StatusInternalServerError, types.ServerError)
	}
}
