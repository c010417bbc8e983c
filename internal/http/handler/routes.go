package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"audiodrop/internal/http/middleware"
	"audiodrop/internal/service"
)

// Deps carries everything the routes need.
type Deps struct {
	DB           Pinger
	Audio        service.AudioService
	Auth         Authenticator
	Views        *Renderer
	Log          *zap.Logger
	SiteName     string
	CookieSecure bool
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	// Public pages
	app.Get("/", PlaybackPage(d.Audio, d.Views, d.SiteName, log))
	app.Get("/login", LoginPage(d.Auth, d.Views))
	app.Post("/login", Login(d.Auth, d.Views, d.CookieSecure, log))
	app.Post("/logout", Logout(d.CookieSecure))

	// Management pages
	admin := app.Group("/admin", middleware.Guard(d.Auth, middleware.RedirectToLogin))
	admin.Get("/", AdminPage(d.Audio, d.Views, log))
	admin.Post("/audio", AdminUpload(d.Audio, log))
	admin.Post("/audio/:id/delete", AdminDelete(d.Audio, log))

	// JSON API; latest is what the public page shows, so it stays open.
	api := app.Group("/api/audio")
	api.Get("/latest", LatestAudio(d.Audio, log))

	guard := middleware.Guard(d.Auth, denyAPI)
	api.Get("/", guard, ListAudio(d.Audio, log))
	api.Post("/", guard, UploadAudio(d.Audio, log))
	api.Delete("/:id", guard, DeleteAudio(d.Audio, log))
}
