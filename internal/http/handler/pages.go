package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"audiodrop/internal/http/middleware"
	"audiodrop/internal/model"
	"audiodrop/internal/service"
	"audiodrop/internal/session"
)

// Authenticator checks admin credentials and issues/verifies session tokens.
type Authenticator interface {
	Login(email, password string) (*session.Session, string, error)
	Parse(token string) (*session.Session, error)
	TTL() time.Duration
}

type playbackView struct {
	SiteName string
	Audio    *model.AudioFile
}

type loginView struct {
	Error string
	Email string
}

type adminView struct {
	Flash *Flash
	Email string
	Files []model.AudioFile
}

// PlaybackPage renders the public homepage with the most recent recording.
// A missing or unreadable record renders the disabled control.
func PlaybackPage(svc service.AudioService, views *Renderer, siteName string, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := svc.Latest(c.UserContext())
		if err != nil {
			if !errors.Is(err, service.ErrNotFound) {
				logError(log, c, "latest_audio_failed", err)
			}
			f = nil
		}
		return views.Render(c, fiber.StatusOK, "playback.html", playbackView{SiteName: siteName, Audio: f})
	}
}

// LoginPage renders the sign-in form, or sends an already signed-in admin on.
func LoginPage(auth Authenticator, views *Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := auth.Parse(c.Cookies(session.CookieName)); err == nil {
			return c.Redirect("/admin", fiber.StatusFound)
		}
		return views.Render(c, fiber.StatusOK, "login.html", loginView{})
	}
}

// Login verifies the submitted credentials and sets the session cookie.
func Login(auth Authenticator, views *Renderer, cookieSecure bool, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := c.FormValue("email")
		s, token, err := auth.Login(email, c.FormValue("password"))
		if err != nil {
			if !errors.Is(err, session.ErrInvalidCredentials) {
				logError(log, c, "login_failed", err)
			}
			return views.Render(c, fiber.StatusUnauthorized, "login.html", loginView{
				Error: session.ErrInvalidCredentials.Error(),
				Email: email,
			})
		}

		c.Cookie(&fiber.Cookie{
			Name:     session.CookieName,
			Value:    token,
			Path:     "/",
			Expires:  s.ExpiresAt,
			HTTPOnly: true,
			Secure:   cookieSecure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.Redirect("/admin", fiber.StatusFound)
	}
}

// Logout clears the session cookie.
func Logout(cookieSecure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Cookie(&fiber.Cookie{
			Name:     session.CookieName,
			Path:     "/",
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   cookieSecure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.Redirect("/", fiber.StatusFound)
	}
}

// AdminPage renders the management view. A failed fetch shows the
// fetch-error notification over an empty list.
func AdminPage(svc service.AudioService, views *Renderer, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v := adminView{Flash: popFlash(c)}
		if s := middleware.SessionFromCtx(c); s != nil {
			v.Email = s.Email
		}

		res, err := svc.List(c.UserContext())
		if err != nil {
			logError(log, c, "list_audio_failed", err)
			v.Flash = fetchErrorFlash
		} else {
			v.Files = res.Items
		}
		return views.Render(c, fiber.StatusOK, "admin.html", v)
	}
}

// AdminUpload handles the upload form and redirects back to the list.
func AdminUpload(svc service.AudioService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			// nothing selected
			return c.Redirect("/admin", fiber.StatusSeeOther)
		}

		f, err := fh.Open()
		if err != nil {
			logError(log, c, "upload_open_failed", err)
			setFlash(c, "upload_error")
			return c.Redirect("/admin", fiber.StatusSeeOther)
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		if _, err := svc.Upload(c.UserContext(), middleware.SessionFromCtx(c), f, fh.Filename, ct, fh.Size); err != nil {
			logError(log, c, "upload_audio_failed", err)
			setFlash(c, "upload_error")
			return c.Redirect("/admin", fiber.StatusSeeOther)
		}
		setFlash(c, "upload_ok")
		return c.Redirect("/admin", fiber.StatusSeeOther)
	}
}

// AdminDelete handles the per-row delete form.
func AdminDelete(svc service.AudioService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			logError(log, c, "delete_audio_failed", err)
			setFlash(c, "delete_error")
			return c.Redirect("/admin", fiber.StatusSeeOther)
		}
		setFlash(c, "delete_ok")
		return c.Redirect("/admin", fiber.StatusSeeOther)
	}
}
