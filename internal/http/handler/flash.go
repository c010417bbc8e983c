package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashCookie = "flash"

// Flash is a one-shot notification shown after a redirect.
type Flash struct {
	Kind    string
	Message string
}

// Only codes travel in the cookie; the text shown is fixed per operation class.
var flashes = map[string]Flash{
	"upload_ok":    {Kind: "success", Message: "Audio file uploaded successfully"},
	"upload_error": {Kind: "error", Message: "Error uploading file"},
	"delete_ok":    {Kind: "success", Message: "Audio file deleted successfully"},
	"delete_error": {Kind: "error", Message: "Error deleting file"},
}

var fetchErrorFlash = &Flash{Kind: "error", Message: "Error fetching audio files"}

func setFlash(c *fiber.Ctx, code string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Value:    code,
		Path:     "/admin",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(time.Minute),
	})
}

// popFlash reads and clears the pending flash, if any.
func popFlash(c *fiber.Ctx) *Flash {
	code := c.Cookies(flashCookie)
	if code == "" {
		return nil
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookie,
		Path:     "/admin",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
	f, ok := flashes[code]
	if !ok {
		return nil
	}
	return &f
}
