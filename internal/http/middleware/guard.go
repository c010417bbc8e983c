package middleware

import (
	"github.com/gofiber/fiber/v2"

	"audiodrop/internal/session"
)

// SessionLocalKey is the key the guard stores the *session.Session under in Fiber's locals.
const SessionLocalKey = "session"

// SessionParser verifies a session token.
type SessionParser interface {
	Parse(token string) (*session.Session, error)
}

// Guard lets the request through only when the session cookie holds a valid
// session; otherwise deny produces the response. The session is made
// available through SessionFromCtx and session.FromContext(c.UserContext()).
// The decision is re-evaluated on every request.
func Guard(p SessionParser, deny fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := p.Parse(c.Cookies(session.CookieName))
		if err != nil {
			return deny(c)
		}
		c.Locals(SessionLocalKey, s)
		c.SetUserContext(session.WithSession(c.UserContext(), s))
		return c.Next()
	}
}

// RedirectToLogin is the deny handler for pages.
func RedirectToLogin(c *fiber.Ctx) error {
	return c.Redirect("/login", fiber.StatusFound)
}

// SessionFromCtx returns the session stored by Guard, or nil.
func SessionFromCtx(c *fiber.Ctx) *session.Session {
	s, _ := c.Locals(SessionLocalKey).(*session.Session)
	return s
}
