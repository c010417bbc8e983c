package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"audiodrop/internal/config"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "session"

var (
	ErrNoSession          = errors.New("no active session")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrWeakSecret         = errors.New("session secret must be at least 32 bytes")
)

// Session is the authenticated identity of the current request.
type Session struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Manager authenticates the admin and issues/verifies session tokens.
// There is exactly one admin identity, taken from configuration.
type Manager struct {
	adminID      string
	adminEmail   string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

// NewManager validates the auth configuration. When AdminID is empty a stable
// id is derived from the admin email so uploads keep the same owner across restarts.
func NewManager(cfg config.AuthConfig) (*Manager, error) {
	if len(cfg.SessionSecret) < 32 {
		return nil, ErrWeakSecret
	}
	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		return nil, errors.New("admin email and password hash are required")
	}
	if _, err := bcrypt.Cost([]byte(cfg.AdminPasswordHash)); err != nil {
		return nil, errors.New("admin password hash is not a bcrypt hash")
	}

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	id := cfg.AdminID
	if id == "" {
		id = uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String()
	}
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &Manager{
		adminID:      id,
		adminEmail:   email,
		passwordHash: []byte(cfg.AdminPasswordHash),
		secret:       []byte(cfg.SessionSecret),
		ttl:          ttl,
		now:          time.Now,
	}, nil
}

// TTL is how long an issued session stays valid.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Login checks credentials and returns a fresh session with its signed token.
func (m *Manager) Login(email, password string) (*Session, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(m.adminEmail)) == 1
	// Always run bcrypt so a wrong email costs the same as a wrong password.
	passErr := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(password))
	if !emailOK || passErr != nil {
		return nil, "", ErrInvalidCredentials
	}

	s := &Session{
		UserID:    m.adminID,
		Email:     m.adminEmail,
		ExpiresAt: m.now().Add(m.ttl).Truncate(time.Second),
	}
	token, err := m.Issue(s)
	if err != nil {
		return nil, "", err
	}
	return s, token, nil
}

// Issue signs s into an HS256 token.
func (m *Manager) Issue(s *Session) (string, error) {
	now := m.now()
	c := claims{
		Email: s.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// Parse verifies a token and returns its session, or ErrNoSession for
// anything missing, expired, tampered with or signed for another identity.
func (m *Manager) Parse(token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrNoSession
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrNoSession
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.Subject != m.adminID {
		return nil, ErrNoSession
	}

	return &Session{
		UserID:    c.Subject,
		Email:     c.Email,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

type ctxKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session stored by WithSession, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
