package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"englishpath/internal/models"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "ep_session"

// ErrNoSession is returned when a request carries no usable session token
var ErrNoSession = errors.New("no session")

// SessionManager issues and verifies signed session tokens. A token only
// identifies the learner; it is not a credential.
type SessionManager struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

// NewSessionManager creates a session manager signing with secret
func NewSessionManager(secret string, duration time.Duration) *SessionManager {
	return &SessionManager{
		secret:   []byte(secret),
		duration: duration,
		now:      time.Now,
	}
}

// Duration returns how long issued tokens stay valid
func (m *SessionManager) Duration() time.Duration {
	return m.duration
}

// Issue returns a signed token for userID and its expiry
func (m *SessionManager) Issue(userID int64) (string, time.Time, error) {
	now := m.now()
	expires := now.Add(m.duration)
	claims := jwt.RegisteredClaims{
		ID:        GenerateSessionID(),
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expires, nil
}

// Parse verifies a token and returns the session it carries
func (m *SessionManager) Parse(token string) (*models.Session, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject %q", ErrNoSession, claims.Subject)
	}

	session := &models.Session{
		ID:        claims.ID,
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		session.CreatedAt = claims.IssuedAt.Time
	}
	return session, nil
}

// UserID extracts the user id from the session cookie or a Bearer token
func (m *SessionManager) UserID(r *http.Request) (int64, error) {
	token := ""
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		token = cookie.Value
	} else if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		token = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if token == "" {
		return 0, ErrNoSession
	}

	session, err := m.Parse(token)
	if err != nil {
		return 0, err
	}
	return session.UserID, nil
}

// GenerateSessionID creates a new UUID for session identification
func GenerateSessionID() string {
	return uuid.New().String()
}

// GenerateSecret returns a random 32-byte signing key, hex encoded
func GenerateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// IsSecureRequest determines if the request is over HTTPS
// Checks TLS connection, X-Forwarded-Proto header (for reverse proxies), and URL scheme
func IsSecureRequest(r *http.Request) bool {
	// Direct TLS connection
	if r.TLS != nil {
		return true
	}

	// Behind reverse proxy (nginx, Caddy, load balancer, etc.)
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
		return true
	}

	return r.URL.Scheme == "https"
}

// CreateSessionCookie creates a session cookie with proper security flags
// The Secure flag is automatically set based on the request scheme (HTTPS detection)
func CreateSessionCookie(r *http.Request, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}
