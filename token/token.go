// Package token issues and verifies the signed credentials that carry a
// principal's identity and role between requests. Tokens are HMAC-signed,
// time-bounded, and self-contained: there is no server-side session store
// and no revocation list, so validity is purely a function of the signed
// content and the clock.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/halilcengel/note.verse.backend/models"
)

// ErrUnauthenticated is returned for every verification failure: missing,
// malformed, signature-invalid, and expired tokens all collapse into this
// single error so callers cannot probe which check failed.
var ErrUnauthenticated = errors.New("invalid or expired token")

// Claims is the payload embedded in an issued credential. StudentID and
// TeacherID are present if and only if the role requires them.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string          `json:"userId"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	StudentID string          `json:"studentId,omitempty"`
	TeacherID string          `json:"teacherId,omitempty"`
}

// UserUUID parses the claim's user ID back into a UUID
func (c *Claims) UserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// Manager issues and verifies credentials with a server-held secret.
// The secret is read-only after construction and safe for concurrent use.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a Manager. It fails when the secret is empty so the
// service refuses to start rather than sign with a default secret.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("token: signing secret must not be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token: ttl must be positive")
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// Issue mints a signed credential for the given user. Role-specific record
// IDs are attached only when the role matches; passing a studentID for a
// teacher (or vice versa) is silently dropped.
func (m *Manager) Issue(user *models.User, studentID, teacherID string) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
	}

	switch user.Role {
	case models.RoleStudent:
		claims.StudentID = studentID
	case models.RoleTeacher:
		claims.TeacherID = teacherID
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("token: signing failed: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a presented credential and
// returns its claims. Every failure mode maps to ErrUnauthenticated.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrUnauthenticated
	}

	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrUnauthenticated
	}

	if !claims.Role.Valid() {
		return nil, ErrUnauthenticated
	}

	return claims, nil
}
