package faqapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/kernel"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AdminAuth guards administrative routes with HS256 bearer tokens signed
// by a shared secret.
type AdminAuth struct {
	secret []byte
	issuer string
}

// NewAdminAuth returns nil when secret is empty; a nil AdminAuth rejects
// every request.
func NewAdminAuth(secret, issuer string) *AdminAuth {
	if secret == "" {
		return nil
	}
	if issuer == "" {
		issuer = "faqgen"
	}
	return &AdminAuth{secret: []byte(secret), issuer: issuer}
}

// IssueToken signs an admin token for subject.
func (a *AdminAuth) IssueToken(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    a.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", apiErrors.NewWithCause(ErrTokenIssue, err)
	}
	return s, nil
}

// Validate parses a token and returns its subject.
func (a *AdminAuth) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithIssuer(a.issuer))
	if err != nil {
		return "", apiErrors.NewWithCause(ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", apiErrors.New(ErrInvalidToken)
	}
	return claims.Subject, nil
}

// Middleware rejects requests without a valid "Bearer <token>" header.
func (a *AdminAuth) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a == nil {
			return apiErrors.New(ErrAdminDisabled)
		}

		parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return apiErrors.New(ErrUnauthorized)
		}

		subject, err := a.Validate(parts[1])
		if err != nil {
			return err
		}

		c.Locals(string(kernel.SubjectKey), subject)
		return c.Next()
	}
}
