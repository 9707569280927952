// Package middleware provides authentication and authorization middleware for the application.
package middleware

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"yatube/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// LoginPath is where anonymous visitors are sent when they hit a protected
// route. The original URL is preserved in the "next" query parameter.
const LoginPath = "/auth/login"

// tokenFromRequest looks for a bearer token in the Authorization header and
// falls back to the auth_token cookie set by the login handler.
func tokenFromRequest(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Cookies("auth_token")
}

// parseUserID validates the token signature and extracts the user ID from
// the "sub" claim (subject claim per RFC 7519).
func parseUserID(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	subStr, ok := claims["sub"].(string)
	if !ok {
		return 0, errors.New("missing subject claim")
	}

	userIDVal, err := strconv.ParseUint(subStr, 10, 32)
	if err != nil {
		return 0, errors.New("invalid user ID in token")
	}

	return uint(userIDVal), nil
}

// AuthRequired enforces authentication for protected routes. Anonymous
// visitors are redirected to the login page with the original URL preserved
// so they can be sent back after signing in.
func AuthRequired(c *fiber.Ctx) error {
	tokenString := tokenFromRequest(c)
	if tokenString == "" {
		return redirectToLogin(c)
	}

	userID, err := parseUserID(tokenString)
	if err != nil {
		return redirectToLogin(c)
	}

	c.Locals("userID", userID)
	return c.Next()
}

// OptionalAuth resolves the current user when a valid token is present but
// lets anonymous requests through untouched. Feeds and detail pages use it
// to personalize output for signed-in readers.
func OptionalAuth(c *fiber.Ctx) error {
	if tokenString := tokenFromRequest(c); tokenString != "" {
		if userID, err := parseUserID(tokenString); err == nil {
			c.Locals("userID", userID)
		}
	}
	return c.Next()
}

func redirectToLogin(c *fiber.Ctx) error {
	next := url.QueryEscape(c.OriginalURL())
	return c.Redirect(LoginPath+"?next="+next, fiber.StatusFound)
}
