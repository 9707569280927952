// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"fmt"
	"strconv"
	"time"

	"yatube/internal/models"
	"yatube/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = time.Hour * 24 * 7

// Signup handles POST /auth/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if fields := validateSignup(req.Username, req.Email, req.Password); len(fields) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFormError(fields))
	}

	// Check if user already exists
	existing, err := s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if existing == nil {
		existing, err = s.userRepo.GetByEmail(c.Context(), req.Email)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("User already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, createErr)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setAuthCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

func validateSignup(username, email, password string) map[string]string {
	fields := make(map[string]string)
	if err := validation.ValidateUsername(username); err != nil {
		fields["username"] = err.Error()
	}
	if err := validation.ValidateEmail(email); err != nil {
		fields["email"] = err.Error()
	}
	if err := validation.ValidatePassword(password); err != nil {
		fields["password"] = err.Error()
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// LoginForm handles GET /auth/login. It is the target of the anonymous
// redirect and carries the ?next parameter through to the form so a
// successful login can return the visitor to where they started.
func (s *Server) LoginForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"form": fiber.Map{"username": "", "password": ""},
		"next": c.Query("next"),
	})
}

// Login handles POST /auth/login. Sign-in is by username. On success the
// token is both returned in the body and set as a cookie; when a ?next
// parameter is present the response is a redirect back to the original URL.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setAuthCookie(c, token)

	if next := c.Query("next"); next != "" && next[0] == '/' {
		return c.Redirect(next, fiber.StatusFound)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

func (s *Server) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  time.Now().Add(tokenLifetime),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.config.Env == "production",
	})
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10), // Subject (user ID as string)
		"username": username,                               // Username (cached in token)
		"iss":      "yatube-api",                           // Issuer
		"aud":      "yatube-client",                        // Audience
		"exp":      now.Add(tokenLifetime).Unix(),          // Expiration (7 days)
		"iat":      now.Unix(),                             // Issued at
		"nbf":      now.Unix(),                             // Not before
		"jti":      s.generateJTI(),                        // JWT ID (unique identifier)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
