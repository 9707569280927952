// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parsePage extracts the 1-based ?page query parameter. Garbage and
// out-of-range values are left to the pagination layer, which clamps instead
// of rejecting.
func parsePage(c *fiber.Ctx) int {
	return c.QueryInt("page", 1)
}

// currentUserID returns the authenticated user ID placed in locals by the
// auth middleware, or zero for anonymous requests.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 404 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError(humanizeParam(param), c.Params(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID", "commentId" -> "comment ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	// Split on camelCase boundary before the trailing "Id" suffix.
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// respondServiceError maps a service-layer error onto an HTTP status by its
// code. Validation errors with field details are form re-renders and are
// handled by the callers before reaching this point.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusForbidden, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// formErrors extracts the per-field error map when err is a failed form
// validation. A submission that fails validation is not an HTTP error: the
// form is re-rendered with the submitted values and the messages attached.
func formErrors(err error) (map[string]string, bool) {
	var appErr *models.AppError
	if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
		return appErr.Fields, true
	}
	return nil, false
}

// respondForm re-renders a form representation with HTTP 200, echoing the
// submitted values together with the validation messages.
func respondForm(c *fiber.Ctx, form fiber.Map, fieldErrors map[string]string) error {
	body := fiber.Map{"form": form}
	if len(fieldErrors) > 0 {
		body["errors"] = fieldErrors
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

func (s *Server) profileNotFound(c *fiber.Ctx, username string) error {
	return models.RespondWithError(c, fiber.StatusNotFound,
		models.NewNotFoundError("User", username))
}

func postDetailPath(postID uint) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

func profilePath(username string) string {
	return "/profile/" + username + "/"
}
