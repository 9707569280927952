// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"yatube/internal/models"
	"yatube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /posts/:id/comment/. Valid or not, the submission
// lands back on the post detail; an invalid comment simply is not saved.
// Commenting on a missing post is a 404.
func (s *Server) AddComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var form struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	_, err = s.commentService.AddComment(ctx, service.AddCommentInput{
		AuthorID: currentUserID(c),
		PostID:   postID,
		Text:     form.Text,
	})
	if err != nil {
		if _, ok := formErrors(err); !ok {
			return respondServiceError(c, err)
		}
	}

	return c.Redirect(postDetailPath(postID), fiber.StatusFound)
}
