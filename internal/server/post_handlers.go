// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"errors"

	"yatube/internal/models"
	"yatube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postForm is the submitted form representation for creating or editing a post.
type postForm struct {
	Text     string `json:"text"`
	GroupID  *uint  `json:"group_id"`
	ImageURL string `json:"image_url,omitempty"`
}

func (f postForm) asMap() fiber.Map {
	return fiber.Map{
		"text":      f.Text,
		"group_id":  f.GroupID,
		"image_url": f.ImageURL,
	}
}

// GetPost handles GET /posts/:id/, the post detail with its comments.
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentService.ListComments(ctx, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	authorPosts, err := s.postRepo.CountByAuthor(ctx, post.AuthorID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":              post,
		"comments":          comments,
		"author_post_count": authorPosts,
		"form":              fiber.Map{"text": ""},
	})
}

// CreatePostForm handles GET /create/. The group catalog rides along as the
// choices for the form's group field.
func (s *Server) CreatePostForm(c *fiber.Ctx) error {
	groups, err := s.groupRepo.List(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"form":   postForm{}.asMap(),
		"groups": groups,
	})
}

// CreatePost handles POST /create/. A valid submission redirects to the
// author's profile; an invalid one re-renders the form with field errors.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := currentUserID(c)

	var form postForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		AuthorID: userID,
		Text:     form.Text,
		GroupID:  form.GroupID,
		ImageURL: form.ImageURL,
	})
	if err != nil {
		if fields, ok := formErrors(err); ok {
			return respondForm(c, form.asMap(), fields)
		}
		return respondServiceError(c, err)
	}

	return c.Redirect(profilePath(post.Author.Username), fiber.StatusFound)
}

// EditPostForm handles GET /posts/:id/edit/. Only the author sees the form;
// anyone else is silently sent to the post detail instead.
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	if post.AuthorID != currentUserID(c) {
		return c.Redirect(postDetailPath(postID), fiber.StatusFound)
	}

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return respondServiceError(c, err)
	}

	form := postForm{Text: post.Text, GroupID: post.GroupID, ImageURL: post.ImageURL}
	return c.JSON(fiber.Map{
		"form":    form.asMap(),
		"groups":  groups,
		"is_edit": true,
	})
}

// UpdatePost handles POST /posts/:id/edit/. A non-author submission is not an
// error page: it redirects to the post detail without saving anything, the
// same way the edit form does. Validation failures re-render the form.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var form postForm
	if err := c.BodyParser(&form); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	_, err = s.postService.UpdatePost(ctx, service.UpdatePostInput{
		UserID:   currentUserID(c),
		PostID:   postID,
		Text:     form.Text,
		GroupID:  form.GroupID,
		ImageURL: form.ImageURL,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "UNAUTHORIZED" {
			return c.Redirect(postDetailPath(postID), fiber.StatusFound)
		}
		if fields, ok := formErrors(err); ok {
			return respondForm(c, form.asMap(), fields)
		}
		return respondServiceError(c, err)
	}

	return c.Redirect(postDetailPath(postID), fiber.StatusFound)
}
