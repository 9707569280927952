// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// FollowAuthor handles GET /profile/:username/follow/. Following twice, or
// following yourself, changes nothing; either way the visitor lands back on
// the profile.
func (s *Server) FollowAuthor(c *fiber.Ctx) error {
	username := c.Params("username")

	author, err := s.userRepo.GetByUsername(c.UserContext(), username)
	if err != nil {
		return respondServiceError(c, err)
	}
	if author == nil {
		return s.profileNotFound(c, username)
	}

	if err := s.followService.Follow(c.UserContext(), currentUserID(c), author.ID); err != nil {
		return respondServiceError(c, err)
	}

	return c.Redirect(profilePath(username), fiber.StatusFound)
}

// UnfollowAuthor handles GET /profile/:username/unfollow/. Unfollowing an
// author you never followed is a no-op.
func (s *Server) UnfollowAuthor(c *fiber.Ctx) error {
	username := c.Params("username")

	author, err := s.userRepo.GetByUsername(c.UserContext(), username)
	if err != nil {
		return respondServiceError(c, err)
	}
	if author == nil {
		return s.profileNotFound(c, username)
	}

	if err := s.followService.Unfollow(c.UserContext(), currentUserID(c), author.ID); err != nil {
		return respondServiceError(c, err)
	}

	return c.Redirect(profilePath(username), fiber.StatusFound)
}
