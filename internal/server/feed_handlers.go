// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"encoding/json"

	"yatube/internal/cache"
	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET /. The whole serialized response is memoized in Redis
// under a single key for cache.FeedTTL, and the key deliberately ignores the
// query string. Until the snapshot expires every request replays the same
// bytes, including requests for other pages; the pager is only current again
// after the TTL. Mirrors the page-level cache of the original site.
func (s *Server) Index(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if body := cache.GetPage(ctx, cache.FeedKey); body != nil {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}

	feed, err := s.feedService.GlobalFeed(ctx, parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	body, err := json.Marshal(fiber.Map{"page": feed})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	cache.SetPage(ctx, cache.FeedKey, body)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// GroupFeed handles GET /group/:slug/
func (s *Server) GroupFeed(c *fiber.Ctx) error {
	feed, group, err := s.feedService.GroupFeed(c.UserContext(), c.Params("slug"), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"group": group,
		"page":  feed,
	})
}

// GetGroups handles GET /groups/. The catalog also backs the group choices
// of the post form.
func (s *Server) GetGroups(c *fiber.Ctx) error {
	groups, err := s.groupRepo.List(c.UserContext())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"groups": groups})
}

// GetProfile handles GET /profile/:username/
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profile, err := s.feedService.ProfileFeed(
		c.UserContext(), c.Params("username"), parsePage(c), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(profile)
}

// FollowFeed handles GET /follow/, the feed of posts by followed authors.
func (s *Server) FollowFeed(c *fiber.Ctx) error {
	feed, err := s.feedService.SubscriptionFeed(c.UserContext(), currentUserID(c), parsePage(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"page": feed})
}
