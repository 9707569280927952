package service

import (
	"context"
	"errors"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		postRepo := noopPostRepo()
		var created *models.Post
		postRepo.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = 42
			created = p
			return nil
		}
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Text: created.Text, AuthorID: created.AuthorID}, nil
		}

		svc := NewPostService(postRepo, noopGroupRepo())
		post, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: 7, Text: "hello"})
		require.NoError(t, err)
		assert.Equal(t, uint(42), post.ID)
		assert.Equal(t, uint(7), post.AuthorID)
	})

	t.Run("Empty text is a field error", func(t *testing.T) {
		svc := NewPostService(noopPostRepo(), noopGroupRepo())
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: 7, Text: "   "})
		assertValidationError(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Contains(t, appErr.Fields, "text")
	})

	t.Run("Unknown group is a field error", func(t *testing.T) {
		groupRepo := noopGroupRepo()
		groupRepo.getByIDFn = func(_ context.Context, id uint) (*models.Group, error) {
			return nil, models.NewNotFoundError("Group", id)
		}
		groupID := uint(99)

		svc := NewPostService(noopPostRepo(), groupRepo)
		_, err := svc.CreatePost(ctx, CreatePostInput{AuthorID: 7, Text: "hello", GroupID: &groupID})
		assertValidationError(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Contains(t, appErr.Fields, "group")
	})
}

func TestPostService_UpdatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Author can edit", func(t *testing.T) {
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Text: "before", AuthorID: 7}, nil
		}
		var saved *models.Post
		postRepo.updateFn = func(_ context.Context, p *models.Post) error {
			saved = p
			return nil
		}

		svc := NewPostService(postRepo, noopGroupRepo())
		post, err := svc.UpdatePost(ctx, UpdatePostInput{UserID: 7, PostID: 1, Text: "after"})
		require.NoError(t, err)
		assert.Equal(t, "after", post.Text)
		require.NotNil(t, saved)
		assert.Equal(t, "after", saved.Text)
	})

	t.Run("Non-author is rejected without saving", func(t *testing.T) {
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Text: "original", AuthorID: 7}, nil
		}
		updateCalled := false
		postRepo.updateFn = func(_ context.Context, _ *models.Post) error {
			updateCalled = true
			return nil
		}

		svc := NewPostService(postRepo, noopGroupRepo())
		_, err := svc.UpdatePost(ctx, UpdatePostInput{UserID: 8, PostID: 1, Text: "hijacked"})
		assertUnauthorizedError(t, err)
		assert.False(t, updateCalled)
	})

	t.Run("Missing post", func(t *testing.T) {
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}

		svc := NewPostService(postRepo, noopGroupRepo())
		_, err := svc.UpdatePost(ctx, UpdatePostInput{UserID: 7, PostID: 999, Text: "x"})
		assertNotFoundError(t, err)
	})

	t.Run("Edit can clear the group", func(t *testing.T) {
		groupID := uint(3)
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Text: "t", AuthorID: 7, GroupID: &groupID}, nil
		}
		var saved *models.Post
		postRepo.updateFn = func(_ context.Context, p *models.Post) error {
			saved = p
			return nil
		}

		svc := NewPostService(postRepo, noopGroupRepo())
		_, err := svc.UpdatePost(ctx, UpdatePostInput{UserID: 7, PostID: 1, Text: "t", GroupID: nil})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Nil(t, saved.GroupID)
	})
}
