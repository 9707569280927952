package service

import (
	"context"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_Follow(t *testing.T) {
	ctx := context.Background()

	t.Run("Subscribes to another author", func(t *testing.T) {
		followRepo := noopFollowRepo()
		var gotUser, gotAuthor uint
		followRepo.followFn = func(_ context.Context, userID, authorID uint) error {
			gotUser, gotAuthor = userID, authorID
			return nil
		}

		svc := NewFollowService(followRepo, noopUserRepo())
		require.NoError(t, svc.Follow(ctx, 1, 2))
		assert.Equal(t, uint(1), gotUser)
		assert.Equal(t, uint(2), gotAuthor)
	})

	t.Run("Self-follow is a no-op", func(t *testing.T) {
		followRepo := noopFollowRepo()
		called := false
		followRepo.followFn = func(_ context.Context, _, _ uint) error {
			called = true
			return nil
		}

		svc := NewFollowService(followRepo, noopUserRepo())
		require.NoError(t, svc.Follow(ctx, 1, 1))
		assert.False(t, called)
	})

	t.Run("Unknown author", func(t *testing.T) {
		userRepo := noopUserRepo()
		userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		}

		svc := NewFollowService(noopFollowRepo(), userRepo)
		err := svc.Follow(ctx, 1, 999)
		assertNotFoundError(t, err)
	})
}

func TestFollowService_IsFollowing(t *testing.T) {
	ctx := context.Background()

	t.Run("Anonymous viewer never follows", func(t *testing.T) {
		followRepo := noopFollowRepo()
		called := false
		followRepo.existsFn = func(_ context.Context, _, _ uint) (bool, error) {
			called = true
			return true, nil
		}

		svc := NewFollowService(followRepo, noopUserRepo())
		following, err := svc.IsFollowing(ctx, 0, 2)
		require.NoError(t, err)
		assert.False(t, following)
		assert.False(t, called)
	})

	t.Run("Reflects stored subscription", func(t *testing.T) {
		followRepo := noopFollowRepo()
		followRepo.existsFn = func(_ context.Context, userID, authorID uint) (bool, error) {
			return userID == 1 && authorID == 2, nil
		}

		svc := NewFollowService(followRepo, noopUserRepo())
		following, err := svc.IsFollowing(ctx, 1, 2)
		require.NoError(t, err)
		assert.True(t, following)
	})
}
