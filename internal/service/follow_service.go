package service

import (
	"context"

	"yatube/internal/repository"
)

// FollowService owns author subscriptions.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow subscribes userID to authorID. Following yourself and following an
// author twice are both silent no-ops, the request simply leaves the state
// as it is.
func (s *FollowService) Follow(ctx context.Context, userID, authorID uint) error {
	if userID == authorID {
		return nil
	}
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return err
	}
	return s.followRepo.Follow(ctx, userID, authorID)
}

// Unfollow removes the subscription if it exists.
func (s *FollowService) Unfollow(ctx context.Context, userID, authorID uint) error {
	if _, err := s.userRepo.GetByID(ctx, authorID); err != nil {
		return err
	}
	return s.followRepo.Unfollow(ctx, userID, authorID)
}

// IsFollowing reports whether userID subscribes to authorID. Anonymous
// viewers (userID zero) never follow anyone.
func (s *FollowService) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.followRepo.Exists(ctx, userID, authorID)
}
