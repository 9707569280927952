package service

import (
	"context"

	"yatube/internal/models"
	"yatube/internal/pagination"
	"yatube/internal/repository"
)

// FeedService assembles the four paginated post feeds. Repositories return
// the full ordered result set; slicing into pages happens in memory with the
// same clamping rules everywhere.
type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// Profile is a profile feed page together with the author it belongs to.
type Profile struct {
	Author    *models.User                 `json:"author"`
	Posts     pagination.Page[models.Post] `json:"posts"`
	PostCount int64                        `json:"post_count"`
	Followers int64                        `json:"followers"`
	// Following is true when the signed-in viewer subscribes to this author.
	Following bool `json:"following"`
}

func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// GlobalFeed returns a page of all posts, newest first.
func (s *FeedService) GlobalFeed(ctx context.Context, page int) (pagination.Page[models.Post], error) {
	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	return pagination.Paginate(posts, page), nil
}

// GroupFeed returns a page of one group's posts along with the group itself.
// An unknown slug is a NOT_FOUND error, not an empty feed.
func (s *FeedService) GroupFeed(ctx context.Context, slug string, page int) (pagination.Page[models.Post], *models.Group, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return pagination.Page[models.Post]{}, nil, err
	}

	posts, err := s.postRepo.ListByGroup(ctx, group.ID)
	if err != nil {
		return pagination.Page[models.Post]{}, nil, err
	}
	return pagination.Paginate(posts, page), group, nil
}

// ProfileFeed returns an author's page of posts plus the profile header
// data. viewerID is zero for anonymous visitors.
func (s *FeedService) ProfileFeed(ctx context.Context, username string, page int, viewerID uint) (*Profile, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	posts, err := s.postRepo.ListByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.CountFollowers(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != 0 && viewerID != author.ID {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &Profile{
		Author:    author,
		Posts:     pagination.Paginate(posts, page),
		PostCount: int64(len(posts)),
		Followers: followers,
		Following: following,
	}, nil
}

// SubscriptionFeed returns a page of posts by the authors the user follows.
func (s *FeedService) SubscriptionFeed(ctx context.Context, userID uint, page int) (pagination.Page[models.Post], error) {
	posts, err := s.postRepo.ListByFollowed(ctx, userID)
	if err != nil {
		return pagination.Page[models.Post]{}, err
	}
	return pagination.Paginate(posts, page), nil
}
