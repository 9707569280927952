// Package service implements the application's business rules on top of the
// repository layer.
package service

import (
	"context"
	"strings"

	"yatube/internal/models"
	"yatube/internal/observability"
	"yatube/internal/repository"
)

const maxPostLen = 50000

// PostService owns the post lifecycle: publishing, reading and editing.
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
}

type CreatePostInput struct {
	AuthorID uint
	Text     string
	GroupID  *uint
	ImageURL string
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Text     string
	GroupID  *uint
	ImageURL string
}

func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
	}
}

// validateForm checks the submitted post fields and reports problems per
// field, the shape the create and edit forms echo back to the author.
func (s *PostService) validateForm(ctx context.Context, text string, groupID *uint) map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(text) == "" {
		fields["text"] = "This field is required."
	} else if len(text) > maxPostLen {
		fields["text"] = "Text too long (max 50000 characters)."
	}

	if groupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *groupID); err != nil {
			fields["group"] = "Select a valid group."
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if fields := s.validateForm(ctx, in.Text, in.GroupID); fields != nil {
		return nil, models.NewFormError(fields)
	}

	post := &models.Post{
		Text:     in.Text,
		AuthorID: in.AuthorID,
		GroupID:  in.GroupID,
		ImageURL: in.ImageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsCreated.Inc()

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// UpdatePost applies an edit. Only the author may change a post; anyone else
// gets an UNAUTHORIZED error and the post is left untouched.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only edit your own posts")
	}

	if fields := s.validateForm(ctx, in.Text, in.GroupID); fields != nil {
		return nil, models.NewFormError(fields)
	}

	post.Text = in.Text
	post.GroupID = in.GroupID
	if in.ImageURL != "" {
		post.ImageURL = in.ImageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
