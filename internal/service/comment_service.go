package service

import (
	"context"
	"strings"

	"yatube/internal/models"
	"yatube/internal/observability"
	"yatube/internal/repository"
)

const maxCommentLen = 10000

// CommentService owns comment publishing.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type AddCommentInput struct {
	AuthorID uint
	PostID   uint
	Text     string
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment attaches a comment to an existing post. A missing post is a
// NOT_FOUND error, never an implicit creation.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(in.Text) == "" {
		return nil, models.NewFormError(map[string]string{"text": "This field is required."})
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewFormError(map[string]string{"text": "Comment too long (max 10000 characters)."})
	}

	comment := &models.Comment{
		Text:     in.Text,
		AuthorID: in.AuthorID,
		PostID:   in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	observability.CommentsCreated.Inc()

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns a post's comments oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}
