package repository

import (
	"context"
	"errors"

	"yatube/internal/models"
	"yatube/internal/observability"

	"gorm.io/gorm"
)

// feedOrder is the canonical feed ordering: newest first, with the ID as a
// tie breaker so posts created in the same instant keep a stable order.
const feedOrder = "created_at DESC, id DESC"

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	ListAll(ctx context.Context) ([]models.Post, error)
	ListByGroup(ctx context.Context, groupID uint) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]models.Post, error)
	ListByFollowed(ctx context.Context, userID uint) ([]models.Post, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) ListAll(ctx context.Context) ([]models.Post, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "ListAll", "posts")
	defer span.End()
	defer observability.TrackQuery("list_all", "posts")()

	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Order(feedOrder).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("group_id = ?", groupID).
		Order(feedOrder).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Group").
		Where("author_id = ?", authorID).
		Order(feedOrder).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ListByFollowed returns posts whose authors the given user subscribes to.
func (r *postRepository) ListByFollowed(ctx context.Context, userID uint) ([]models.Post, error) {
	ctx, span := observability.TraceRepositoryMethod(ctx, "ListByFollowed", "posts")
	defer span.End()
	defer observability.TrackQuery("list_by_followed", "posts")()

	var posts []models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Joins("JOIN follows ON follows.author_id = posts.author_id").
		Where("follows.user_id = ?", userID).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
