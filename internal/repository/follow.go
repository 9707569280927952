package repository

import (
	"context"

	"yatube/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines persistence operations for author subscriptions.
type FollowRepository interface {
	Follow(ctx context.Context, userID, authorID uint) error
	Unfollow(ctx context.Context, userID, authorID uint) error
	Exists(ctx context.Context, userID, authorID uint) (bool, error)
	CountFollowers(ctx context.Context, authorID uint) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Follow inserts the subscription if it does not exist yet. The conflict
// clause makes concurrent duplicate requests land on the unique index and
// silently collapse into one row.
func (r *followRepository) Follow(ctx context.Context, userID, authorID uint) error {
	follow := models.Follow{UserID: userID, AuthorID: authorID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&follow).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Unfollow removes the subscription. Deleting a subscription that does not
// exist is a no-op.
func (r *followRepository) Unfollow(ctx context.Context, userID, authorID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
