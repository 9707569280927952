package models

import "time"

// Follow records that UserID subscribes to posts by AuthorID. The composite
// unique index makes duplicate subscriptions impossible at the storage level
// even under concurrent requests.
type Follow struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_follows_user_author" json:"user_id"`
	User     User `gorm:"foreignKey:UserID" json:"-"`
	AuthorID uint `gorm:"not null;uniqueIndex:idx_follows_user_author" json:"author_id"`
	Author   User `gorm:"foreignKey:AuthorID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}
