package models

import "time"

// Comment represents a reader's response to a post. Comments are append
// only; there is no edit or delete surface.
type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	Post     Post   `gorm:"foreignKey:PostID" json:"-"`

	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated_at"`
}
