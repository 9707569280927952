package models

import "time"

// Post represents a blog entry. The author is fixed at creation time; only
// text, group and image may change afterwards. CreatedAt doubles as the
// publication date and is the descending sort key for every feed.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID" json:"author"`
	GroupID  *uint  `gorm:"index" json:"group_id,omitempty"`
	Group    *Group `gorm:"foreignKey:GroupID" json:"group,omitempty"`
	ImageURL string `json:"image_url,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"pub_date"`
	UpdatedAt time.Time `json:"updated_at"`
}
