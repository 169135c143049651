package model

import "time"

// Post is a blog post written by one User and labelled with any number of Tags.
type Post struct {
	ID        uint   `gorm:"primaryKey"`
	Title     string `gorm:"size:200;not null"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	AuthorID  uint  `gorm:"not null;index"`
	Author    User  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Tags      []Tag `gorm:"many2many:posts_tags"`
}

// FriendlyDate formats CreatedAt for display, e.g. "Mon Jan 2, 2006, 3:04 PM".
func (p Post) FriendlyDate() string {
	return p.CreatedAt.Format("Mon Jan 2, 2006, 3:04 PM")
}

// TagIDs returns the set of tag IDs currently loaded on the post.
func (p Post) TagIDs() map[uint]bool {
	ids := make(map[uint]bool, len(p.Tags))
	for _, t := range p.Tags {
		ids[t.ID] = true
	}
	return ids
}
