package model

// Tag categorises posts. Names are expected to be unique but this is not enforced.
type Tag struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"size:50;not null"`
	Posts []Post `gorm:"many2many:posts_tags"`
}

// PostTag is the join row between a Post and a Tag. The pair is the whole
// identity; it is registered as the custom join table of Post.Tags and Tag.Posts.
type PostTag struct {
	PostID uint `gorm:"primaryKey"`
	TagID  uint `gorm:"primaryKey"`
}

func (PostTag) TableName() string {
	return "posts_tags"
}
