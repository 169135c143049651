// Package model defines the entities persisted by the application.
//
// The structs double as gorm models: the `gorm:"..."` struct tags describe
// columns and relations, and gorm's AutoMigrate builds the schema from them.
package model

import "time"

// DefaultImageURL is shown for users who did not provide a profile picture.
const DefaultImageURL = "https://www.freeiconspng.com/uploads/icon-user-blue-symbol-people-person-generic--public-domain--21.png"

// User is a blog author. Posts reference users through posts.author_id; the
// foreign key is declared on Post.Author with ON DELETE CASCADE.
type User struct {
	ID        uint   `gorm:"primaryKey"`
	FirstName string `gorm:"size:50;not null"`
	LastName  string `gorm:"size:50;not null"`
	ImageURL  string `gorm:"not null"` // may be empty
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns "First Last".
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// AvatarURL returns the user's image, falling back to DefaultImageURL.
func (u User) AvatarURL() string {
	if u.ImageURL == "" {
		return DefaultImageURL
	}
	return u.ImageURL
}
