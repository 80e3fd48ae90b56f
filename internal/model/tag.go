package model

import "time"

// Tag is a user-scoped label attached to recipes. Names are unique per
// owner, not globally, which backs the idempotent get-or-create lookup.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_tags_user_name"`
	Name      string    `json:"name" gorm:"size:255;not null;uniqueIndex:idx_tags_user_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User    User     `json:"-" gorm:"foreignKey:UserID"`
	Recipes []Recipe `json:"-" gorm:"many2many:recipe_tags;"`
}

// String returns the tag name.
func (t Tag) String() string {
	return t.Name
}
