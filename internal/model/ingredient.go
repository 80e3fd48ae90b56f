package model

import "time"

// Ingredient is a user-scoped ingredient referenced by recipes. Like tags,
// names are unique per owner only.
type Ingredient struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_ingredients_user_name"`
	Name      string    `json:"name" gorm:"size:255;not null;uniqueIndex:idx_ingredients_user_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User    User     `json:"-" gorm:"foreignKey:UserID"`
	Recipes []Recipe `json:"-" gorm:"many2many:recipe_ingredients;"`
}

// String returns the ingredient name.
func (i Ingredient) String() string {
	return i.Name
}
