package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe represents a recipe owned by a user. Tags and ingredients are
// attached through join tables and may be shared across recipes of the
// same owner.
type Recipe struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"user_id" gorm:"not null;index"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	TimeMinutes int             `json:"time_minutes" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Description string          `json:"description" gorm:"type:text"`
	Link        string          `json:"link" gorm:"size:255"`
	Image       string          `json:"image" gorm:"size:255"` // relative path under the media root
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	User        User         `json:"-" gorm:"foreignKey:UserID"`
	Tags        []Tag        `json:"tags" gorm:"many2many:recipe_tags;"`
	Ingredients []Ingredient `json:"ingredients" gorm:"many2many:recipe_ingredients;"`
}

// String returns the recipe title.
func (r Recipe) String() string {
	return r.Title
}
