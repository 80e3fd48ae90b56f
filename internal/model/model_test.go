package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringRepresentations(t *testing.T) {
	recipe := Recipe{Title: "Chocolate Cake"}
	assert.Equal(t, "Chocolate Cake", recipe.String())

	tag := Tag{Name: "Dessert"}
	assert.Equal(t, "Dessert", tag.String())

	ingredient := Ingredient{Name: "Cocoa"}
	assert.Equal(t, "Cocoa", ingredient.String())
}
